package sat

// occurrence locates one literal inside the clause store: the clause index
// and the literal's position within that clause. Occurrences are by-value
// indices rather than pointers so they stay valid across every mutation the
// solver performs.
type occurrence struct {
	clause int
	pos    int
}

// varMap indexes, for each variable, the positions where it occurs
// positively and negatively. Both lists are append-only; occurrences are
// never removed, even when the clause becomes satisfied.
type varMap struct {
	trueList  [][]occurrence
	falseList [][]occurrence
	cnt       []int
}

func (m *varMap) newVar() {
	m.trueList = append(m.trueList, nil)
	m.falseList = append(m.falseList, nil)
	m.cnt = append(m.cnt, 0)
}

func (m *varMap) addClause(idx int, c *Clause) {
	for i, l := range c.Literals() {
		v := l.VarID()
		m.cnt[v]++
		if l.IsPositive() {
			m.trueList[v] = append(m.trueList[v], occurrence{clause: idx, pos: i})
		} else {
			m.falseList[v] = append(m.falseList[v], occurrence{clause: idx, pos: i})
		}
	}
}

// occurrences returns the positions where variable v occurs with the given
// polarity.
func (m *varMap) occurrences(v int, val Value) []occurrence {
	if val == True {
		return m.trueList[v]
	}
	return m.falseList[v]
}
