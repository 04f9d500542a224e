package sequence

// KeyState describes how a single target key is presented.
type KeyState string

const (
	KeyTarget   KeyState = "TARGET"
	KeyCorrect  KeyState = "CORRECT"
	KeyFailed   KeyState = "FAILED"
	KeyUpcoming KeyState = "UPCOMING"
)

// Indicator pairs a target key with its presentation state.
type Indicator struct {
	Key   Symbol
	State KeyState
}

// Indicators projects state onto one indicator per target key. The first
// empty slot is the TARGET.
func Indicators(state State) []Indicator {
	out := make([]Indicator, 0, len(state.SequenceToMatch))
	for i, key := range state.SequenceToMatch {
		current, hasCurrent := inputAt(state.InputSequence, i)
		_, hasPrevious := inputAt(state.InputSequence, i-1)

		active := !hasCurrent && (i == 0 || hasPrevious)

		var ks KeyState
		switch {
		case active:
			ks = KeyTarget
		case hasCurrent && current == key:
			ks = KeyCorrect
		case hasCurrent:
			ks = KeyFailed
		default:
			ks = KeyUpcoming
		}
		out = append(out, Indicator{Key: key, State: ks})
	}
	return out
}

func inputAt(input []Symbol, i int) (Symbol, bool) {
	if i < 0 || i >= len(input) {
		return "", false
	}
	return input[i], true
}
