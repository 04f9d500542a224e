package sequence

import "github.com/verte-zerg/quicktime/internal/generator"

// Reduce applies action to state and returns the next state. Unknown actions
// return state unchanged.
func Reduce(state State, action Action) State {
	switch action.Kind {
	case ActionInput:
		return reduceInput(state, action.Key)
	case ActionReset:
		state.InputSequence = []Symbol{}
		state.Status = Playing
		return state
	case ActionShuffle:
		state.SequenceToMatch = generator.Shuffle(state.SequenceToMatch, action.Seed)
		return state
	case ActionFail:
		state.Status = Fail
		return state
	default:
		return state
	}
}

func reduceInput(state State, key Symbol) State {
	if state.Status != Playing {
		return state
	}
	if len(state.InputSequence) >= len(state.SequenceToMatch) {
		return state
	}

	next := make([]Symbol, len(state.InputSequence), len(state.InputSequence)+1)
	copy(next, state.InputSequence)
	next = append(next, key)

	status := Playing
	if len(next) == len(state.SequenceToMatch) {
		status = Pass
	}
	// Every position is re-checked, not just the newest key.
	for i, in := range next {
		if in != state.SequenceToMatch[i] {
			status = Fail
		}
	}

	state.InputSequence = next
	state.Status = status
	return state
}
