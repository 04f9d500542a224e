// Package sequence implements the key-sequence matching state machine.
package sequence

// Symbol identifies a key press, e.g. "ArrowUp".
type Symbol string

// Directional symbols used by the default sequence.
const (
	Up    Symbol = "ArrowUp"
	Down  Symbol = "ArrowDown"
	Left  Symbol = "ArrowLeft"
	Right Symbol = "ArrowRight"
)

// Status is the game state of a sequence round.
type Status string

const (
	Playing Status = "PLAYING"
	Pass    Status = "PASS"
	Fail    Status = "FAIL"
)

// Label returns the player-facing text for s.
func (s Status) Label() string {
	switch s {
	case Pass:
		return "You Win"
	case Fail:
		return "Game Over"
	default:
		return "Times Ticking"
	}
}

// DefaultSequence is the sequence a fresh round starts with.
func DefaultSequence() []Symbol {
	return []Symbol{Down, Up, Right, Left}
}

// State is an immutable snapshot of a round. Reduce never mutates the slices
// of the state it receives.
type State struct {
	SequenceToMatch []Symbol
	InputSequence   []Symbol
	Status          Status
}

// NewState returns a PLAYING state for the given target sequence.
func NewState(target []Symbol) State {
	return State{
		SequenceToMatch: append([]Symbol(nil), target...),
		InputSequence:   []Symbol{},
		Status:          Playing,
	}
}

// ActionKind enumerates reducer actions.
type ActionKind int

const (
	ActionInput ActionKind = iota + 1
	ActionReset
	ActionShuffle
	ActionFail
)

// Action is a discrete event applied by Reduce. Key is used by ActionInput and
// Seed by ActionShuffle.
type Action struct {
	Kind ActionKind
	Key  Symbol
	Seed int
}

// Input returns an input action for key.
func Input(key Symbol) Action { return Action{Kind: ActionInput, Key: key} }

// Reset returns a reset action.
func Reset() Action { return Action{Kind: ActionReset} }

// Shuffle returns a shuffle action with the given seed.
func Shuffle(seed int) Action { return Action{Kind: ActionShuffle, Seed: seed} }

// FailNow returns an action forcing the FAIL state.
func FailNow() Action { return Action{Kind: ActionFail} }
