package sequence

import "testing"

func TestIndicators(t *testing.T) {
	cases := []struct {
		name  string
		input []Symbol
		want  []KeyState
	}{
		{name: "fresh", input: nil, want: []KeyState{KeyTarget, KeyUpcoming, KeyUpcoming, KeyUpcoming}},
		{name: "one correct", input: []Symbol{Down}, want: []KeyState{KeyCorrect, KeyTarget, KeyUpcoming, KeyUpcoming}},
		{name: "mistake", input: []Symbol{Down, Left}, want: []KeyState{KeyCorrect, KeyFailed, KeyTarget, KeyUpcoming}},
		{name: "complete", input: []Symbol{Down, Up, Right, Left}, want: []KeyState{KeyCorrect, KeyCorrect, KeyCorrect, KeyCorrect}},
	}
	for _, tc := range cases {
		got := Indicators(State{SequenceToMatch: DefaultSequence(), InputSequence: tc.input})
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %d indicators, got %d", tc.name, len(tc.want), len(got))
		}
		for i, ind := range got {
			if ind.State != tc.want[i] {
				t.Fatalf("%s: indicator %d expected %s, got %s", tc.name, i, tc.want[i], ind.State)
			}
			if ind.Key != DefaultSequence()[i] {
				t.Fatalf("%s: indicator %d expected key %s, got %s", tc.name, i, DefaultSequence()[i], ind.Key)
			}
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if Playing.Label() != "Times Ticking" || Pass.Label() != "You Win" || Fail.Label() != "Game Over" {
		t.Fatalf("unexpected labels: %q %q %q", Playing.Label(), Pass.Label(), Fail.Label())
	}
}
