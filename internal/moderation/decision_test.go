package moderation

import "testing"

func TestDecide_DeleteBelowWarn(t *testing.T) {
	const del, warn = 850, 1950

	tests := []struct {
		score uint16
		want  Action
	}{
		{0, ActionAllow},
		{849, ActionAllow},
		{850, ActionDelete},
		{1949, ActionDelete},
		{1950, ActionDelete}, // delete is checked first and already satisfied
		{65535, ActionDelete},
	}

	for _, tt := range tests {
		got := Decide(tt.score, del, warn)
		if got.Action != tt.want {
			t.Errorf("Decide(%d, %d, %d) = %v, want %v", tt.score, del, warn, got.Action, tt.want)
		}
	}
}

// With delete=800 and warn=950 the warn branch is unreachable: anything at or
// above 800 is deleted first.
func TestDecide_OrderingAnomaly(t *testing.T) {
	if got := Decide(900, 800, 950); got.Action != ActionDelete {
		t.Errorf("Decide(900, 800, 950) = %v, want delete", got.Action)
	}
	if got := Decide(960, 800, 950); got.Action != ActionDelete {
		t.Errorf("Decide(960, 800, 950) = %v, want delete", got.Action)
	}
	if got := Decide(799, 800, 950); got.Action != ActionAllow {
		t.Errorf("Decide(799, 800, 950) = %v, want allow", got.Action)
	}
}

func TestDecide_WarnBelowDelete(t *testing.T) {
	const del, warn = 900, 500

	tests := []struct {
		score uint16
		want  Action
	}{
		{499, ActionAllow},
		{500, ActionWarn},
		{899, ActionWarn},
		{900, ActionDelete},
	}

	for _, tt := range tests {
		got := Decide(tt.score, del, warn)
		if got.Action != tt.want {
			t.Errorf("Decide(%d, %d, %d) = %v, want %v", tt.score, del, warn, got.Action, tt.want)
		}
		if tt.want != ActionAllow && got.Score != tt.score {
			t.Errorf("Decide(%d, ...).Score = %d", tt.score, got.Score)
		}
	}
}

func TestDecideVerdict_CarriesReason(t *testing.T) {
	th := Thresholds{Delete: 900, Warn: 500}

	got := DecideVerdict(Verdict{Score: 600, Reason: "rude"}, th)
	want := Decision{Action: ActionWarn, Score: 600, Reason: "rude"}
	if got != want {
		t.Errorf("DecideVerdict = %+v, want %+v", got, want)
	}

	got = DecideVerdict(Verdict{Score: 10, Reason: "fine"}, th)
	if got != (Decision{Action: ActionAllow}) {
		t.Errorf("DecideVerdict(allow) = %+v, want bare allow", got)
	}
}

func TestAction_String(t *testing.T) {
	tests := map[Action]string{
		ActionAllow:  "allow",
		ActionWarn:   "warn",
		ActionDelete: "delete",
		Action(7):    "Action(7)",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(a), got, want)
		}
	}
}
