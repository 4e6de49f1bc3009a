package moderation

import "strconv"

// Action is what the relay does with a scored message.
type Action int

const (
	ActionAllow Action = iota
	ActionWarn
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionAllow:
		return "allow"
	case ActionWarn:
		return "warn"
	case ActionDelete:
		return "delete"
	default:
		return "Action(" + strconv.Itoa(int(a)) + ")"
	}
}

// Decision is the outcome for one message. Score and Reason are carried for
// Warn and Delete and left zero for Allow.
type Decision struct {
	Action Action
	Score  uint16
	Reason string
}

// Thresholds are the two configured score boundaries. They are independent:
// Delete is not assumed to be greater than Warn.
type Thresholds struct {
	Delete uint16 `yaml:"delete"`
	Warn   uint16 `yaml:"warn"`
}

// Decide maps a score to an action. The delete threshold is checked first
// and the warn threshold only when it is not met, so with Delete < Warn every
// score at or above Delete is deleted and Warn is never reached. Both
// comparisons are inclusive.
func Decide(score, deleteThreshold, warnThreshold uint16) Decision {
	return decide(score, "", deleteThreshold, warnThreshold)
}

// DecideVerdict is Decide carrying the verdict's reason into the decision.
func DecideVerdict(v Verdict, t Thresholds) Decision {
	return decide(v.Score, v.Reason, t.Delete, t.Warn)
}

func decide(score uint16, reason string, deleteThreshold, warnThreshold uint16) Decision {
	switch {
	case score >= deleteThreshold:
		return Decision{Action: ActionDelete, Score: score, Reason: reason}
	case score >= warnThreshold:
		return Decision{Action: ActionWarn, Score: score, Reason: reason}
	default:
		return Decision{Action: ActionAllow}
	}
}
