package board

// RevealState describes how much of a clue is currently disclosed.
type RevealState uint8

const (
	// Hidden is the initial state: only the placeholder is shown.
	Hidden RevealState = iota
	// Question means the question text is shown.
	Question
	// Answer means the answer text is shown. It is terminal.
	Answer
)

// String returns the lowercase name used in transports and templates.
func (s RevealState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Question:
		return "question"
	case Answer:
		return "answer"
	default:
		return "unknown"
	}
}

// ParseRevealState converts the string form back into a RevealState.
func ParseRevealState(s string) (RevealState, bool) {
	switch s {
	case "hidden":
		return Hidden, true
	case "question":
		return Question, true
	case "answer":
		return Answer, true
	default:
		return Hidden, false
	}
}

// Transition is the outcome of a single reveal.
type Transition struct {
	// Text is the new content for the cell. Empty when Changed is false.
	Text string
	// State is the clue state after the reveal.
	State RevealState
	// Changed reports whether the cell content must be updated.
	Changed bool
}

// Reveal advances a clue one step through Hidden -> Question -> Answer.
// Once in Answer it is a no-op.
func Reveal(c Clue) Transition {
	switch c.State {
	case Hidden:
		return Transition{Text: c.Question, State: Question, Changed: true}
	case Question:
		return Transition{Text: c.Answer, State: Answer, Changed: true}
	default:
		return Transition{State: Answer}
	}
}
