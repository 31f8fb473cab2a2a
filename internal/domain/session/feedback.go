package session

// Feedback is the verdict shown after a guess until it is cleared.
type Feedback struct {
	Visible bool   `json:"visible"`
	Correct bool   `json:"correct"`
	Guess   string `json:"guess,omitempty"`
	Answer  string `json:"answer,omitempty"`
}

// FeedbackToken identifies one showing of feedback. A delayed clear carries
// the token it was scheduled for and is ignored once newer feedback exists.
type FeedbackToken uint64

type feedbackState struct {
	Feedback
	token FeedbackToken
}

func (f *feedbackState) show(correct bool, guess, answer string) FeedbackToken {
	f.token++
	f.Feedback = Feedback{
		Visible: true,
		Correct: correct,
		Guess:   guess,
		Answer:  answer,
	}
	return f.token
}

// clear hides feedback and invalidates any pending delayed clear.
func (f *feedbackState) clear() {
	f.token++
	f.Feedback = Feedback{}
}

func (f *feedbackState) clearIfCurrent(token FeedbackToken) bool {
	if token != f.token || !f.Visible {
		return false
	}
	f.Feedback = Feedback{}
	return true
}
