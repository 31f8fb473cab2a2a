package domain

import "fmt"

// QuestionKind identifies which trivia field a question asks about.
type QuestionKind string

// The three fixed question kinds, in presentation order.
const (
	QuestionRealName        QuestionKind = "realName"
	QuestionPowers          QuestionKind = "powers"
	QuestionFirstAppearance QuestionKind = "firstAppearance"
)

// QuestionsPerCharacter is the number of questions asked about each character.
const QuestionsPerCharacter = 3

var questionKinds = [QuestionsPerCharacter]QuestionKind{
	QuestionRealName,
	QuestionPowers,
	QuestionFirstAppearance,
}

var questionPrompts = map[QuestionKind]string{
	QuestionRealName:        "What is this character's real name?",
	QuestionPowers:          "What are this character's main powers?",
	QuestionFirstAppearance: "What was this character's first appearance?",
}

// Question pairs a fixed prompt with the character field that answers it.
type Question struct {
	Kind   QuestionKind `json:"kind"`
	Prompt string       `json:"prompt"`
	Answer string       `json:"-"`
}

// Valid reports whether k is one of the fixed question kinds.
func (k QuestionKind) Valid() bool {
	_, ok := questionPrompts[k]
	return ok
}

// QuestionAt returns the question at index i (0..2) for the given character.
func QuestionAt(c Character, i int) (Question, error) {
	if i < 0 || i >= QuestionsPerCharacter {
		return Question{}, fmt.Errorf("%w: index %d", ErrInvalidQuestionKind, i)
	}
	kind := questionKinds[i]
	return Question{
		Kind:   kind,
		Prompt: questionPrompts[kind],
		Answer: answerFor(c, kind),
	}, nil
}

// QuestionsFor derives all questions for a character in presentation order.
func QuestionsFor(c Character) []Question {
	questions := make([]Question, 0, QuestionsPerCharacter)
	for i := range questionKinds {
		q, _ := QuestionAt(c, i)
		questions = append(questions, q)
	}
	return questions
}

func answerFor(c Character, kind QuestionKind) string {
	switch kind {
	case QuestionRealName:
		return c.RealName
	case QuestionPowers:
		return c.Powers
	case QuestionFirstAppearance:
		return c.FirstAppearance
	default:
		return ""
	}
}
