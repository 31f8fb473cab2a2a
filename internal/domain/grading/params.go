package grading

// Params defines the tunable thresholds of the grading cascade.
type Params struct {
	// MinContainmentLength is the rune length a string must exceed before
	// substring containment counts as a match.
	MinContainmentLength int

	// OverlapThreshold is the minimum word-overlap score accepted as correct.
	OverlapThreshold float64

	// NicknameFallback consults the nickname table after word overlap fails.
	// Off by default: the table has never been reachable, and turning it on
	// changes which guesses are accepted.
	NicknameFallback bool
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		MinContainmentLength: 2,
		OverlapThreshold:     0.6,
		NicknameFallback:     false,
	}
}
