package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	Name        string
	Description string
}

// ResponseSchema represents the expected JSON object returned by the model
type ResponseSchema struct {
	// RealName is the character's civilian or birth name
	RealName string `json:"real_name"`

	// Powers is a short comma-separated summary of abilities
	Powers string `json:"powers"`

	// FirstAppearance cites the debut issue, e.g. "Amazing Fantasy #15 (1962)"
	FirstAppearance string `json:"first_appearance"`
}
