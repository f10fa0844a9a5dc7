package sheetgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every question. The first failure
	// rejects the question.
	Validators []Validator

	// DropInvalidQuestions skips rejected questions instead of failing the
	// whole worksheet. A worksheet with no questions left always fails.
	DropInvalidQuestions bool

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard validator chain with per-question
// dropping enabled.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&ChoiceValidator{},
			&BlankValidator{},
		},
		DropInvalidQuestions: true,
		MaxTokens:            8192,
		Temperature:          0.7,
	}
}
