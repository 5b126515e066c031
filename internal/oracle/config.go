package oracle

// CallConfig is the token budget and sampling temperature for one kind of
// oracle request.
type CallConfig struct {
	MaxTokens   int
	Temperature float64
}

// Config controls the behavior of the LLMOracle.
type Config struct {
	Question   CallConfig
	Evaluation CallConfig
	Report     CallConfig

	// MaxPriorQuestions is the maximum number of prior questions
	// to include in the prompt for deduplication.
	MaxPriorQuestions int

	// MaxTimeAllowed caps the answer time a proposed question may ask for.
	MaxTimeAllowed int
}

// DefaultConfig returns a Config with the recommended defaults.
func DefaultConfig() Config {
	return Config{
		Question:          CallConfig{MaxTokens: 500, Temperature: 0.7},
		Evaluation:        CallConfig{MaxTokens: 600, Temperature: 0.3},
		Report:            CallConfig{MaxTokens: 1000, Temperature: 0.5},
		MaxPriorQuestions: 10,
		MaxTimeAllowed:    900,
	}
}
