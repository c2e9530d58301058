package triage

// Prompt is a single system+user completion request.
// Zero Temperature and MaxTokens leave the model defaults in place.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}
