package model

// TokenUsage tracks token consumption across extraction calls.
type TokenUsage struct {
	InputTokens         int `json:"input_tokens"`
	OutputTokens        int `json:"output_tokens"`
	CacheCreationTokens int `json:"cache_creation_tokens"`
	CacheReadTokens     int `json:"cache_read_tokens"`
}

// Add accumulates another usage into this one.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.CacheCreationTokens += other.CacheCreationTokens
	u.CacheReadTokens += other.CacheReadTokens
}

// CaptureState is the loop state for one affiliation capture. Results is
// replaced wholesale by each reconciliation pass; nothing else mutates it.
type CaptureState struct {
	Fields         FieldSet
	Results        ResultSet
	Iteration      int
	MaxIterations  int
	SufficientInfo bool
	TokenUsage     TokenUsage
}

// NewCaptureState builds the initial state for a capture run.
func NewCaptureState(fields FieldSet, maxIterations int) *CaptureState {
	return &CaptureState{
		Fields:        fields,
		Results:       make(ResultSet),
		MaxIterations: maxIterations,
	}
}
