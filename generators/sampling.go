package generators

// SamplingParams follows the OpenAI chat completion parameters. The zero
// value means greedy decoding, mirroring the original defaults.
type SamplingParams struct {
	Temperature      float32  `json:"temperature"`
	TopP             float32  `json:"top_p,omitempty"`
	N                int      `json:"n,omitempty"`
	Stop             []string `json:"stop,omitempty"`
	MaxTokens        *int     `json:"max_tokens,omitempty"`
	PresencePenalty  float32  `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32  `json:"frequency_penalty,omitempty"`
	Seed             *int64   `json:"seed,omitempty"`
}
