package plugin

// Wire types of the external plugin protocol. Every command prints a single
// JSON document on stdout; audio travels base64 encoded.

type metadataMsg struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	Local       bool   `json:"local,omitempty"`
}

type voiceMsg struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
}

type describeResponse struct {
	Metadata metadataMsg `json:"metadata"`
	Voices   []voiceMsg  `json:"voices,omitempty"`
}

type transcribeRequest struct {
	Audio    []byte `json:"audio"`
	Format   string `json:"format"`
	Language string `json:"language,omitempty"`
}

type transcribeResponse struct {
	Text       string   `json:"text"`
	DurationMs float64  `json:"duration_ms"`
	Confidence *float64 `json:"confidence,omitempty"`
	Error      string   `json:"error,omitempty"`
}

type synthesizeRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed,omitempty"`
}

type synthesizeResponse struct {
	Audio      []byte  `json:"audio"`
	Format     string  `json:"format"`
	SampleRate int     `json:"sample_rate,omitempty"`
	DurationMs float64 `json:"duration_ms,omitempty"`
	Error      string  `json:"error,omitempty"`
}
