package domain

const (
	DefaultEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultModel    = "gpt-4o-mini"
)

// ProviderConfig is the AI provider the translator talks to.
type ProviderConfig struct {
	Endpoint string `json:"endpoint"`
	Model    string `json:"model"`
	APIKey   string `json:"apiKey"`
}

// DefaultProviderConfig returns the built-in provider with no API key.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{Endpoint: DefaultEndpoint, Model: DefaultModel}
}

// Usable reports whether every field needed for a request is set.
func (c ProviderConfig) Usable() bool {
	return c.Endpoint != "" && c.Model != "" && c.APIKey != ""
}

// ProviderPatch is a partial update; nil fields keep their current value.
type ProviderPatch struct {
	Endpoint *string `json:"endpoint,omitempty"`
	Model    *string `json:"model,omitempty"`
	APIKey   *string `json:"apiKey,omitempty"`
}

// Apply returns c with the non-nil fields of p merged in.
func (p ProviderPatch) Apply(c ProviderConfig) ProviderConfig {
	if p.Endpoint != nil {
		c.Endpoint = *p.Endpoint
	}
	if p.Model != nil {
		c.Model = *p.Model
	}
	if p.APIKey != nil {
		c.APIKey = *p.APIKey
	}
	return c
}
