package types

type ProviderID string

const (
	ProviderTavily  ProviderID = "tavily"
	ProviderSearXNG ProviderID = "searxng"
)

// KeyRequired reports whether the provider refuses anonymous calls.
// Self-hosted SearXNG is the only keyless backend.
func (id ProviderID) KeyRequired() bool {
	return id != ProviderSearXNG
}

// ProviderConfig configures one web search backend.
type ProviderConfig struct {
	ID      ProviderID `json:"id" mapstructure:"id"`
	Name    string     `json:"name" mapstructure:"name"`
	APIHost string     `json:"api_host" mapstructure:"api_host"`

	// APIKey may hold several comma-separated keys; calls rotate through them.
	APIKey string `json:"api_key,omitempty" mapstructure:"api_key"`

	BasicAuthUsername string `json:"basic_auth_username,omitempty" mapstructure:"basic_auth_username"`
	BasicAuthPassword string `json:"basic_auth_password,omitempty" mapstructure:"basic_auth_password"`

	Timeout    int `json:"timeout,omitempty" mapstructure:"timeout"` // seconds
	MaxRetries int `json:"max_retries,omitempty" mapstructure:"max_retries"`
	MaxResults int `json:"max_results,omitempty" mapstructure:"max_results"`
}

// DisplayName is Name, or the ID when no name is configured.
func (c *ProviderConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return string(c.ID)
}

func (c *ProviderConfig) Validate() error {
	switch {
	case c.ID == "":
		return ErrInvalidProviderID
	case c.APIHost == "":
		return ErrInvalidAPIHost
	case c.ID.KeyRequired() && c.APIKey == "":
		return ErrMissingAPIKey
	case c.BasicAuthUsername != "" && c.BasicAuthPassword == "":
		return ErrMissingBasicAuthPassword
	}
	return nil
}
