package elevenlabs

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultBaseURL is the default ElevenLabs API base URL.
	DefaultBaseURL = "https://api.elevenlabs.io"

	// DefaultTimeout is the default per-attempt request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the default maximum number of retries.
	DefaultMaxRetries = 3

	// DefaultRetryBackoff is the default base duration for retry backoff.
	DefaultRetryBackoff = time.Second
)

const (
	// EnvAPIKey is the environment variable supplying the API key.
	EnvAPIKey = "ELEVENLABS_API_KEY"

	// EnvBaseURL is the optional environment variable overriding the base URL.
	EnvBaseURL = "ELEVENLABS_BASE_URL"
)

// Client is the ElevenLabs API client.
type Client struct {
	// TTS provides text-to-speech operations, including WebSocket streaming.
	TTS *TTSService

	// Voices provides voice management operations.
	Voices *VoicesService

	// Models lists available synthesis models.
	Models *ModelsService

	// User provides account and subscription operations.
	User *UserService

	// History provides generated-audio history operations.
	History *HistoryService

	// SoundGeneration provides sound effect generation.
	SoundGeneration *SoundGenerationService

	// SpeechToText provides audio transcription.
	SpeechToText *SpeechToTextService

	// Agents provides Conversational AI agent operations.
	Agents *AgentsService

	config *clientConfig
	http   *httpClient
}

// clientConfig holds the client configuration. It is built once in
// NewClient and immutable afterwards; all calls share it by reference.
type clientConfig struct {
	apiKey       APIKey
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithMaxRetries sets the maximum number of retries for transient errors.
func WithMaxRetries(maxRetries int) Option {
	return func(c *clientConfig) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
	}
}

// WithRetryBackoff sets the base duration for exponential retry backoff.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(c *clientConfig) {
		c.retryBackoff = backoff
	}
}

// NewClient creates a new ElevenLabs API client.
//
// The apiKey can be obtained from the ElevenLabs dashboard.
//
// Example:
//
//	client := elevenlabs.NewClient("your-api-key")
//	client := elevenlabs.NewClient("your-api-key", elevenlabs.WithTimeout(60*time.Second))
func NewClient(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		apiKey:       NewAPIKey(apiKey),
		baseURL:      DefaultBaseURL,
		timeout:      DefaultTimeout,
		maxRetries:   DefaultMaxRetries,
		retryBackoff: DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		cfg.httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	c := &Client{
		config: cfg,
		http:   newHTTPClient(cfg),
	}

	c.TTS = newTTSService(c)
	c.Voices = newVoicesService(c)
	c.Models = newModelsService(c)
	c.User = newUserService(c)
	c.History = newHistoryService(c)
	c.SoundGeneration = newSoundGenerationService(c)
	c.SpeechToText = newSpeechToTextService(c)
	c.Agents = newAgentsService(c)

	return c
}

// NewClientFromEnv creates a client from environment variables.
//
// ELEVENLABS_API_KEY is required; ELEVENLABS_BASE_URL optionally
// overrides the base URL. Options are applied after the environment,
// so they take precedence.
func NewClientFromEnv(opts ...Option) (*Client, error) {
	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, newError(ErrKindValidation,
			fmt.Sprintf("missing required environment variable: %s", EnvAPIKey))
	}

	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		opts = append([]Option{WithBaseURL(baseURL)}, opts...)
	}

	return NewClient(apiKey, opts...), nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}
