package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Capability kinds a plugin may provide.
const (
	KindSTT = "stt"
	KindTTS = "tts"
)

// Config is the voicekit configuration.
type Config struct {
	Debug bool `mapstructure:"debug"`

	// InputSampleRate is assumed for raw pcm_s16le files sent for transcription.
	InputSampleRate int `mapstructure:"input_sample_rate"`

	Providers Providers      `mapstructure:"providers"`
	Plugins   []PluginConfig `mapstructure:"plugins"`

	Credentials Credentials `mapstructure:"-"`
}

// Providers holds the bundled provider settings.
type Providers struct {
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Google  GoogleConfig  `mapstructure:"google"`
	Whisper WhisperConfig `mapstructure:"whisper"`
	Piper   PiperConfig   `mapstructure:"piper"`
}

// OpenAIConfig configures the OpenAI provider. The API key normally comes
// from OPENAI_API_KEY.
type OpenAIConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	STTModel       string        `mapstructure:"stt_model"`
	TTSModel       string        `mapstructure:"tts_model"`
	ResponseFormat string        `mapstructure:"response_format"`
	Voices         []string      `mapstructure:"voices"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// GoogleConfig configures the Google Cloud Speech provider.
type GoogleConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Endpoint        string        `mapstructure:"endpoint"`
	Language        string        `mapstructure:"language"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// WhisperConfig configures the whisper HTTP provider.
type WhisperConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PiperConfig configures the piper provider.
type PiperConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Binary  string        `mapstructure:"binary"`
	Timeout time.Duration `mapstructure:"timeout"`
	Voices  []PiperVoice  `mapstructure:"voices"`
}

// PiperVoice is one configured piper model.
type PiperVoice struct {
	ID          string `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Gender      string `mapstructure:"gender"`
	Description string `mapstructure:"description"`
	Model       string `mapstructure:"model"`
	Config      string `mapstructure:"config"`
	Speaker     string `mapstructure:"speaker"`
}

// PluginConfig describes an external capability plugin.
type PluginConfig struct {
	Name    string        `mapstructure:"name"`
	Command string        `mapstructure:"command"`
	Args    []string      `mapstructure:"args"`
	Env     []string      `mapstructure:"env"`
	Kinds   []string      `mapstructure:"kinds"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Provides reports whether the plugin is configured for kind.
func (p PluginConfig) Provides(kind string) bool {
	return slices.Contains(p.Kinds, kind)
}

// Credentials are read from the environment, never from the config file.
type Credentials struct {
	OpenAIKey         string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL"`
	GoogleCredentials string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	WhisperURL        string `env:"WHISPER_URL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputSampleRate: 16000,
		Providers: Providers{
			OpenAI: OpenAIConfig{
				Enabled:        true,
				STTModel:       "whisper-1",
				TTSModel:       "tts-1",
				ResponseFormat: "pcm",
				Timeout:        60 * time.Second,
			},
			Google: GoogleConfig{
				Language: "en-US",
				Timeout:  60 * time.Second,
			},
			Whisper: WhisperConfig{
				URL:     "http://localhost:8080",
				Timeout: 120 * time.Second,
			},
			Piper: PiperConfig{
				Binary:  "piper",
				Timeout: 30 * time.Second,
			},
		},
	}
}

// SetDefaults registers the defaults with v so that they show up in
// v.AllSettings and environment overrides.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("debug", d.Debug)
	v.SetDefault("input_sample_rate", d.InputSampleRate)

	v.SetDefault("providers.openai.enabled", d.Providers.OpenAI.Enabled)
	v.SetDefault("providers.openai.stt_model", d.Providers.OpenAI.STTModel)
	v.SetDefault("providers.openai.tts_model", d.Providers.OpenAI.TTSModel)
	v.SetDefault("providers.openai.response_format", d.Providers.OpenAI.ResponseFormat)
	v.SetDefault("providers.openai.timeout", d.Providers.OpenAI.Timeout)

	v.SetDefault("providers.google.enabled", d.Providers.Google.Enabled)
	v.SetDefault("providers.google.language", d.Providers.Google.Language)
	v.SetDefault("providers.google.timeout", d.Providers.Google.Timeout)

	v.SetDefault("providers.whisper.enabled", d.Providers.Whisper.Enabled)
	v.SetDefault("providers.whisper.url", d.Providers.Whisper.URL)
	v.SetDefault("providers.whisper.timeout", d.Providers.Whisper.Timeout)

	v.SetDefault("providers.piper.enabled", d.Providers.Piper.Enabled)
	v.SetDefault("providers.piper.binary", d.Providers.Piper.Binary)
	v.SetDefault("providers.piper.timeout", d.Providers.Piper.Timeout)
}

// Load builds the configuration from v and the environment, then validates
// it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration: %w", err)
	}

	creds, err := env.ParseAs[Credentials]()
	if err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}
	cfg.Credentials = creds
	cfg.applyCredentials()
	cfg.expandPaths()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyCredentials fills unset provider settings from the environment.
func (c *Config) applyCredentials() {
	o := &c.Providers.OpenAI
	if o.APIKey == "" {
		o.APIKey = c.Credentials.OpenAIKey
	}
	if o.BaseURL == "" {
		o.BaseURL = c.Credentials.OpenAIBaseURL
	}
	g := &c.Providers.Google
	if g.CredentialsFile == "" {
		g.CredentialsFile = c.Credentials.GoogleCredentials
	}
	if c.Credentials.WhisperURL != "" {
		c.Providers.Whisper.URL = c.Credentials.WhisperURL
	}
}

func (c *Config) expandPaths() {
	c.Providers.Google.CredentialsFile = expand(c.Providers.Google.CredentialsFile)
	c.Providers.Piper.Binary = expand(c.Providers.Piper.Binary)
	for i := range c.Providers.Piper.Voices {
		v := &c.Providers.Piper.Voices[i]
		v.Model = expand(v.Model)
		v.Config = expand(v.Config)
	}
	for i := range c.Plugins {
		c.Plugins[i].Command = expand(c.Plugins[i].Command)
	}
}

func expand(path string) string {
	if path == "" {
		return path
	}
	if p, err := homedir.Expand(path); err == nil {
		return p
	}
	return path
}

// Validate checks the configuration for values no provider could use.
func (c *Config) Validate() error {
	var errs []error
	if c.InputSampleRate <= 0 {
		errs = append(errs, fmt.Errorf("input_sample_rate must be positive, got %d", c.InputSampleRate))
	}

	p := c.Providers
	if p.OpenAI.Enabled && !slices.Contains([]string{"pcm", "mp3", "wav", "opus", "flac", "aac"}, p.OpenAI.ResponseFormat) {
		errs = append(errs, fmt.Errorf("providers.openai.response_format %q is not supported", p.OpenAI.ResponseFormat))
	}
	if p.Whisper.Enabled && p.Whisper.URL == "" {
		errs = append(errs, errors.New("providers.whisper.url is required"))
	}
	if p.Piper.Enabled {
		if len(p.Piper.Voices) == 0 {
			errs = append(errs, errors.New("providers.piper.voices must list at least one voice"))
		}
		for i, v := range p.Piper.Voices {
			if v.ID == "" || v.Model == "" {
				errs = append(errs, fmt.Errorf("providers.piper.voices[%d] needs an id and a model", i))
			}
		}
	}
	for i, pl := range c.Plugins {
		if pl.Command == "" {
			errs = append(errs, fmt.Errorf("plugins[%d] needs a command", i))
		}
		if len(pl.Kinds) == 0 {
			errs = append(errs, fmt.Errorf("plugins[%d] needs at least one kind", i))
		}
		for _, k := range pl.Kinds {
			if k != KindSTT && k != KindTTS {
				errs = append(errs, fmt.Errorf("plugins[%d] has unknown kind %q", i, k))
			}
		}
	}
	for _, t := range []time.Duration{p.OpenAI.Timeout, p.Google.Timeout, p.Whisper.Timeout, p.Piper.Timeout} {
		if t < 0 {
			errs = append(errs, fmt.Errorf("timeouts must not be negative, got %v", t))
			break
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadDotenv loads variables from the given .env files, defaulting to
// ./.env. Missing files are ignored; variables already set win.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("unable to load %s: %w", f, err)
		}
	}
	return nil
}
