package config

import (
	"fmt"
	"time"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/llm"
)

// Config is the main application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Interview InterviewConfig `mapstructure:"interview"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Resume    ResumeConfig    `mapstructure:"resume"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RateLimitMax    int           `mapstructure:"rate_limit_max"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
	CORSOrigins     string        `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`    // empty means the default SQLite path
}

// RedisConfig enables distributed session locks when Addr is set.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	LockTTL  time.Duration `mapstructure:"lock_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type InterviewConfig struct {
	MinQuestions         int           `mapstructure:"min_questions"`
	MaxQuestions         int           `mapstructure:"max_questions"`
	TerminationThreshold float64       `mapstructure:"termination_threshold"`
	TimeLimitEasy        int           `mapstructure:"time_limit_easy"`
	TimeLimitMedium      int           `mapstructure:"time_limit_medium"`
	TimeLimitHard        int           `mapstructure:"time_limit_hard"`
	OracleTimeout        time.Duration `mapstructure:"oracle_timeout"`
}

type LLMConfig struct {
	Provider   string           `mapstructure:"provider"`
	Timeout    time.Duration    `mapstructure:"timeout"`
	Anthropic  ProviderSettings `mapstructure:"anthropic"`
	OpenAI     ProviderSettings `mapstructure:"openai"`
	Gemini     ProviderSettings `mapstructure:"gemini"`
	OpenRouter ProviderSettings `mapstructure:"openrouter"`
	Azure      AzureSettings    `mapstructure:"azure"`
	Retry      RetrySettings    `mapstructure:"retry"`
}

type ProviderSettings struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AzureSettings struct {
	APIKey     string `mapstructure:"api_key"`
	Endpoint   string `mapstructure:"endpoint"`
	Deployment string `mapstructure:"deployment"`
}

type RetrySettings struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// ResumeConfig selects where resume profiles are resolved from.
type ResumeConfig struct {
	Source  string        `mapstructure:"source"` // store | http
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// InterviewSettings converts the interview section to the controller's
// configuration value.
func (c *Config) InterviewSettings() interview.Config {
	return interview.Config{
		MinQuestions:         c.Interview.MinQuestions,
		MaxQuestions:         c.Interview.MaxQuestions,
		TerminationThreshold: c.Interview.TerminationThreshold,
		TimeLimits: interview.TimeLimits{
			Easy:   c.Interview.TimeLimitEasy,
			Medium: c.Interview.TimeLimitMedium,
			Hard:   c.Interview.TimeLimitHard,
		},
		OracleTimeout: c.Interview.OracleTimeout,
	}
}

// LLMSettings converts the llm section to an llm.Config. When no provider
// is configured, standard API key env vars are probed.
func (c *Config) LLMSettings() llm.Config {
	if c.LLM.Provider == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			return discovered
		}
	}

	cfg := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}

	cfg.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	cfg.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	cfg.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	cfg.Gemini.APIKey = c.LLM.Gemini.APIKey
	cfg.Gemini.BaseURL = c.LLM.Gemini.BaseURL
	cfg.OpenRouter.APIKey = c.LLM.OpenRouter.APIKey
	cfg.OpenRouter.BaseURL = c.LLM.OpenRouter.BaseURL
	setIf(&cfg.Anthropic.Model, c.LLM.Anthropic.Model)
	setIf(&cfg.OpenAI.Model, c.LLM.OpenAI.Model)
	setIf(&cfg.Gemini.Model, c.LLM.Gemini.Model)
	setIf(&cfg.OpenRouter.Model, c.LLM.OpenRouter.Model)
	cfg.Azure = llm.AzureConfig{
		APIKey:     c.LLM.Azure.APIKey,
		Endpoint:   c.LLM.Azure.Endpoint,
		Deployment: c.LLM.Azure.Deployment,
	}

	if r := c.LLM.Retry; r.MaxAttempts > 0 {
		cfg.Retry = llm.RetryConfig{
			MaxAttempts: r.MaxAttempts,
			InitialWait: r.InitialWait,
			MaxWait:     r.MaxWait,
			Multiplier:  r.Multiplier,
		}
	}
	return cfg
}

// Validate checks cross-field constraints not covered by defaults.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required for postgres")
	}
	switch c.Resume.Source {
	case "store":
	case "http":
		if c.Resume.BaseURL == "" {
			return fmt.Errorf("resume.base_url is required when resume.source is http")
		}
	default:
		return fmt.Errorf("resume.source must be store or http, got %q", c.Resume.Source)
	}
	if err := c.InterviewSettings().Validate(); err != nil {
		return fmt.Errorf("interview: %w", err)
	}
	return nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
