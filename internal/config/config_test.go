package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "store", cfg.Resume.Source)
	assert.Equal(t, 2*time.Minute, cfg.Redis.LockTTL)

	ic := cfg.InterviewSettings()
	assert.Equal(t, 3, ic.MinQuestions)
	assert.Equal(t, 10, ic.MaxQuestions)
	assert.Equal(t, 30.0, ic.TerminationThreshold)
	assert.Equal(t, 90, ic.TimeLimits.Easy)
	assert.Equal(t, 180, ic.TimeLimits.Hard)
	assert.Equal(t, 45*time.Second, ic.OracleTimeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTERVIEWD_INTERVIEW_MIN_QUESTIONS", "5")
	t.Setenv("INTERVIEWD_SERVER_ADDR", ":9090")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Interview.MinQuestions)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
interview:
  max_questions: 6
  termination_threshold: 40
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Interview.MaxQuestions)
	assert.Equal(t, 40.0, cfg.Interview.TerminationThreshold)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Interview.MinQuestions)
}

func TestLoad_DefaultFileInConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", "interviewd.yaml"),
		[]byte("server:\n  addr: \":7070\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidInterviewSettings(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INTERVIEWD_INTERVIEW_MIN_QUESTIONS", "8")
	t.Setenv("INTERVIEWD_INTERVIEW_MAX_QUESTIONS", "4")

	_, err := Load("")
	assert.ErrorContains(t, err, "interview")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "sqlite"},
			Resume:   ResumeConfig{Source: "store"},
			Interview: InterviewConfig{
				MinQuestions: 3, MaxQuestions: 10, TerminationThreshold: 30,
				TimeLimitEasy: 90, TimeLimitMedium: 120, TimeLimitHard: 180,
			},
		}
	}
	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres" }},
		{"http resumes without url", func(c *Config) { c.Resume.Source = "http" }},
		{"unknown resume source", func(c *Config) { c.Resume.Source = "s3" }},
		{"threshold above 100", func(c *Config) { c.Interview.TerminationThreshold = 120 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLLMSettings(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY", "AZURE_OPENAI_API_KEY"} {
		t.Setenv(k, "")
	}
	c := &Config{LLM: LLMConfig{
		Provider: "openai",
		Timeout:  5 * time.Second,
		OpenAI:   ProviderSettings{APIKey: "sk-test", Model: "gpt-4o-mini"},
		Retry:    RetrySettings{MaxAttempts: 2, InitialWait: time.Millisecond, MaxWait: time.Second, Multiplier: 2},
	}}

	got := c.LLMSettings()
	assert.Equal(t, "openai", got.Provider)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Equal(t, "sk-test", got.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", got.OpenAI.Model)
	assert.Equal(t, 2, got.Retry.MaxAttempts)
}
