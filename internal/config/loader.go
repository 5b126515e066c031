package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// INTERVIEWD_SERVER_ADDR or INTERVIEWD_INTERVIEW_MIN_QUESTIONS.
const EnvPrefix = "INTERVIEWD"

// Load reads configuration in priority order: environment (including a
// .env file in the working directory), the config file, then defaults.
// path may be empty, in which case interviewd.yaml is looked up in the
// working directory and ./configs.
func Load(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("interviewd")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit_max", 60)
	v.SetDefault("server.rate_limit_window", time.Minute)
	v.SetDefault("server.cors_origins", "*")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.lock_ttl", 2*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("interview.min_questions", 3)
	v.SetDefault("interview.max_questions", 10)
	v.SetDefault("interview.termination_threshold", 30)
	v.SetDefault("interview.time_limit_easy", 90)
	v.SetDefault("interview.time_limit_medium", 120)
	v.SetDefault("interview.time_limit_hard", 180)
	v.SetDefault("interview.oracle_timeout", 45*time.Second)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	for _, p := range []string{"anthropic", "openai", "gemini", "openrouter"} {
		v.SetDefault("llm."+p+".api_key", "")
		v.SetDefault("llm."+p+".model", "")
		v.SetDefault("llm."+p+".base_url", "")
	}
	v.SetDefault("llm.azure.api_key", "")
	v.SetDefault("llm.azure.endpoint", "")
	v.SetDefault("llm.azure.deployment", "")
	v.SetDefault("llm.retry.max_attempts", 3)
	v.SetDefault("llm.retry.initial_wait", time.Second)
	v.SetDefault("llm.retry.max_wait", 10*time.Second)
	v.SetDefault("llm.retry.multiplier", 2.0)

	v.SetDefault("resume.source", "store")
	v.SetDefault("resume.base_url", "")
	v.SetDefault("resume.timeout", 10*time.Second)
}
