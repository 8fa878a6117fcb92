package environment_variables

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type EnvironmentVariable struct {
	SUPABASE_URL              string        `env:"SUPABASE_URL"`
	SUPABASE_ANON_KEY         string        `env:"SUPABASE_ANON_KEY"`
	SUPABASE_SERVICE_ROLE_KEY string        `env:"SUPABASE_SERVICE_ROLE_KEY"`
	SUPABASE_JWT_SECRET       string        `env:"SUPABASE_JWT_SECRET"`
	SUPABASE_RATE_LIMIT       float64       `env:"SUPABASE_RATE_LIMIT" envDefault:"20"`
	SUPABASE_TIMEOUT          time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"0s"`
	HTTP_PORT                 int           `env:"HTTP_PORT" envDefault:"8080"`
	ALLOWED_CORS_HOSTS        []string      `env:"ALLOWED_CORS_HOSTS" envSeparator:","`
	LOG_LEVEL                 string        `env:"LOG_LEVEL" envDefault:"info"`
	ENABLE_ADMIN_API          bool          `env:"ENABLE_ADMIN_API" envDefault:"false"`

	CACHE_TYPE     string `env:"CACHE_TYPE" envDefault:"memory"`
	CACHE_URL      string `env:"CACHE_URL"`
	CACHE_PASSWORD string `env:"CACHE_PASSWORD"`
	CACHE_DB       string `env:"CACHE_DB"`

	TASKS_CACHE_TTL       time.Duration `env:"TASKS_CACHE_TTL" envDefault:"3m"`
	TASK_GROUPS_CACHE_TTL time.Duration `env:"TASK_GROUPS_CACHE_TTL" envDefault:"3m"`
	DOCUMENTS_CACHE_TTL   time.Duration `env:"DOCUMENTS_CACHE_TTL" envDefault:"10m"`
	WEDDINGS_CACHE_TTL    time.Duration `env:"WEDDINGS_CACHE_TTL" envDefault:"5m"`
	CLIENTS_CACHE_TTL     time.Duration `env:"CLIENTS_CACHE_TTL" envDefault:"5m"`
	PROFILES_CACHE_TTL    time.Duration `env:"PROFILES_CACHE_TTL" envDefault:"10m"`
	SLIDES_CACHE_TTL      time.Duration `env:"SLIDES_CACHE_TTL" envDefault:"30m"`
	SCROLL_STATE_TTL      time.Duration `env:"SCROLL_STATE_TTL" envDefault:"12h"`

	PREFERENCES_DB_PATH string        `env:"PREFERENCES_DB_PATH" envDefault:"preferences.db"`
	NOTES_DEBOUNCE      time.Duration `env:"NOTES_DEBOUNCE" envDefault:"1s"`
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	if err := env.Parse(ev); err != nil {
		fmt.Printf("Invalid SYSENV: %v\n", err)
	}
	if ev.SUPABASE_URL == "" {
		fmt.Printf("Missing SYSENV: %s\n", "SUPABASE_URL")
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
