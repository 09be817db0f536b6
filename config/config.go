package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// OpenProject remote API
	OpenProject OpenProjectConfig

	// Work-log pipeline specifics
	Worklog WorklogConfig

	// Upload session store
	Session SessionConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// OpenProjectConfig configures the remote OpenProject v3 API client.
type OpenProjectConfig struct {
	BaseURL           string
	AccessToken       string
	AccountableUserID int
	AssigneeUserID    int
	RequestsPerSecond float64

	// Optional OAuth2 client-credentials auth. When ClientID is set it
	// takes precedence over the apikey basic auth token.
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
}

// WorklogConfig holds the pipeline mappings and defaults.
type WorklogConfig struct {
	ProjectMappings  map[string]int // project key -> OpenProject project id
	ActivityMappings map[string]int // activity name -> time entry activity id
	DefaultTimezone  string
	DefaultStatusID  int // status applied to new work packages when the user picks none
}

type SessionConfig struct {
	MaxSessions int
	TTLMinutes  int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// OpenProject
	cfg.OpenProject.BaseURL = strings.TrimRight(viper.GetString("openproject.base_url"), "/")
	cfg.OpenProject.AccessToken = viper.GetString("openproject.access_token")
	cfg.OpenProject.AccountableUserID = viper.GetInt("openproject.accountable_user_id")
	cfg.OpenProject.AssigneeUserID = viper.GetInt("openproject.assignee_user_id")
	cfg.OpenProject.RequestsPerSecond = viper.GetFloat64("openproject.requests_per_second")
	cfg.OpenProject.OAuthClientID = viper.GetString("openproject.oauth_client_id")
	cfg.OpenProject.OAuthClientSecret = viper.GetString("openproject.oauth_client_secret")
	cfg.OpenProject.OAuthTokenURL = viper.GetString("openproject.oauth_token_url")
	if baseURL := viper.GetString("openproject_base_url"); baseURL != "" {
		cfg.OpenProject.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if token := viper.GetString("openproject_access_token"); token != "" {
		cfg.OpenProject.AccessToken = token
	}

	// Work-log pipeline
	cfg.Worklog.ProjectMappings = viperStringIntMap("worklog.project_mappings")
	cfg.Worklog.ActivityMappings = viperStringIntMap("worklog.activity_mappings")
	cfg.Worklog.DefaultTimezone = viper.GetString("worklog.default_timezone")
	cfg.Worklog.DefaultStatusID = viper.GetInt("worklog.default_status_id")

	// Sessions
	cfg.Session.MaxSessions = viper.GetInt("session.max_sessions")
	cfg.Session.TTLMinutes = viper.GetInt("session.ttl_minutes")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the pipeline cannot run with.
// Missing base URL or credentials is fatal: no remote call may be attempted.
func validate(cfg *Config) error {
	if cfg.OpenProject.BaseURL == "" {
		return fmt.Errorf("openproject.base_url is required")
	}
	if cfg.OpenProject.AccessToken == "" && cfg.OpenProject.OAuthClientID == "" {
		return fmt.Errorf("openproject.access_token or oauth client credentials are required")
	}
	if cfg.OpenProject.OAuthClientID != "" && cfg.OpenProject.OAuthTokenURL == "" {
		return fmt.Errorf("openproject.oauth_token_url is required when oauth_client_id is set")
	}
	if len(cfg.Worklog.ProjectMappings) == 0 {
		return fmt.Errorf("no project mappings configured - please add worklog.project_mappings section to config.yaml")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("openproject.requests_per_second", 4.0)
	viper.SetDefault("worklog.default_timezone", "Asia/Dhaka")
	viper.SetDefault("worklog.default_status_id", 7)
	viper.SetDefault("session.max_sessions", 64)
	viper.SetDefault("session.ttl_minutes", 240)
}

// viperStringIntMap reads a map[string]int section, tolerating float64
// values from YAML/JSON unmarshaling.
func viperStringIntMap(key string) map[string]int {
	raw := viper.GetStringMap(key)
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]int, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case int:
			out[k] = n
		case int64:
			out[k] = int(n)
		case float64:
			out[k] = int(n)
		}
	}
	return out
}
