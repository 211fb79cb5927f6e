// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira JiraConfig
}

// JiraConfig holds the Jira Cloud connection parameters.
type JiraConfig struct {
	// URL is the Jira instance base URL (e.g. https://yourcompany.atlassian.net)
	URL string

	// Email is the Atlassian account email used for basic auth
	Email string

	// Token is the API token paired with the account email
	Token string
}

// LoadConfig loads configuration from environment variables, with an optional
// .env file in the working directory filling in unset values.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.BindEnv("jira_url", "JIRA_URL")
	v.BindEnv("jira_email", "JIRA_EMAIL")
	v.BindEnv("jira_api_token", "JIRA_API_TOKEN")

	// A missing .env file is fine; real environment variables take precedence
	// over file values either way.
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	config := &Config{
		Jira: JiraConfig{
			URL:   strings.TrimRight(strings.TrimSpace(v.GetString("jira_url")), "/"),
			Email: strings.TrimSpace(v.GetString("jira_email")),
			Token: strings.TrimSpace(v.GetString("jira_api_token")),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig ensures that all required configuration values are provided.
func validateConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Email == "" {
		missingVars = append(missingVars, "JIRA_EMAIL")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_API_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}
