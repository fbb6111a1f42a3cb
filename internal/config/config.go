// Package config loads process configuration from the environment.
// All remote-service credentials are required and validated eagerly so
// the process fails fast at startup instead of on the first request.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPort is the HTTP listener port when PORT is unset.
const DefaultPort = "8000"

// Config carries everything the adapters need to reach their services.
type Config struct {
	// GitHubToken authenticates writes to the content repository.
	GitHubToken string

	// GitHubOwner/GitHubRepo address the content repository.
	GitHubOwner string
	GitHubRepo  string

	// GitHubUser is the account whose GitHub Pages host the content.
	GitHubUser string

	// OpenAIAPIKey authenticates the summarizer.
	OpenAIAPIKey string

	// OpenAIModel and OpenAIBaseURL override the summarizer defaults
	// when set.
	OpenAIModel   string
	OpenAIBaseURL string

	// Port is the HTTP listener port.
	Port string
}

// Load reads an optional .env file, then builds the configuration from
// the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment. It
// returns an error naming every missing required variable.
func FromEnv() (*Config, error) {
	cfg := &Config{
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		GitHubUser:    os.Getenv("GITHUB_USERNAME"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Port:          envOrDefault("PORT", DefaultPort),
	}

	repo := os.Getenv("GITHUB_REPO")

	var missing []string
	if cfg.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if repo == "" {
		missing = append(missing, "GITHUB_REPO")
	}
	if cfg.GitHubUser == "" {
		missing = append(missing, "GITHUB_USERNAME")
	}
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	// GITHUB_REPO is "owner/name"; a bare name defaults the owner to
	// GITHUB_USERNAME.
	if owner, name, found := strings.Cut(repo, "/"); found {
		cfg.GitHubOwner, cfg.GitHubRepo = owner, name
	} else {
		cfg.GitHubOwner, cfg.GitHubRepo = cfg.GitHubUser, repo
	}

	return cfg, nil
}

// PagesURL returns the public GitHub Pages URL for a stored path.
func (c *Config) PagesURL(path string) string {
	return fmt.Sprintf("https://%s.github.io/%s/%s", c.GitHubUser, c.GitHubRepo, path)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
