package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of config.yml used by the tool, plus the
// secrets pulled from the environment. Only the fields currently needed by
// commands are modeled.
type Config struct {
	Jira struct {
		Server   string `yaml:"server"`
		Username string `yaml:"username"`
		APIToken string `yaml:"-"`
	} `yaml:"jira"`
	GitHub struct {
		// Repo is the "owner/name" slug the pull requests are read from.
		Repo     string `yaml:"repo"`
		Username string `yaml:"username"`
		Token    string `yaml:"-"`
	} `yaml:"github"`
	Report struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"report"`
}

// Load reads the YAML configuration at path and layers the environment on
// top. A .env file in the working directory is loaded first when present.
// A missing config file is not an error; everything can come from the
// environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var c Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		slog.Info(fmt.Sprintf("Loaded config: %s", path))
	case errors.Is(err, os.ErrNotExist):
		slog.Warn("config.missing", "path", path)
	default:
		return nil, err
	}

	if v := os.Getenv("JIRA_SERVER_URL"); v != "" {
		c.Jira.Server = v
	}
	if v := os.Getenv("JIRA_USERNAME"); v != "" {
		c.Jira.Username = v
	}
	if v := os.Getenv("GITHUB_REPO"); v != "" {
		c.GitHub.Repo = v
	}
	if v := os.Getenv("GITHUB_USERNAME"); v != "" {
		c.GitHub.Username = v
	}
	c.Jira.APIToken = os.Getenv("JIRA_API_TOKEN")
	c.GitHub.Token = os.Getenv("GITHUB_TOKEN")

	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "data"
	}
	return &c, nil
}

// Validate checks that every setting the report command depends on is set.
func (c *Config) Validate() error {
	var missing []string
	if c.Jira.Server == "" {
		missing = append(missing, "jira.server")
	}
	if c.Jira.Username == "" {
		missing = append(missing, "jira.username")
	}
	if c.Jira.APIToken == "" {
		missing = append(missing, "JIRA_API_TOKEN")
	}
	if c.GitHub.Repo == "" {
		missing = append(missing, "github.repo")
	}
	if c.GitHub.Username == "" {
		missing = append(missing, "github.username")
	}
	if c.GitHub.Token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("incomplete configuration, missing: %v", missing)
	}
	return nil
}
