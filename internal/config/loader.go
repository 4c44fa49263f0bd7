// Package config loads runtime configuration from an optional YAML file,
// environment variables, and built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// repositoryEnvVar identifies the "owner/repository" pair the run targets.
// It is the single required environment variable.
const repositoryEnvVar = "GITHUB_REPOSITORY"

// LoaderOptions describes how configuration should be discovered.
type LoaderOptions struct {
	ConfigPaths []string
	FileName    string
	EnvPrefix   string
}

// Load returns the merged configuration from files, environment variables,
// and defaults. A missing or malformed repository variable is an error here,
// before any process is spawned or network call made.
func Load(opts LoaderOptions) (Config, error) {
	v := viper.New()

	name := opts.FileName
	if name == "" {
		name = "prctx"
	}

	configFile := locateConfigFile(name, opts.ConfigPaths)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(name)
	}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = "PRCTX"
	}
	v.SetEnvPrefix(prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AllowEmptyEnv(true)

	setDefaults(v)

	if configFile != "" {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	repository := strings.TrimSpace(os.Getenv(repositoryEnvVar))
	if err := validateRepository(repository); err != nil {
		return Config{}, err
	}
	cfg.Repository = repository

	return cfg, nil
}

func validateRepository(repository string) error {
	if repository == "" {
		return fmt.Errorf("%s is required (owner/repository)", repositoryEnvVar)
	}
	owner, name, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("%s must be of the form owner/repository, got %q", repositoryEnvVar, repository)
	}
	return nil
}

func locateConfigFile(name string, paths []string) string {
	searchPaths := append([]string{}, paths...)
	searchPaths = append(searchPaths, ".")
	for _, dir := range searchPaths {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name+".yaml")
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("git.repositoryDir", ".")
	v.SetDefault("git.remote", "origin")

	v.SetDefault("limits.maxDiffLines", 10000)
	v.SetDefault("limits.diffBatchSize", 200)
	v.SetDefault("limits.maxThreads", 200)
	v.SetDefault("limits.maxIssueComments", 200)
	v.SetDefault("limits.reviewBodyChars", 500)
	v.SetDefault("limits.commentBodyChars", 1000)
	v.SetDefault("limits.replyBodyChars", 800)

	v.SetDefault("timeouts.short", "30s")
	v.SetDefault("timeouts.long", "120s")

	v.SetDefault("logging.level", "info")
}
