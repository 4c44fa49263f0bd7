package config

import "time"

// Config is the merged runtime configuration.
type Config struct {
	// Repository is the "owner/name" pair, always sourced from the
	// GITHUB_REPOSITORY environment variable.
	Repository string
	Git        GitConfig
	Limits     LimitsConfig
	Timeouts   TimeoutsConfig
	Logging    LoggingConfig
}

// GitConfig locates the local repository and its upstream remote.
type GitConfig struct {
	RepositoryDir string `mapstructure:"repositoryDir"`
	Remote        string `mapstructure:"remote"`
}

// LimitsConfig bounds the size of the generated report.
type LimitsConfig struct {
	MaxDiffLines     int `mapstructure:"maxDiffLines"`
	DiffBatchSize    int `mapstructure:"diffBatchSize"`
	MaxThreads       int `mapstructure:"maxThreads"`
	MaxIssueComments int `mapstructure:"maxIssueComments"`
	ReviewBodyChars  int `mapstructure:"reviewBodyChars"`
	CommentBodyChars int `mapstructure:"commentBodyChars"`
	ReplyBodyChars   int `mapstructure:"replyBodyChars"`
}

// TimeoutsConfig separates the two external call classes.
type TimeoutsConfig struct {
	Short time.Duration `mapstructure:"short"`
	Long  time.Duration `mapstructure:"long"`
}

// LoggingConfig controls the console logger.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}
