package update

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ardnew/rdmx/log"
)

// DefaultBackup enables backups unless disabled with [WithBackup].
const DefaultBackup = true

type config struct {
	backup    bool
	backupDir string
	logger    log.Logger
	now       func() time.Time
}

func defaultConfig() config {
	return config{
		backup:    DefaultBackup,
		backupDir: filepath.Join(os.TempDir(), "rdmx-backup"),
		now:       time.Now,
	}
}

// Option configures an [Updater].
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}

// WithBackup enables or disables backups.
func WithBackup(enable bool) Option {
	return func(c config) config {
		c.backup = enable

		return c
	}
}

// WithBackupDir sets the directory under which backups are stored.
// An empty dir keeps the current setting.
func WithBackupDir(dir string) Option {
	return func(c config) config {
		if dir != "" {
			c.backupDir = dir
		}

		return c
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(l log.Logger) Option {
	return func(c config) config {
		c.logger = l

		return c
	}
}

// WithClock sets the function that timestamps backups.
func WithClock(now func() time.Time) Option {
	return func(c config) config {
		if now != nil {
			c.now = now
		}

		return c
	}
}
