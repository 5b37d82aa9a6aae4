package cli

import (
	"time"

	"hbsmoke/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string

	BaseURL  string
	Timeout  time.Duration
	Only     string
	FailFast bool
	Progress bool
	NoSave   bool
	History  bool

	Plain bool
	Limit int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		BaseURL:   f.BaseURL,
		Timeout:   f.Timeout,
		Only:      f.Only,
		FailFast:  f.FailFast,
		Progress:  f.Progress,
		NoSave:    f.NoSave,
		History:   f.History,
		Plain:     f.Plain,
		Limit:     f.Limit,
		LogLevel:  f.LogLevel,
		LogFormat: f.LogFormat,
	}
}
