package esglens

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/esglens/esglens/internal/config"
	"github.com/esglens/esglens/internal/logging"
	"github.com/esglens/esglens/internal/rules"
	"golang.org/x/term"
)

// loadConfigs returns the repo-local config (with ESGLENS_* overrides
// applied) and the global config. Missing files yield empty configs.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if st, err := os.Stat(root); err == nil && !st.IsDir() {
		root = filepath.Dir(root)
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	return local.ApplyEnv(), global
}

// newLogger builds the stderr logger. Flags win over config; a local
// logging block wins over the global one.
func newLogger(local, global config.FileConfig) *slog.Logger {
	src := global
	if local.Logging != nil {
		src = local
	}
	format := flagLogFormat
	if format == "" {
		format = src.LogFormat()
	}
	level := flagLogLevel
	if level == "" {
		level = src.LogLevel()
	}
	return logging.New(os.Stderr, format, level)
}

// loadTable returns the rule pack at path, or the built-in table when path
// is empty.
func loadTable(path string) (*rules.Table, error) {
	if path == "" {
		return rules.Default(), nil
	}
	return rules.LoadPack(path)
}

// colorEnabled reports whether styled output should be written to f.
func colorEnabled(noColor bool, f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}
