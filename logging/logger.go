// Package logging configures per-component logrus entries with a shared
// file sink under the project state dir and an opt-in stderr mirror.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/launcher/config"
)

var (
	loggersMu sync.Mutex
	loggers   = make(map[string]*logrus.Entry)
)

// NewLogger returns the logger for a component, creating and caching it on
// first use. Configuration comes from the `logging:` extension section of
// launcher.yml, overridable via LAUNCHER_LOG_LEVEL and LAUNCHER_LOG_CALLER.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}

	var logCfg Config
	if cfg, err := config.LoadDefault(); err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}

	logger := logrus.New()
	logger.SetLevel(resolveLevel(logCfg))
	if os.Getenv("LAUNCHER_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}
	logger.SetFormatter(resolveFormatter(logCfg))
	logger.SetOutput(buildSink(logger, component, logCfg))

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

func resolveLevel(logCfg Config) logrus.Level {
	levelStr := logCfg.Level
	if env := os.Getenv("LAUNCHER_LOG_LEVEL"); env != "" {
		levelStr = env
	}
	if level, err := logrus.ParseLevel(levelStr); err == nil {
		return level
	}
	return logrus.InfoLevel
}

func resolveFormatter(logCfg Config) logrus.Formatter {
	switch logCfg.Format.Preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}}
	default:
		return &TextFormatter{Config: logCfg.Format}
	}
}

// buildSink assembles the output writer: the component's log file plus,
// depending on the structuredToStderr mode, stderr. In "auto" mode stderr is
// mirrored only when debugging or when stderr is not a terminal, so
// interactive runs keep the screen for prompts and the tree view.
func buildSink(logger *logrus.Logger, component string, logCfg Config) io.Writer {
	var writers []io.Writer

	if path := resolveLogFilePath(component, logCfg); path != "" {
		if file := openLogFile(logger, path, logCfg); file != nil {
			writers = append(writers, file)
		}
	}

	mode := logCfg.Format.StructuredToStderr
	if mode == "" {
		mode = "auto"
	}
	toStderr := mode == "always"
	if mode == "auto" {
		debug := os.Getenv("LAUNCHER_DEBUG") == "1" || logger.GetLevel() == logrus.DebugLevel
		tty := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		toStderr = debug || !tty
	}
	if toStderr {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		// Interactive auto mode with no file sink: drop log output rather
		// than fighting the TUI for the terminal.
		return io.Discard
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

func openLogFile(logger *logrus.Logger, path string, logCfg Config) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		if logCfg.File.Enabled {
			logger.Warnf("Failed to create log directory %s: %v", filepath.Dir(path), err)
		}
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		if logCfg.File.Enabled {
			logger.Warnf("Failed to open log file %s: %v", path, err)
		}
		return nil
	}
	return file
}

// DefaultLogFilePath returns the log file a component writes to today when no
// explicit file sink is configured. Used by `launcher logs` to find the file
// to tail.
func DefaultLogFilePath(component string) string {
	return resolveLogFilePath(component, Config{})
}

// LogFilePath returns the log file for a component under the given logging
// configuration: the explicit file sink when enabled, otherwise the
// per-component default.
func LogFilePath(component string, logCfg Config) string {
	return resolveLogFilePath(component, logCfg)
}

func resolveLogFilePath(component string, logCfg Config) string {
	if logCfg.File.Enabled && logCfg.File.Path != "" {
		return expandPath(logCfg.File.Path)
	}

	// Default to .launcher/logs/<component>-<date>.log next to the project
	// so logs stay with the workspace they describe.
	name := fmt.Sprintf("%s-%s.log", component, time.Now().Format("2006-01-02"))
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, ".launcher", "logs", name)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".launcher", "logs", name)
	}
	return ""
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
