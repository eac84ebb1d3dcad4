package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/launcher/errors"
	"github.com/grovetools/launcher/schema"
)

var envVarRegex = regexp.MustCompile(`\$\{env:([^}]+)\}`)

// configNames are the recognized project configuration file names, in
// priority order.
var configNames = []string{
	"launcher.yml",
	"launcher.yaml",
	"launcher.toml",
	".launcher.yml",
	".launcher.yaml",
}

// Load reads and parses a launcher configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	return cfg, nil
}

// LoadDefault finds and loads the configuration with hierarchical merging:
// 1. Global config (~/.config/launcher/launcher.yml) - base layer
// 2. Project config (launcher.yml, found by walking up) - overrides global
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with hierarchical merging starting from the
// given directory.
func LoadFrom(startDir string) (*Config, error) {
	return LoadFromWithLogger(startDir, logrus.New())
}

// LoadFromWithLogger loads configuration with hierarchical merging and logging
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	logger.WithField("path", projectPath).Debug("Loading project configuration")

	var finalConfig *Config

	// 1. Load global config if it exists (optional)
	globalPath := GlobalConfigPath()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			logger.WithField("path", globalPath).Debug("Loading global configuration")
			globalData, err := os.ReadFile(globalPath)
			if err == nil {
				globalConfig, parseErr := parse(globalData, globalPath)
				if parseErr == nil {
					finalConfig = globalConfig
				} else {
					logger.WithError(parseErr).Warn("Failed to parse global configuration, continuing without it")
				}
			} else {
				logger.WithError(err).Warn("Failed to read global configuration, continuing without it")
			}
		}
	}

	// 2. Load and merge project config (required)
	projectData, err := os.ReadFile(projectPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read project config").
			WithDetail("path", projectPath)
	}

	projectConfig, err := parse(projectData, projectPath)
	if err != nil {
		return nil, err
	}

	if finalConfig == nil {
		finalConfig = projectConfig
	} else {
		logger.Debug("Merging project configuration over global configuration")
		finalConfig = mergeConfigs(finalConfig, projectConfig)
	}

	if err := finalConfig.validate(); err != nil {
		return nil, err
	}

	finalConfig.SetDefaults()

	logger.Debug("Configuration loaded and validated successfully")
	return finalConfig, nil
}

// LoadActions is the catalog-source contract: it re-reads the configuration
// and returns the defaulted action list. Call it at the start of every
// top-level invocation so live configuration edits are observed.
func LoadActions(startDir string) ([]*Action, error) {
	cfg, err := LoadFrom(startDir)
	if err != nil {
		return nil, err
	}
	return cfg.Actions, nil
}

// FindConfigFile searches for a launcher config file from startDir up to the
// filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(filepath.Join(startDir, configNames[0]))
}

// GlobalConfigPath returns the XDG location of the optional global config.
func GlobalConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "launcher", "launcher.yml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "launcher", "launcher.yml")
	}

	return ""
}

// parse decodes configuration bytes as TOML or YAML depending on the file
// extension, after environment-variable expansion, and validates the result
// against the embedded JSON schema.
func parse(data []byte, path string) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var cfg Config
	if strings.HasSuffix(path, ".toml") {
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration").
				WithDetail("path", path)
		}
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}
	if err := validator.Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed").
			WithDetail("path", path)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${env:VAR} and ${env:VAR:-default} references.
// The explicit env: prefix keeps command templates with ${file}-style
// built-in tokens untouched.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
