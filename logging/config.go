package logging

// Config is the `logging:` extension section of launcher.yml.
type Config struct {
	// Minimum level ("debug", "info", "warn", "error"); LAUNCHER_LOG_LEVEL
	// overrides it.
	Level string `yaml:"level"`

	// ReportCaller adds file:line and function to each entry; also enabled
	// by LAUNCHER_LOG_CALLER=true.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig points logging at an explicit file instead of the
// per-component default under .launcher/logs.
type FileSinkConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// FormatConfig shapes the text output.
type FormatConfig struct {
	// Preset: "default" (rich text), "simple" (message only), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`

	// StructuredToStderr: "auto" (default; only when debugging or stderr is
	// not a tty), "always", or "never".
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
