package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// InitConfig writes a default configuration file at the default location.
//
// Parameters:
//   - force: Overwrite an existing config file
//
// Returns:
//   - string: Path of the written config file
//   - error: If the file exists (without force) or cannot be written
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath writes a default configuration file to an explicit path,
// creating parent directories as needed.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := generateYAMLWithComments(GetDefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to generate config: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateYAMLWithComments renders the configuration as YAML with a
// commented header per section, suitable for a starter config file.
func generateYAMLWithComments(cfg *Config) (string, error) {
	var b strings.Builder

	b.WriteString("# dumpmount configuration file\n")
	b.WriteString("#\n")
	b.WriteString("# Environment variables with the DUMPMOUNT_ prefix override file values,\n")
	b.WriteString("# e.g. DUMPMOUNT_LOGGING_LEVEL=DEBUG overrides logging.level.\n")
	b.WriteString("\n")

	sections := []struct {
		comment string
		value   any
	}{
		{
			comment: "Log verbosity (DEBUG, INFO, WARN, ERROR), format (text, json)\nand destination (stderr, stdout, or a file path).",
			value:   map[string]LoggingConfig{"logging": cfg.Logging},
		},
		{
			comment: "Default options for NFS mounts, joined with commas at mount time.\nnolock is preset because no lock daemon runs in a crash-capture\nenvironment.",
			value:   map[string]MountConfig{"mount": cfg.Mount},
		},
		{
			comment: "Attach journal: records successful NFS attaches in a local BadgerDB\nso status and cleanup can work across invocations.",
			value:   map[string]JournalConfig{"journal": cfg.Journal},
		},
		{
			comment: "Metrics textfile for node_exporter's textfile collector, written by\nmutating commands when enabled.",
			value:   map[string]MetricsConfig{"metrics": cfg.Metrics},
		},
	}

	for i, section := range sections {
		if i > 0 {
			b.WriteString("\n")
		}

		for _, line := range strings.Split(section.comment, "\n") {
			b.WriteString("# ")
			b.WriteString(line)
			b.WriteString("\n")
		}

		out, err := yaml.Marshal(section.value)
		if err != nil {
			return "", err
		}
		b.Write(out)
	}

	return b.String(), nil
}
