package config

import (
	"strings"
	"testing"
)

func TestValidate_DefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Default config should validate, got: %v", err)
	}
}

func TestValidate_InvalidLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "TRACE"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for level 'TRACE', got nil")
	}
	if !strings.Contains(err.Error(), "Level") {
		t.Errorf("Expected error to mention Level, got: %v", err)
	}
}

func TestValidate_InvalidFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for format 'xml', got nil")
	}
}

func TestValidate_MissingOutput(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Output = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for empty output, got nil")
	}
}

func TestValidate_NFSOptionWithComma(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Mount.NFSOptions = []string{"nolock,vers=3"}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for comma in option, got nil")
	}
	if !strings.Contains(err.Error(), "comma") {
		t.Errorf("Expected comma error, got: %v", err)
	}
}

func TestValidate_NFSOptionWithWhitespace(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Mount.NFSOptions = []string{"vers= 3"}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for whitespace in option, got nil")
	}
}

func TestValidate_EmptyNFSOption(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Mount.NFSOptions = []string{""}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for empty option, got nil")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("Expected empty option error, got: %v", err)
	}
}

func TestValidate_JournalEnabledWithoutPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Journal.Enabled = true
	cfg.Journal.DBPath = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for enabled journal without db_path, got nil")
	}
	if !strings.Contains(err.Error(), "db_path") {
		t.Errorf("Expected db_path error, got: %v", err)
	}
}

func TestValidate_MetricsEnabledWithoutPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.TextfilePath = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for enabled metrics without textfile_path, got nil")
	}
	if !strings.Contains(err.Error(), "textfile_path") {
		t.Errorf("Expected textfile_path error, got: %v", err)
	}
}

func TestValidate_LowercaseLevelAccepted(t *testing.T) {
	// Validation runs on raw values too; lowercase levels are valid
	// because ApplyDefaults normalizes them afterwards
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "debug"

	if err := Validate(cfg); err != nil {
		t.Errorf("Lowercase level should validate, got: %v", err)
	}
}
