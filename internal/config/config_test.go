package config

import (
	"reflect"
	"testing"
)

// clearEnv blanks every variable the loader reads so defaults apply
// regardless of the host environment.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"LOGO_MCP_LOG_LEVEL",
		"LOGO_MCP_MODEL_PATH",
		"LOGO_MCP_ONNX_LIB",
		"LOGO_MCP_MODEL_INPUT",
		"LOGO_MCP_MODEL_OUTPUT",
		"LOGO_MCP_INPUT_SIZE",
		"LOGO_MCP_BATCH_SIZE",
		"LOGO_MCP_FEATURE_SHAPE",
		"LOGO_MCP_BANK_PATH",
		"LOGO_MCP_THRESHOLD",
		"LOGO_MCP_OCR_LANG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Model.Path != "" || cfg.Model.Library != "" {
		t.Errorf("model paths should default empty, got %q and %q", cfg.Model.Path, cfg.Model.Library)
	}
	if cfg.Model.InputName != "input" || cfg.Model.OutputName != "output" {
		t.Errorf("tensor names = %q, %q; want input, output", cfg.Model.InputName, cfg.Model.OutputName)
	}
	if cfg.Model.InputSize != 224 {
		t.Errorf("InputSize = %d, want 224", cfg.Model.InputSize)
	}
	if cfg.Model.BatchSize != 100 {
		t.Errorf("BatchSize = %d, want 100", cfg.Model.BatchSize)
	}
	if want := []int{1280, 7, 7}; !reflect.DeepEqual(cfg.Model.FeatureShape, want) {
		t.Errorf("FeatureShape = %v, want %v", cfg.Model.FeatureShape, want)
	}
	if cfg.Match.BankPath != "" {
		t.Errorf("BankPath = %q, want empty", cfg.Match.BankPath)
	}
	if cfg.Match.Threshold != 0.95 {
		t.Errorf("Threshold = %v, want 0.95", cfg.Match.Threshold)
	}
	if cfg.Match.OCRLanguage != "eng" {
		t.Errorf("OCRLanguage = %q, want %q", cfg.Match.OCRLanguage, "eng")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOGO_MCP_LOG_LEVEL", "debug")
	t.Setenv("LOGO_MCP_MODEL_PATH", "/models/logos.onnx")
	t.Setenv("LOGO_MCP_ONNX_LIB", "/opt/onnxruntime/libonnxruntime.so")
	t.Setenv("LOGO_MCP_MODEL_INPUT", "images")
	t.Setenv("LOGO_MCP_MODEL_OUTPUT", "features")
	t.Setenv("LOGO_MCP_INPUT_SIZE", "192")
	t.Setenv("LOGO_MCP_BATCH_SIZE", "16")
	t.Setenv("LOGO_MCP_FEATURE_SHAPE", "512, 4, 4")
	t.Setenv("LOGO_MCP_BANK_PATH", "/data/background.bank")
	t.Setenv("LOGO_MCP_THRESHOLD", "0.9")
	t.Setenv("LOGO_MCP_OCR_LANG", "deu")

	cfg := Load()
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.Model.Path != "/models/logos.onnx" {
		t.Errorf("Model.Path = %q", cfg.Model.Path)
	}
	if cfg.Model.Library != "/opt/onnxruntime/libonnxruntime.so" {
		t.Errorf("Model.Library = %q", cfg.Model.Library)
	}
	if cfg.Model.InputName != "images" || cfg.Model.OutputName != "features" {
		t.Errorf("tensor names = %q, %q", cfg.Model.InputName, cfg.Model.OutputName)
	}
	if cfg.Model.InputSize != 192 {
		t.Errorf("InputSize = %d, want 192", cfg.Model.InputSize)
	}
	if cfg.Model.BatchSize != 16 {
		t.Errorf("BatchSize = %d, want 16", cfg.Model.BatchSize)
	}
	if want := []int{512, 4, 4}; !reflect.DeepEqual(cfg.Model.FeatureShape, want) {
		t.Errorf("FeatureShape = %v, want %v", cfg.Model.FeatureShape, want)
	}
	if cfg.Match.BankPath != "/data/background.bank" {
		t.Errorf("BankPath = %q", cfg.Match.BankPath)
	}
	if cfg.Match.Threshold != 0.9 {
		t.Errorf("Threshold = %v, want 0.9", cfg.Match.Threshold)
	}
	if cfg.Match.OCRLanguage != "deu" {
		t.Errorf("OCRLanguage = %q, want %q", cfg.Match.OCRLanguage, "deu")
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOGO_MCP_INPUT_SIZE", "huge")
	t.Setenv("LOGO_MCP_THRESHOLD", "ninety-five percent")
	t.Setenv("LOGO_MCP_FEATURE_SHAPE", "1280,x,7")

	cfg := Load()
	if cfg.Model.InputSize != 224 {
		t.Errorf("InputSize = %d, want default 224", cfg.Model.InputSize)
	}
	if cfg.Match.Threshold != 0.95 {
		t.Errorf("Threshold = %v, want default 0.95", cfg.Match.Threshold)
	}
	if want := []int{1280, 7, 7}; !reflect.DeepEqual(cfg.Model.FeatureShape, want) {
		t.Errorf("FeatureShape = %v, want default %v", cfg.Model.FeatureShape, want)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			LogLevel: "info",
			Model: ModelConfig{
				InputName:    "input",
				OutputName:   "output",
				InputSize:    224,
				BatchSize:    100,
				FeatureShape: []int{1280, 7, 7},
			},
			Match: MatchConfig{Threshold: 0.95, OCRLanguage: "eng"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config should validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero input size", func(c *Config) { c.Model.InputSize = 0 }},
		{"negative batch size", func(c *Config) { c.Model.BatchSize = -1 }},
		{"empty feature shape", func(c *Config) { c.Model.FeatureShape = nil }},
		{"zero feature dim", func(c *Config) { c.Model.FeatureShape = []int{1280, 0, 7} }},
		{"zero threshold", func(c *Config) { c.Match.Threshold = 0 }},
		{"threshold above one", func(c *Config) { c.Match.Threshold = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("want validation error, got none")
			}
		})
	}
}
