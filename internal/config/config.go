// Package config loads server settings from the environment.
//
// Settings come from LOGO_MCP_* environment variables, with a .env file
// in the working directory honored when present:
//
//	LOGO_MCP_LOG_LEVEL      logrus level name (default "info")
//	LOGO_MCP_MODEL_PATH     ONNX feature extractor model file
//	LOGO_MCP_ONNX_LIB       onnxruntime shared library path
//	LOGO_MCP_MODEL_INPUT    model input tensor name (default "input")
//	LOGO_MCP_MODEL_OUTPUT   model output tensor name (default "output")
//	LOGO_MCP_INPUT_SIZE     model input edge in pixels (default 224)
//	LOGO_MCP_BATCH_SIZE     images per inference batch (default 100)
//	LOGO_MCP_FEATURE_SHAPE  per-image output dims, comma separated (default "1280,7,7")
//	LOGO_MCP_BANK_PATH      default background feature bank file
//	LOGO_MCP_THRESHOLD      default cutoff threshold (default 0.95)
//	LOGO_MCP_OCR_LANG       Tesseract language code (default "eng")
//
// Unparseable numeric values fall back to their defaults rather than
// failing the load; Validate reports values that cannot work at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ModelConfig describes the ONNX feature extractor.
type ModelConfig struct {
	Path         string
	Library      string
	InputName    string
	OutputName   string
	InputSize    int
	BatchSize    int
	FeatureShape []int
}

// MatchConfig holds the defaults applied to match requests that do not
// override them.
type MatchConfig struct {
	BankPath    string
	Threshold   float64
	OCRLanguage string
}

// Config is the full server configuration.
type Config struct {
	LogLevel string
	Model    ModelConfig
	Match    MatchConfig
}

// Load reads the environment, honoring a .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		LogLevel: getEnv("LOGO_MCP_LOG_LEVEL", "info"),
		Model: ModelConfig{
			Path:         getEnv("LOGO_MCP_MODEL_PATH", ""),
			Library:      getEnv("LOGO_MCP_ONNX_LIB", ""),
			InputName:    getEnv("LOGO_MCP_MODEL_INPUT", "input"),
			OutputName:   getEnv("LOGO_MCP_MODEL_OUTPUT", "output"),
			InputSize:    getEnvInt("LOGO_MCP_INPUT_SIZE", 224),
			BatchSize:    getEnvInt("LOGO_MCP_BATCH_SIZE", 100),
			FeatureShape: getEnvInts("LOGO_MCP_FEATURE_SHAPE", []int{1280, 7, 7}),
		},
		Match: MatchConfig{
			BankPath:    getEnv("LOGO_MCP_BANK_PATH", ""),
			Threshold:   getEnvFloat("LOGO_MCP_THRESHOLD", 0.95),
			OCRLanguage: getEnv("LOGO_MCP_OCR_LANG", "eng"),
		},
	}
}

// Validate rejects settings no component could run with.
func (c *Config) Validate() error {
	if c.Model.InputSize <= 0 {
		return fmt.Errorf("LOGO_MCP_INPUT_SIZE must be positive, got %d", c.Model.InputSize)
	}
	if c.Model.BatchSize <= 0 {
		return fmt.Errorf("LOGO_MCP_BATCH_SIZE must be positive, got %d", c.Model.BatchSize)
	}
	if len(c.Model.FeatureShape) == 0 {
		return fmt.Errorf("LOGO_MCP_FEATURE_SHAPE must name at least one dimension")
	}
	for _, d := range c.Model.FeatureShape {
		if d <= 0 {
			return fmt.Errorf("LOGO_MCP_FEATURE_SHAPE dimensions must be positive, got %v", c.Model.FeatureShape)
		}
	}
	if c.Match.Threshold <= 0 || c.Match.Threshold > 1 {
		return fmt.Errorf("LOGO_MCP_THRESHOLD must be within (0, 1], got %v", c.Match.Threshold)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvInts(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
