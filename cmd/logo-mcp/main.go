package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/brandseek/logo-match-mcp/internal/config"
	"github.com/brandseek/logo-match-mcp/internal/embedding"
	"github.com/brandseek/logo-match-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("logo-match-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg := config.Load()

	// Configure logging to stderr (stdout is for MCP protocol)
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	var extractor embedding.Extractor
	if cfg.Model.Path != "" {
		ext, err := embedding.NewONNXExtractor(embedding.ONNXConfig{
			ModelPath:    cfg.Model.Path,
			LibraryPath:  cfg.Model.Library,
			InputName:    cfg.Model.InputName,
			OutputName:   cfg.Model.OutputName,
			InputSize:    cfg.Model.InputSize,
			BatchSize:    cfg.Model.BatchSize,
			FeatureShape: cfg.Model.FeatureShape,
		})
		if err != nil {
			log.WithError(err).Fatal("failed to load feature extractor")
		}
		defer ext.Close()
		extractor = ext
		log.WithFields(logrus.Fields{
			"model": cfg.Model.Path,
			"batch": cfg.Model.BatchSize,
		}).Info("feature extractor ready")
	} else {
		log.Warn("LOGO_MCP_MODEL_PATH not set; feature tools will be unavailable")
	}

	srv := server.New(cfg, log, extractor)
	defer srv.Close()

	log.WithField("version", Version).Info("logo-match-mcp listening on stdio")
	if err := srv.Run(context.Background()); err != nil {
		log.WithError(err).Fatal("server error")
	}
}

func printHelp() {
	fmt.Println("logo-match-mcp - MCP server for logo similarity matching")
	fmt.Println()
	fmt.Println("Usage: logo-match-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  LOGO_MCP_MODEL_PATH   ONNX feature extractor model")
	fmt.Println("  LOGO_MCP_ONNX_LIB     onnxruntime shared library path")
	fmt.Println("  LOGO_MCP_BANK_PATH    default background feature bank")
	fmt.Println("  LOGO_MCP_THRESHOLD    default cutoff threshold (0.95)")
	fmt.Println("  LOGO_MCP_BATCH_SIZE   images per inference batch (100)")
	fmt.Println("  LOGO_MCP_LOG_LEVEL    log level (info)")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}
