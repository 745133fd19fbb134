// Command logo-bank builds a background feature bank from a directory
// of images, for the matching server's cutoff estimation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/brandseek/logo-match-mcp/internal/config"
	"github.com/brandseek/logo-match-mcp/internal/embedding"
	"github.com/brandseek/logo-match-mcp/internal/imaging"
	"github.com/brandseek/logo-match-mcp/internal/store"
)

func main() {
	dir := flag.String("dir", "", "directory of background images")
	out := flag.String("out", "", "output bank file path")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	if *dir == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: logo-bank -dir <image dir> -out <bank file>")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	if cfg.Model.Path == "" {
		log.Fatal("LOGO_MCP_MODEL_PATH must point at the extractor model")
	}

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

	paths, err := imaging.ListImages(*dir)
	if err != nil {
		log.WithError(err).Fatal("failed to list images")
	}
	if len(paths) == 0 {
		log.WithField("dir", *dir).Fatal("no images found")
	}
	log.WithFields(logrus.Fields{
		"dir":    *dir,
		"images": len(paths),
	}).Info("extracting background features")

	imgs, err := imaging.LoadAll(paths)
	if err != nil {
		log.WithError(err).Fatal("failed to load images")
	}

	f, err := os.Create(*out)
	if err != nil {
		log.WithError(err).Fatal("failed to create bank file")
	}
	count, dim, err := store.Build(context.Background(), ext, imgs, f)
	if err != nil {
		f.Close()
		os.Remove(*out)
		log.WithError(err).Fatal("failed to build bank")
	}
	if err := f.Close(); err != nil {
		log.WithError(err).Fatal("failed to close bank file")
	}

	log.WithFields(logrus.Fields{
		"path":  *out,
		"count": count,
		"dim":   dim,
	}).Info("feature bank written")
}
