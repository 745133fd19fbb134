package store

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/brandseek/logo-match-mcp/internal/embedding"
)

// Build embeds a set of images and writes them out as a feature bank,
// returning the row count and vector width. At least one image is
// required; an empty bank has no defined width.
func Build(ctx context.Context, ext embedding.Extractor, imgs []image.Image, w io.Writer) (count, dim int, err error) {
	if len(imgs) == 0 {
		return 0, 0, fmt.Errorf("store: cannot build a bank from zero images")
	}
	feats, err := embedding.BatchFeatures(ctx, ext, imgs)
	if err != nil {
		return 0, 0, fmt.Errorf("store: embed bank images: %w", err)
	}
	dim = len(feats[0])
	if err := Write(w, dim, feats); err != nil {
		return 0, 0, err
	}
	return len(feats), dim, nil
}
