package ocr

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/brandseek/logo-match-mcp/internal/regions"
)

// whiteImage returns a w x h image filled with white.
func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func skipUnlessTesseract(t *testing.T) {
	t.Helper()
	if !Available().Available {
		t.Skip("Tesseract not available")
	}
}

func TestAvailable(t *testing.T) {
	info := Available()
	if info.Available {
		if info.Version == "" {
			t.Error("available engine should report a version")
		}
		if info.Error != "" {
			t.Errorf("available engine should not carry an error, got %q", info.Error)
		}
		return
	}
	if info.Error == "" {
		t.Error("unavailable engine should explain itself in Error")
	}
}

func TestReadRegions_NoBoxes(t *testing.T) {
	res, err := ReadRegions(whiteImage(10, 10), nil, nil, "eng")
	if err != nil {
		t.Fatalf("ReadRegions with no boxes failed: %v", err)
	}
	if res == nil {
		t.Fatal("ReadRegions returned nil result for no boxes")
	}
	if len(res) != 0 {
		t.Errorf("got %d results for no boxes, want 0", len(res))
	}
}

func TestReadRegions_BadIndex(t *testing.T) {
	boxes := []regions.Box{{X1: 0, Y1: 0, X2: 10, Y2: 10}}
	for _, idx := range []int{3, -1} {
		_, err := ReadRegions(whiteImage(20, 20), boxes, []int{idx}, "eng")
		if err == nil {
			t.Errorf("index %d: want error, got none", idx)
			continue
		}
		if errors.Is(err, ErrUnavailable) {
			t.Errorf("index %d: validation should run before the engine, got %v", idx, err)
		}
	}
}

func TestReadRegions_UnavailableBuild(t *testing.T) {
	if Available().Available {
		t.Skip("Tesseract linked in this build")
	}
	_, err := ReadRegions(whiteImage(20, 20), []regions.Box{{X2: 10, Y2: 10}}, nil, "eng")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestReadRegions_BlankRegion(t *testing.T) {
	skipUnlessTesseract(t)

	img := whiteImage(120, 60)
	boxes := []regions.Box{{X1: 0, Y1: 0, X2: 120, Y2: 60}}
	res, err := ReadRegions(img, boxes, nil, "eng")
	if err != nil {
		t.Fatalf("ReadRegions failed: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("got %d results, want 1", len(res))
	}
	if res[0].Index != 0 {
		t.Errorf("Index = %d, want 0", res[0].Index)
	}
	if res[0].Text != "" {
		t.Errorf("blank region produced text %q", res[0].Text)
	}
	if res[0].Confidence < 0 || res[0].Confidence > 1 {
		t.Errorf("Confidence = %v, want within [0, 1]", res[0].Confidence)
	}
}

func TestReadRegions_SelectsSubset(t *testing.T) {
	skipUnlessTesseract(t)

	img := whiteImage(90, 30)
	boxes := []regions.Box{
		{X1: 0, Y1: 0, X2: 30, Y2: 30},
		{X1: 30, Y1: 0, X2: 60, Y2: 30},
		{X1: 60, Y1: 0, X2: 90, Y2: 30},
	}
	res, err := ReadRegions(img, boxes, []int{2, 0}, "eng")
	if err != nil {
		t.Fatalf("ReadRegions failed: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("got %d results, want 2", len(res))
	}
	if res[0].Index != 2 || res[1].Index != 0 {
		t.Errorf("result indices = %d, %d; want 2, 0", res[0].Index, res[1].Index)
	}
}

func TestReadRegions_BoxOutsideImage(t *testing.T) {
	skipUnlessTesseract(t)

	boxes := []regions.Box{{X1: 200, Y1: 200, X2: 240, Y2: 240}}
	_, err := ReadRegions(whiteImage(50, 50), boxes, nil, "eng")
	if err == nil {
		t.Fatal("want error for box outside the image")
	}
}
