// Package ocr reads text out of matched candidate regions using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) to pull
// brand text from the regions a match run selected, for example to confirm
// that a matched sign actually carries the brand name.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-eng (for English)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Build Modes
//
// The Tesseract bindings link through cgo. In builds compiled with
// CGO_ENABLED=0 the package still compiles, but Available reports the
// engine as missing and ReadRegions returns ErrUnavailable. Callers
// should check Available before advertising text readout.
//
// # Temporary Files
//
// Each region crop is written to a temporary PNG for Tesseract to
// consume and removed when the readout finishes. Ensure the system's
// temporary directory has sufficient space for image files.
package ocr
