// Package sizecheck reports firmware image size after a build and warns when
// an image cannot be flashed over the air.
package sizecheck

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcinbor85/gohex"
	"github.com/provide-io/espbuild/go/espbuild/pkg/console"
)

const (
	// OneMegabyteFlash is upload.maximum_size of 1MB boards.
	OneMegabyteFlash = 1048576

	// OTASizeLimit is the largest image that leaves room for a second copy
	// during an OTA update on a 1MB board.
	OTASizeLimit = 512000

	// TwoStepUpdatesURL explains how to flash oversized images in two steps.
	TwoStepUpdatesURL = "https://github.com/xoseperez/espurna/wiki/TwoStepUpdates"
)

// Report is the outcome of a size check.
type Report struct {
	Path           string
	Size           int64
	MaxFlash       int64
	TooLargeForOTA bool
}

// Check measures the image at path against the board's maximum flash size.
func Check(path string, maxFlash int64) (*Report, error) {
	size, err := ImageSize(path)
	if err != nil {
		return nil, err
	}
	return &Report{
		Path:           path,
		Size:           size,
		MaxFlash:       maxFlash,
		TooLargeForOTA: maxFlash == OneMegabyteFlash && size >= OTASizeLimit,
	}, nil
}

// ImageSize returns the size of a firmware image. Raw images are measured by
// file length; Intel HEX files by the span their data covers.
func ImageSize(path string) (int64, error) {
	if strings.EqualFold(filepath.Ext(path), ".hex") {
		return hexImageSize(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat firmware image: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("firmware image %s is a directory", path)
	}
	return info.Size(), nil
}

func hexImageSize(path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read firmware image: %w", err)
	}
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(bytes.NewReader(data)); err != nil {
		return 0, fmt.Errorf("parse intel hex %s: %w", path, err)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return 0, nil
	}
	// uint64 so a segment ending at the top of the 32-bit space does not wrap.
	start, end := uint64(segments[0].Address), uint64(0)
	for _, seg := range segments {
		if a := uint64(seg.Address); a < start {
			start = a
		}
		if e := uint64(seg.Address) + uint64(len(seg.Data)); e > end {
			end = e
		}
	}
	return int64(end - start), nil
}

// Print writes the size line and, for oversized images, the OTA warning block.
func (r *Report) Print(c *console.Console) {
	c.Info(console.LightBlue, "Binary size: %d bytes", r.Size)

	if !r.TooLargeForOTA {
		return
	}
	c.Filler("*", console.LightYellow, true)
	c.Warning(console.LightYellow, "File is too large for OTA! Here you can find instructions on how to flash it:")
	c.Warning(console.LightCyan, TwoStepUpdatesURL)
	c.Filler("*", console.LightYellow, true)
}
