package pkg

import (
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/espbuild/go/espbuild/pkg/buildenv"
	"github.com/provide-io/espbuild/go/espbuild/pkg/console"
	"github.com/provide-io/espbuild/go/espbuild/pkg/sizecheck"
)

// CheckSizeOptions selects the image and where its flash limit comes from.
type CheckSizeOptions struct {
	Binary   string
	MaxFlash int64  // upload.maximum_size; wins over Board
	Board    string // board JSON to read upload.maximum_size from
}

// CheckSize prints the image size and the OTA warning when it applies.
func CheckSize(opts CheckSizeOptions, c *console.Console, logger hclog.Logger) (*sizecheck.Report, error) {
	maxFlash := opts.MaxFlash
	if maxFlash == 0 && opts.Board != "" {
		board, err := buildenv.ReadBoard(opts.Board)
		if err != nil {
			return nil, err
		}
		maxFlash = board.MaximumSize()
		logger.Debug("📏 Board flash size", "board", board.Name, "maximum_size", maxFlash)
	}
	if maxFlash == 0 {
		logger.Debug("📏 No flash size known, OTA limit not checked")
	}

	report, err := sizecheck.Check(opts.Binary, maxFlash)
	if err != nil {
		return nil, err
	}
	report.Print(c)
	if report.TooLargeForOTA {
		logger.Warn("⚠️ Image too large for OTA", "size", report.Size, "limit", sizecheck.OTASizeLimit)
	}
	return report, nil
}
