// Package progress wraps schollz/progressbar with an opt-out flag.
package progress

import (
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar wraps a progressbar.ProgressBar. A nil-backed Bar (on == false) is a
// safe no-op, so callers never need to branch on
// whether progress reporting is enabled.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New returns a Bar over total units. total <= 0 means the size is unknown
// and a spinner is shown instead of a percentage bar. on == false disables
// reporting entirely.
func New(total int64, label string, on bool) *Bar {
	if !on {
		return &Bar{}
	}

	opts := []progressbar.Option{
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(label),
		progressbar.OptionThrottle(250 * time.Millisecond),
		progressbar.OptionClearOnFinish(),
	}

	var bar *progressbar.ProgressBar
	if total > 0 {
		opts = append(opts,
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetPredictTime(true),
		)
		bar = progressbar.NewOptions64(total, opts...)
	} else {
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
		)
		bar = progressbar.NewOptions64(-1, opts...)
	}

	return &Bar{bar: bar}
}

// Add advances the bar by n units. Safe to call on a no-op Bar.
func (b *Bar) Add(n int64) {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Add64(n)
}

// Finish completes and clears the bar. Safe to call on a no-op Bar.
func (b *Bar) Finish() {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
