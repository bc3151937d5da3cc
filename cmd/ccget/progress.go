package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"ccget/internal/captions"
)

// progressFor returns a serialization progress callback rendering to w,
// plus a finish func that clears the bar. When w is not a terminal both
// returns are no-ops.
func progressFor(w io.Writer, label string) (captions.ProgressFunc, func()) {
	if !isTerminal(w) {
		return nil, func() {}
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionClearOnFinish(),
	)
	progress := func(fraction float64) {
		_ = bar.Set(int(fraction * 100))
	}
	finish := func() {
		_ = bar.Finish()
	}
	return progress, finish
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
