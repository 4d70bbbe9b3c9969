package driver

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Progress observes a download. Start is called once with the declared
// size, Add after every chunk written to disk, and Finish when the
// transfer ends, successfully or not.
type Progress interface {
	Start(total int64)
	Add(n int64)
	Finish()
}

// NopProgress discards progress updates.
type NopProgress struct{}

func (NopProgress) Start(total int64) {}
func (NopProgress) Add(n int64)       {}
func (NopProgress) Finish()           {}

// ProgressBar renders a byte progress bar.
type ProgressBar struct {
	w   io.Writer
	bar *pb.ProgressBar
}

// NewProgressBar returns a Progress that draws a bar to w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{w: w}
}

// Start begins rendering a bar for total bytes.
func (p *ProgressBar) Start(total int64) {
	p.bar = pb.New64(total)
	p.bar.Set(pb.Bytes, true)
	p.bar.SetWriter(p.w)
	p.bar.Start()
}

// Add advances the bar by n bytes.
func (p *ProgressBar) Add(n int64) {
	if p.bar == nil {
		return
	}
	p.bar.Add64(n)
}

// Finish draws the final state of the bar and stops rendering.
func (p *ProgressBar) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
}
