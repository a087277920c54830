package submission

import (
	"fmt"
	"io"
	"sync"
)

// View is the output surface of a Submitter. Show reveals the result
// region; SetText replaces its text.
type View interface {
	Show()
	SetText(text string)
}

// TerminalView prints every text change on its own line.
type TerminalView struct {
	mu      sync.Mutex
	w       io.Writer
	visible bool
}

func NewTerminalView(w io.Writer) *TerminalView {
	return &TerminalView{w: w}
}

func (v *TerminalView) Show() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visible = true
}

func (v *TerminalView) SetText(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.visible {
		return
	}
	fmt.Fprintln(v.w, text)
}
