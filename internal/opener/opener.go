// Package opener asks the host environment to open a link in a new
// browsing context.
package opener

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/browser"
)

// Opener opens a URL.
type Opener interface {
	Open(url string) error
}

// Browser opens URLs with the system browser (xdg-open, open, or
// rundll32 depending on the OS).
type Browser struct {
	// Output receives anything the launcher prints. Nil discards it.
	Output io.Writer
}

var browserMu sync.Mutex

// Open implements Opener.
func (b Browser) Open(url string) error {
	out := b.Output
	if out == nil {
		out = io.Discard
	}

	// pkg/browser writes launcher output to package-level writers.
	browserMu.Lock()
	defer browserMu.Unlock()
	browser.Stdout, browser.Stderr = out, out

	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

// Recorder collects URLs instead of opening them.
type Recorder struct {
	mu   sync.Mutex
	urls []string

	// Err, when set, is returned by Open after recording the URL.
	Err error
}

// Open implements Opener.
func (r *Recorder) Open(url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
	return r.Err
}

// URLs returns the recorded URLs in order.
func (r *Recorder) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}
