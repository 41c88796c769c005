// Package source acquires the bytes of a file chosen by the user.
//
// Choosing a file is the only step in shiftgrid that waits on the outside
// world. Acquire runs a Picker in the background and resolves to exactly one
// outcome: the file, ErrCancelled, or an error wrapping ErrSourceUnavailable
// (or ErrTooLarge / ErrFileType when the file is refused before decoding).
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultCancelWait is how long Acquire waits for a picker to answer
	// after it reports dismissal.
	DefaultCancelWait = time.Second

	// DefaultMaxBytes is the largest file Acquire accepts.
	DefaultMaxBytes int64 = 10 << 20
)

// File is a named byte stream.
type File struct {
	Name string
	Data []byte
}

// Picker lets the user choose a file. It returns ErrNoSelection when the
// user declines and should stop early when ctx is done.
type Picker interface {
	Pick(ctx context.Context) (*File, error)
}

// Dismisser is implemented by pickers that can tell when they lost focus
// without producing an answer.
type Dismisser interface {
	Dismissed() <-chan struct{}
}

// Options bound what Acquire accepts.
type Options struct {
	// CancelWait is the grace period after dismissal. Zero means
	// DefaultCancelWait.
	CancelWait time.Duration

	// MaxBytes is the size limit. Zero means DefaultMaxBytes.
	MaxBytes int64

	// AllowedExtensions lists accepted extensions including the dot. Empty
	// accepts any name.
	AllowedExtensions []string
}

// DefaultOptions returns options with the default wait and size limit.
func DefaultOptions() Options {
	return Options{CancelWait: DefaultCancelWait, MaxBytes: DefaultMaxBytes}
}

func (o Options) withDefaults() Options {
	if o.CancelWait <= 0 {
		o.CancelWait = DefaultCancelWait
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	return o
}

type pickResult struct {
	file *File
	err  error
}

// Acquire runs p and waits for its answer. The picker's context is
// cancelled when Acquire returns, so a well-behaved picker exits promptly
// after a cancellation.
func Acquire(ctx context.Context, p Picker, opts Options) (*File, error) {
	opts = opts.withDefaults()

	pickCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan pickResult, 1)
	go func() {
		f, err := p.Pick(pickCtx)
		done <- pickResult{file: f, err: err}
	}()

	var dismissed <-chan struct{}
	if d, ok := p.(Dismisser); ok {
		dismissed = d.Dismissed()
	}
	var timeout <-chan time.Time

	for {
		select {
		case res := <-done:
			return settle(res, opts)
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case <-dismissed:
			dismissed = nil
			timer := time.NewTimer(opts.CancelWait)
			defer timer.Stop()
			timeout = timer.C
		case <-timeout:
			return nil, fmt.Errorf("%w: no file chosen within %s", ErrCancelled, opts.CancelWait)
		}
	}
}

func settle(res pickResult, opts Options) (*File, error) {
	switch {
	case res.err == nil && res.file == nil:
		return nil, ErrCancelled
	case res.err == nil:
	case errors.Is(res.err, ErrNoSelection), errors.Is(res.err, ErrCancelled):
		return nil, fmt.Errorf("%w: %v", ErrCancelled, res.err)
	case errors.Is(res.err, context.Canceled), errors.Is(res.err, context.DeadlineExceeded):
		return nil, fmt.Errorf("%w: %v", ErrCancelled, res.err)
	case errors.Is(res.err, ErrTooLarge), errors.Is(res.err, ErrFileType), errors.Is(res.err, ErrSourceUnavailable):
		return nil, res.err
	default:
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, res.err)
	}

	if err := CheckName(res.file.Name, opts.AllowedExtensions); err != nil {
		return nil, err
	}
	if int64(len(res.file.Data)) > opts.MaxBytes {
		return nil, tooLarge(res.file.Name, int64(len(res.file.Data)), opts.MaxBytes)
	}
	return res.file, nil
}

// CheckName rejects names whose extension is not in allowed.
func CheckName(name string, allowed []string) error {
	if len(allowed) == 0 {
		return nil
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Errorf("%w: %s has extension %s (allowed: %s)", ErrFileType, filepath.Base(name), ext, strings.Join(allowed, ", "))
}

func tooLarge(name string, size, limit int64) error {
	return fmt.Errorf("%w: %s is %s, the limit is %s", ErrTooLarge, filepath.Base(name), humanBytes(size), humanBytes(limit))
}

func humanBytes(n int64) string {
	const mib = 1 << 20
	if n >= mib {
		return fmt.Sprintf("%.1f MiB", float64(n)/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}

// Dismissal is a Dismisser that pickers can embed.
type Dismissal struct {
	once sync.Once
	ch   chan struct{}
	mu   sync.Mutex
}

func (d *Dismissal) channel() chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ch == nil {
		d.ch = make(chan struct{})
	}
	return d.ch
}

// Dismiss marks the picker as dismissed. Further calls are no-ops.
func (d *Dismissal) Dismiss() {
	ch := d.channel()
	d.once.Do(func() { close(ch) })
}

// Dismissed is closed once Dismiss has been called.
func (d *Dismissal) Dismissed() <-chan struct{} {
	return d.channel()
}
