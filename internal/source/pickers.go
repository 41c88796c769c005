package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/shiftgrid/internal/fsops"
)

// PathPicker reads a path that is already known, such as a CLI argument.
type PathPicker struct {
	FS   fsops.FS
	Path string

	// Limit bounds the read. Zero reads the whole file and leaves the size
	// check to Acquire.
	Limit int64
}

// Pick reads the file at Path. A blank path counts as no selection.
func (p *PathPicker) Pick(ctx context.Context) (*File, error) {
	path := strings.TrimSpace(p.Path)
	if path == "" {
		return nil, ErrNoSelection
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if p.Limit > 0 {
		data, err = p.FS.ReadFileLimit(path, p.Limit)
	} else {
		data, err = p.FS.ReadFile(path)
	}
	if err != nil {
		if errors.Is(err, fsops.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	return &File{Name: filepath.Base(path), Data: data}, nil
}

// PromptPicker asks for a path on Out and reads one line from In. An empty
// line or end of input counts as no selection. The read does not observe
// ctx: after a cancel, Acquire returns ErrCancelled while Pick stays
// blocked on In until a line arrives or In is closed.
type PromptPicker struct {
	In     io.Reader
	Out    io.Writer
	Prompt string
	FS     fsops.FS
	Limit  int64
}

// Pick prompts once and reads the named file.
func (p *PromptPicker) Pick(ctx context.Context) (*File, error) {
	if p.Out != nil && p.Prompt != "" {
		_, _ = fmt.Fprint(p.Out, p.Prompt)
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to read input: %v", ErrSourceUnavailable, err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, ErrNoSelection
	}

	path := PathPicker{FS: p.FS, Path: line, Limit: p.Limit}
	return path.Pick(ctx)
}
