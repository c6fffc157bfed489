// Package ipc exposes the staging operations to a host shell as a
// newline-delimited JSON command loop. One request per input line, one
// response per output line, in order.
package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"shelfsend/internal/shelf"
)

// maxLineSize bounds a single request line. A drop of many files with long
// paths easily exceeds bufio's 64 KiB default.
const maxLineSize = 4 * 1024 * 1024

// Handler is the set of operations a Session dispatches to.
// app.ShelfApp implements it.
type Handler interface {
	StageFiles(sourcePaths []string) []string
	ClearStaging()
	GetFileSize(path string) (int64, error)
	Staged() []string
	DescribeSources(sourcePaths []string) []*shelf.SourceInfo
}

// Session reads requests from in and writes responses to out.
type Session struct {
	handler Handler
	in      io.Reader
	enc     *json.Encoder
	logger  shelf.Logger

	// prompt, when non-nil, receives a prompt before each read.
	prompt io.Writer
}

// NewSession creates a Session. When in is an interactive terminal a prompt
// is printed to stderr before each request.
func NewSession(handler Handler, in io.Reader, out io.Writer, logger shelf.Logger) *Session {
	s := &Session{
		handler: handler,
		in:      in,
		enc:     json.NewEncoder(out),
		logger:  logger,
	}
	if IsInteractive(in) {
		s.prompt = os.Stderr
	}
	return s
}

// IsInteractive reports whether r is a terminal.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type line struct {
	data []byte
	err  error
}

// Run serves requests until the input ends, a quit request arrives, or ctx
// is canceled. It returns ctx.Err() on cancellation and nil otherwise,
// unless reading input or writing a response fails.
//
// The input is read on a separate goroutine. If ctx is canceled while that
// goroutine is blocked on a read, it exits once the read returns.
func (s *Session) Run(ctx context.Context) error {
	lines := make(chan line)
	done := make(chan struct{})
	defer close(done)

	go s.readLines(lines, done)

	for {
		s.showPrompt()

		var l line
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok = <-lines:
		}
		if !ok {
			return nil
		}
		if l.err != nil {
			return fmt.Errorf("reading request: %w", l.err)
		}
		if len(l.data) == 0 {
			continue
		}

		resp, quit := s.handle(l.data)
		if err := s.enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *Session) readLines(lines chan<- line, done <-chan struct{}) {
	defer close(lines)

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		// Scanner reuses its buffer.
		data := append([]byte(nil), scanner.Bytes()...)
		select {
		case lines <- line{data: data}:
		case <-done:
			return
		}
	}
	if err := scanner.Err(); err != nil {
		select {
		case lines <- line{err: err}:
		case <-done:
		}
	}
}

func (s *Session) showPrompt() {
	if s.prompt != nil {
		fmt.Fprint(s.prompt, "shelfsend> ")
	}
}

// handle decodes and dispatches one request. quit is true when the session
// should end after the response is written.
func (s *Session) handle(data []byte) (resp *Response, quit bool) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Warn("invalid request", "error", err)
		return errorResponse(fmt.Errorf("invalid request: %w", err)), false
	}
	s.logger.Debug("request received", "cmd", req.Cmd)

	switch req.Cmd {
	case CmdStageFiles:
		return okResponse(nonNil(s.handler.StageFiles(req.Paths))), false

	case CmdClearStaging:
		s.handler.ClearStaging()
		return okResponse(nil), false

	case CmdGetFileSize:
		size, err := s.handler.GetFileSize(req.Path)
		if err != nil {
			return errorResponse(fmt.Errorf("Failed to get file size: %w", err)), false
		}
		return okResponse(&SizeResult{Bytes: size, Human: humanize.IBytes(uint64(size))}), false

	case CmdListStaged:
		return okResponse(nonNil(s.handler.Staged())), false

	case CmdDescribeSources:
		infos := s.handler.DescribeSources(req.Paths)
		out := make([]*SourceResult, len(infos))
		for i, info := range infos {
			out[i] = &SourceResult{Name: info.Name, Size: info.HumanSize()}
		}
		return okResponse(out), false

	case CmdQuit:
		return okResponse(nil), true

	case "":
		return errorResponse(errors.New("missing cmd")), false

	default:
		return errorResponse(fmt.Errorf("unknown command: %s", req.Cmd)), false
	}
}

func okResponse(result any) *Response {
	return &Response{OK: true, Result: result}
}

func errorResponse(err error) *Response {
	return &Response{Error: err.Error()}
}

// nonNil keeps empty path lists encoding as [] rather than being omitted.
func nonNil(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
