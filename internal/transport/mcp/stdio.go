package mcp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// maxLineSize - предел одной строки протокола.
const maxLineSize = 4 << 20

type readResult struct {
	line []byte
	err  error
}

// Serve - цикл чтения строк из r и записи ответов в w.
// Запросы обрабатываются строго по одному. Возвращает nil на EOF и ctx.Err() при отмене.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan readResult)
	go readLines(ctx, r, lines)

	out := bufio.NewWriter(w)
	s.log.Infof(ctx, "mcp server started name=%s version=%s session=%s", s.info.Name, s.info.Version, s.sessionID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if res.err != nil {
				if errors.Is(res.err, io.EOF) {
					s.log.Infof(ctx, "mcp input closed")
					return nil
				}
				return fmt.Errorf("read message: %w", res.err)
			}

			resp := s.HandleMessage(ctx, res.line)
			if resp == nil {
				continue
			}
			if _, err := out.Write(append(resp, '\n')); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			if err := out.Flush(); err != nil {
				return fmt.Errorf("flush response: %w", err)
			}
		}
	}
}

// readLines - отдаёт непустые строки без \r\n; последняя строка без перевода тоже считается сообщением.
func readLines(ctx context.Context, r io.Reader, out chan<- readResult) {
	defer close(out)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		select {
		case out <- readResult{line: append([]byte(nil), line...)}:
		case <-ctx.Done():
			return
		}
	}
	err := sc.Err()
	if err == nil {
		err = io.EOF
	}
	select {
	case out <- readResult{err: err}:
	case <-ctx.Done():
	}
}
