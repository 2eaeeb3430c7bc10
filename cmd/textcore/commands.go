package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/engine"
	"github.com/dshills/textcore/internal/engine/buffer"
)

// open loads file into a read-only engine configured by cfg.
func open(file string, cfg *config.Config, log *zap.Logger) (*engine.Engine, error) {
	text, err := readFile(file)
	if err != nil {
		return nil, err
	}
	opts := append(cfg.EngineOptions(),
		engine.WithContent(text),
		engine.WithLogger(log),
		engine.WithReadOnly(),
	)
	e := engine.New(opts...)
	log.Debug("file loaded",
		zap.String("file", file),
		zap.Int("units", e.Len()),
		zap.Int("lines", e.LineCount()))
	return e, nil
}

func statsCommand(file string, cfg *config.Config, log *zap.Logger, w io.Writer) error {
	e, err := open(file, cfg, log)
	if err != nil {
		return err
	}
	defer e.Close()

	counts := make(map[buffer.EOL]int)
	for i := 0; i < e.LineCount(); i++ {
		lr, err := e.LineRange(i, false)
		if err != nil {
			return err
		}
		counts[lr.EOL]++
	}

	fmt.Fprintf(w, "file:  %s\n", file)
	fmt.Fprintf(w, "units: %d\n", e.Len())
	fmt.Fprintf(w, "lines: %d\n", e.LineCount())
	fmt.Fprintf(w, "eol:   lf=%d crlf=%d cr=%d\n",
		counts[buffer.EOLLF], counts[buffer.EOLCRLF], counts[buffer.EOLCR])
	return nil
}

func linesCommand(file string, cfg *config.Config, opts options, log *zap.Logger, w io.Writer) error {
	e, err := open(file, cfg, log)
	if err != nil {
		return err
	}
	defer e.Close()

	last := opts.to
	if last < 0 {
		last = e.LineCount() - 1
	}
	for i := opts.from; i <= last; i++ {
		lr, err := e.LineRange(i, false)
		if err != nil {
			return err
		}
		text, err := e.TextRange(lr.Begin, lr.End)
		if err != nil {
			return err
		}
		if opts.eol {
			fmt.Fprintf(w, "%6d  %s%s\n", i+1, text, lr.EOL)
			continue
		}
		fmt.Fprintf(w, "%6d  %s\n", i+1, text)
	}
	return nil
}

func findCommand(file, pattern string, cfg *config.Config, opts options, log *zap.Logger, w io.Writer) error {
	e, err := open(file, cfg, log)
	if err != nil {
		return err
	}
	defer e.Close()

	var matches []engine.Range
	if opts.backward {
		if err := e.SetSelection(engine.NewCaret(e.Len())); err != nil {
			return err
		}
		res, err := e.FindBackward(pattern)
		if err != nil {
			return err
		}
		if res != nil {
			matches = append(matches, res.Range)
		}
	} else {
		matches, err = e.FindAll(pattern)
		if err != nil {
			return err
		}
	}

	for _, m := range matches {
		p, err := e.OffsetToPoint(m.Begin)
		if err != nil {
			return err
		}
		text, err := e.TextRange(m.Begin, m.End)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d:%d: %s\n", p.Line+1, p.Column+1, text)
	}
	log.Info("search finished",
		zap.String("pattern", pattern),
		zap.Int("matches", len(matches)))
	return nil
}
