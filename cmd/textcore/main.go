// Package main is the entry point for the textcore command.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/dshills/textcore/internal/config"
	"github.com/dshills/textcore/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage reports bad command line arguments.
var errUsage = errors.New("usage")

// options holds the global flags.
type options struct {
	configPath string
	logLevel   string
	ignoreCase bool
	regexp     bool
	backward   bool
	eol        bool
	from, to   int
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("textcore", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	var showVersion bool
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.ignoreCase, "i", false, "Ignore case when searching")
	fs.BoolVar(&opts.regexp, "E", false, "Treat the pattern as a regular expression")
	fs.BoolVar(&opts.backward, "backward", false, "Report only the last match")
	fs.BoolVar(&opts.eol, "eol", false, "Show line endings when listing lines")
	fs.IntVar(&opts.from, "from", 0, "First line to list")
	fs.IntVar(&opts.to, "to", -1, "Last line to list (-1 for the end)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "textcore - inspect text files with the textcore engine\n\n")
		fmt.Fprintf(stderr, "Usage: textcore [options] <command> <file> [pattern]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  stats <file>            Length, line count and line endings\n")
		fmt.Fprintf(stderr, "  lines <file>            Print lines with their numbers\n")
		fmt.Fprintf(stderr, "  find <file> <pattern>   Print the position of every match\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "textcore %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.ignoreCase {
		cfg.Search.MatchCase = false
	}
	if opts.regexp {
		cfg.Search.Regexp = true
	}

	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := dispatch(fs.Args(), cfg, opts, log, stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n\n", err)
			fs.Usage()
			return 2
		}
		log.Error("command failed", zap.Error(err))
		return 1
	}
	return 0
}

func dispatch(args []string, cfg *config.Config, opts options, log *zap.Logger, w io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: expected a command and a file", errUsage)
	}
	cmd, file := args[0], args[1]

	var run func() error
	switch cmd {
	case "stats":
		run = func() error { return statsCommand(file, cfg, log, w) }
	case "lines":
		run = func() error { return linesCommand(file, cfg, opts, log, w) }
	case "find":
		if len(args) < 3 {
			return fmt.Errorf("%w: find needs a pattern", errUsage)
		}
		pattern := args[2]
		run = func() error { return findCommand(file, pattern, cfg, opts, log, w) }
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	return run()
}
