// questrpg is a single-player party and item manager for text RPGs.
// Usage: questrpg [--version] [--plain] [--script <file>] [--trace] [--save <path>] [--catalog <path>|none]
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nathoo/questrpg/cli"
	"github.com/nathoo/questrpg/config"
	"github.com/nathoo/questrpg/engine"
	"github.com/nathoo/questrpg/loader"
	"github.com/nathoo/questrpg/logger"
	"github.com/nathoo/questrpg/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: questrpg [--version] [--plain] [--script <file>] [--trace] [--save <path>] [--catalog <path>|none]"

// options are the command-line settings. Empty strings defer to config.
type options struct {
	version bool
	plain   bool
	trace   bool
	script  string
	save    string
	catalog string
}

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			o.version = true
		case "--plain":
			o.plain = true
		case "--trace":
			o.trace = true
		case "--script", "--save", "--catalog":
			if i+1 >= len(args) {
				return o, fmt.Errorf("%s requires a path", args[i])
			}
			i++
			switch args[i-1] {
			case "--script":
				o.script = args[i]
			case "--save":
				o.save = args[i]
			default:
				o.catalog = args[i]
			}
		default:
			return o, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return o, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n%s\n", err, usage)
		os.Exit(1)
	}
	if opts.version {
		fmt.Printf("questrpg %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if opts.save != "" {
		cfg.SavePath = opts.save
	}
	if opts.catalog != "" {
		cfg.CatalogDir = opts.catalog
	}

	useTUI := opts.script == "" && !opts.plain && isTerminal()

	// The TUI owns the terminal, so its logs go to a file or nowhere.
	logOut, closeLog, err := logWriter(cfg, useTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	log := logger.New(cfg.Logger(), logOut)

	g, err := engine.Load(cfg.SavePath, engine.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading save: %v\n", err)
		os.Exit(1)
	}

	if err := importCatalog(g, cfg.CatalogDir, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(g)
		c.In = f
		c.EchoInput = true
		c.Trace = opts.trace
		c.Run()
		return
	}

	if !useTUI {
		c := cli.New(g)
		c.Trace = opts.trace
		c.Run()
		return
	}

	if err := tui.Run(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// importCatalog registers the catalog at path, the built-in starter
// catalog when path is empty, or nothing when path is "none".
func importCatalog(g *engine.Game, path string, log *slog.Logger) error {
	if path == "none" {
		return nil
	}

	var (
		cat *loader.Catalog
		err error
	)
	if path == "" {
		cat, err = loader.Starter()
	} else {
		cat, err = loader.Load(path)
	}
	if err != nil {
		var ve *loader.ValidationError
		if errors.As(err, &ve) {
			for _, w := range ve.Warnings {
				log.Warn("catalog warning", "detail", w)
			}
		}
		return err
	}

	for _, w := range cat.Warnings {
		log.Warn("catalog warning", "detail", w)
	}
	g.ImportCatalog(cat.Items)
	return nil
}

func logWriter(cfg *config.Config, tuiMode bool) (io.Writer, func(), error) {
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, func() {}, err
		}
		return f, func() { f.Close() }, nil
	case tuiMode:
		return nil, func() {}, nil
	default:
		return os.Stderr, func() {}, nil
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
