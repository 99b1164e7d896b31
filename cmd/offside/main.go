// Package main is the command-line front end for the offside
// indentation engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/layoutkit/offside/internal/config"
	"github.com/layoutkit/offside/internal/engine/buffer"
	"github.com/layoutkit/offside/internal/indent"
	luahost "github.com/layoutkit/offside/internal/plugin/lua"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	line       int
	col        int
	cycles     int
	write      bool
	tui        bool
	script     string
	literate   string
	version    bool
	file       string
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a JSON configuration file")
	flag.IntVar(&opts.line, "line", 0, "0-indexed line to indent")
	flag.IntVar(&opts.col, "col", 0, "0-indexed column of the cursor")
	flag.IntVar(&opts.cycles, "cycle", 0, "apply the Nth cycle step instead of listing candidates")
	flag.BoolVar(&opts.write, "write", false, "write the modified buffer back to the file")
	flag.BoolVar(&opts.tui, "tui", false, "open the interactive terminal demo")
	flag.StringVar(&opts.script, "script", "", "run a Lua script against the buffer")
	flag.StringVar(&opts.literate, "literate", "", "literate mode override: none, bird, or latex")
	flag.BoolVar(&opts.version, "version", false, "print version and exit")
	flag.Parse()
	opts.file = flag.Arg(0)
	return opts
}

func run() int {
	opts := parseFlags()

	if opts.version {
		fmt.Println("offside", version)
		return 0
	}
	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "usage: offside [flags] FILE")
		flag.PrintDefaults()
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	data, err := os.ReadFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	buf := buffer.NewFromString(string(data))
	engine := indent.New(buf, cfg)

	switch {
	case opts.tui:
		if err := runTUI(engine, opts.file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	case opts.script != "":
		host := luahost.NewHost(engine)
		defer host.Close()
		if err := host.DoFile(opts.script); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	default:
		if err := runOnce(engine, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	if opts.write {
		if err := os.WriteFile(opts.file, []byte(buf.Text()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// loadConfig merges the config file with command-line overrides.
func loadConfig(opts options) (config.IndentConfig, error) {
	cfg := config.DefaultIndent()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadFile(opts.configPath)
		if err != nil {
			return config.IndentConfig{}, err
		}
	}
	switch opts.literate {
	case "":
	case "none":
		cfg.LiterateMode = config.LiterateNone
	case "bird":
		cfg.LiterateMode = config.LiterateBird
	case "latex":
		cfg.LiterateMode = config.LiterateLatex
	default:
		return config.IndentConfig{}, fmt.Errorf("unknown literate mode %q", opts.literate)
	}
	return cfg, nil
}

// runOnce lists candidates for one position, or applies cycle steps.
func runOnce(engine *indent.Engine, opts options) error {
	buf := engine.Buffer()
	pos := buf.PointToOffset(buffer.Point{Line: opts.line, Column: opts.col})

	if opts.cycles > 0 {
		var last indent.Candidate
		for i := 0; i < opts.cycles; i++ {
			cand, err := engine.CycleIndent(pos)
			if err != nil {
				return err
			}
			last = cand
		}
		fmt.Printf("applied column %d\n", last.Column)
		if !opts.write {
			fmt.Print(buf.Text())
		}
		return nil
	}

	res, err := engine.ComputeIndentCandidates(pos)
	if err != nil {
		return err
	}
	for i, c := range res.Candidates {
		if c.Insert != "" {
			fmt.Printf("%d: column %d, insert %q\n", i, c.Column, c.Insert)
		} else {
			fmt.Printf("%d: column %d\n", i, c.Column)
		}
	}
	for _, d := range res.Diagnostics {
		fmt.Printf("note: offset %d: %s\n", d.Offset, d.Message)
	}
	return nil
}
