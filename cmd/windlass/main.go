// Package main is the entry point for the windlass config compiler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dshills/windlass/internal/compat"
	"github.com/dshills/windlass/internal/loader"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	basePath   string
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	level, err := zerolog.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
		return 1
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	abs, err := filepath.Abs(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	base := opts.basePath
	if base == "" {
		base = filepath.Dir(abs)
	}

	ld := loader.NewCached(loader.NewDispatch(log))
	out, err := compat.Compile(compat.Options{
		ConfigRef: abs,
		Base:      base,
		Loader:    ld,
		Log:       log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printOutput(out)
	return 0
}

func printOutput(out *compat.Output) {
	if len(out.Declarations) > 0 {
		fmt.Println(":root {")
		for _, d := range out.Declarations {
			fmt.Printf("  %s: %s;\n", d.Property, d.Value)
		}
		fmt.Println("}")
	}

	if names := out.Variants.Names(); len(names) > 0 {
		fmt.Println("\nvariants:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}

	if names := out.Utilities.Names(); len(names) > 0 {
		fmt.Println("\nutilities:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
	if names := out.Utilities.MatcherNames(); len(names) > 0 {
		fmt.Println("\ndynamic utilities:")
		for _, name := range names {
			fmt.Printf("  %s-*\n", name)
		}
	}

	if len(out.Content) > 0 {
		fmt.Println("\ncontent:")
		for _, g := range out.Content {
			fmt.Printf("  %s (base %s)\n", g.Pattern, g.Base)
		}
	}

	if out.Prefix != "" {
		fmt.Printf("\nprefix: %s\n", out.Prefix)
	}
	if out.Important {
		fmt.Println("important: true")
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to legacy configuration module")
	flag.StringVar(&opts.configPath, "c", "", "Path to legacy configuration module (shorthand)")
	flag.StringVar(&opts.basePath, "base", "", "Base directory for relative refs and content globs (defaults to the config's directory)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Windlass - legacy theme configuration compiler\n\n")
		fmt.Fprintf(os.Stderr, "Usage: windlass -c <config> [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  windlass -c theme.config.lua      Compile an executable config\n")
		fmt.Fprintf(os.Stderr, "  windlass -c theme.config.json     Compile an inert config\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Windlass %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.configPath == "" && flag.NArg() > 0 {
		opts.configPath = flag.Arg(0)
	}
	if opts.configPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no configuration module given")
		flag.Usage()
		os.Exit(1)
	}

	return opts
}
