// Command rpnc is the reverse-polish complex calculator CLI.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/term"

	"nickandperla.net/rpnc/internal/config"
	"nickandperla.net/rpnc/pkg/rpnc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("rpnc", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		evalStr     = flags.String("e", "", "Evaluate tokens")
		file        = flags.String("f", "", "Evaluate a token file")
		macroFile   = flags.String("macros", "", "Macro file loaded at start")
		dbPath      = flags.String("db", config.DefaultDB, "SQLite macro store path (empty for none)")
		persistMode = flags.String("persist-mode", config.DefaultPersistMode, "Persistence mode: on_demand, always, or never")
		noStdlib    = flags.Bool("no-stdlib", false, "Disable the prelude macros")
		configPath  = flags.String("config", "", "TOML config file (default: user config dir)")
		trace       = flags.Bool("trace", false, "Print each executed token to stderr")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	// Explicit flags win over the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DB = *dbPath
		case "persist-mode":
			cfg.PersistMode = *persistMode
		case "no-stdlib":
			cfg.NoStdlib = *noStdlib
		case "trace":
			cfg.Trace = *trace
		case "macros":
			cfg.Macros = append(cfg.Macros, *macroFile)
		}
	})

	mode, ok := rpnc.ParsePersistMode(cfg.PersistMode)
	if !ok {
		fmt.Fprintf(stderr, "Unknown persist mode: %s (use on_demand, always, or never)\n", cfg.PersistMode)
		return 1
	}

	// Build options
	opts := []rpnc.Option{rpnc.WithPersistMode(mode)}
	if cfg.DB != "" {
		opts = append(opts, rpnc.WithSQLiteStore(cfg.DB))
	}
	if cfg.NoStdlib {
		opts = append(opts, rpnc.WithNoStdlib())
	} else if cfg.Prelude != "" {
		opts = append(opts, rpnc.WithPrelude(cfg.Prelude))
	}
	if cfg.Trace {
		opts = append(opts, rpnc.WithTraceWriter(func(line string) {
			fmt.Fprintln(stderr, line)
		}))
	}

	runtime, err := rpnc.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer runtime.Close()

	for _, path := range cfg.Macros {
		if err := runtime.Load(path); err != nil {
			fmt.Fprintf(stderr, "Error loading macros: %v\n", err)
			return 1
		}
	}

	switch {
	case *evalStr != "":
		err = runtime.EvalReader(strings.NewReader(*evalStr))
	case *file != "":
		err = runtime.EvalFile(*file)
	case !isTerminal(stdin):
		// Piped input
		err = runtime.EvalReader(stdin)
	default:
		return runREPL(runtime, cfg, stdout)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	printStack(stdout, runtime.Stack())
	return 0
}

// loadConfig reads an explicit config path, or the per-user file if one
// exists.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	path = config.DefaultPath()
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// printStack writes one value per line, bottom first.
func printStack(w io.Writer, stack []rpnc.Value) {
	for _, v := range stack {
		fmt.Fprintln(w, v)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
