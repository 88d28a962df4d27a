package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"nickandperla.net/rpnc/internal/config"
	"nickandperla.net/rpnc/internal/stdlib"
	"nickandperla.net/rpnc/internal/token"
	"nickandperla.net/rpnc/pkg/rpnc"
)

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "rpnc REPL (Ctrl+C to cancel input, Ctrl+D to exit). Type :help for commands.")
	fmt.Fprintln(w)
}

func runREPL(runtime *rpnc.Runtime, cfg config.Config, out io.Writer) int {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		printBanner(out)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetWordCompleter(func(line string, pos int) (string, []string, string) {
		return completeWord(runtime, line, pos)
	})

	// Load history (best-effort)
	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
	}

	r := &repl{runtime: runtime, out: out}
	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// Ctrl+D or EOF
			fmt.Fprintln(out)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if r.handle(line) {
			break
		}
	}

	// Persist history (best-effort)
	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}

// repl runs input lines against a runtime. It is separate from the line
// editor so it can be driven from tests.
type repl struct {
	runtime *rpnc.Runtime
	out     io.Writer
}

// handle runs one line of input and reports whether the session should end.
func (r *repl) handle(line string) bool {
	if strings.HasPrefix(line, ":") {
		return r.command(line)
	}
	if err := r.runtime.SubmitLine(line); err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
	}
	printStack(r.out, r.runtime.Stack())
	return false
}

// command handles the ':' meta commands.
func (r *repl) command(line string) (exit bool) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	// The macro body is taken verbatim; other arguments may be quoted
	if name == ":def" {
		if rest == "" {
			fmt.Fprintln(r.out, "usage: :def name: tokens")
			return false
		}
		if err := r.runtime.Define(rest); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
		return false
	}

	args, err := shellquote.Split(rest)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return false
	}

	switch name {
	case ":help":
		fmt.Fprint(r.out, stdlib.Help)

	case ":quit", ":exit":
		return true

	case ":rm":
		if len(args) == 0 {
			fmt.Fprintln(r.out, "usage: :rm name...")
			return false
		}
		for _, a := range args {
			if err := r.runtime.Remove(a); err != nil {
				fmt.Fprintf(r.out, "Error: %v\n", err)
			}
		}

	case ":list":
		for _, m := range r.runtime.Macros() {
			if m.Executable {
				fmt.Fprintln(r.out, m.Source())
			} else {
				fmt.Fprintf(r.out, "%s (removed)\n", m.Source())
			}
		}

	case ":show":
		if len(args) != 1 {
			fmt.Fprintln(r.out, "usage: :show name")
			return false
		}
		src, err := r.runtime.Source(args[0])
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return false
		}
		fmt.Fprintln(r.out, src)

	case ":save":
		if len(args) != 1 {
			fmt.Fprintln(r.out, "usage: :save path")
			return false
		}
		if err := r.runtime.Save(args[0]); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			return false
		}
		size := "?"
		if fi, err := os.Stat(args[0]); err == nil {
			size = humanize.Bytes(uint64(fi.Size()))
		}
		fmt.Fprintf(r.out, "saved %d macros to %s (%s)\n", len(r.runtime.Names()), args[0], size)

	case ":load":
		if len(args) != 1 {
			fmt.Fprintln(r.out, "usage: :load path")
			return false
		}
		before := len(r.runtime.Names())
		err := r.runtime.Load(args[0])
		if err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
		fmt.Fprintf(r.out, "%d macros defined\n", len(r.runtime.Names())-before)

	case ":vars":
		vars := r.runtime.Variables()
		keys := make([]byte, 0, len(vars))
		for k := range vars {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			fmt.Fprintf(r.out, "%c = %v\n", k, vars[k])
		}

	case ":persist":
		persist := r.runtime.Persist
		if len(args) == 1 && args[0] == "force" {
			persist = r.runtime.ForcePersist
		} else if len(args) == 1 {
			mode, ok := rpnc.ParsePersistMode(args[0])
			if !ok {
				fmt.Fprintf(r.out, "Unknown persist mode: %s (use on_demand, always, never, or force)\n", args[0])
				return false
			}
			r.runtime.SetPersistMode(mode)
			fmt.Fprintf(r.out, "persist mode %s\n", mode)
			if mode != rpnc.PersistAlways || !r.runtime.HasStore() {
				return false
			}
			// Macros defined before the switch are flushed now
		}
		if err := persist(); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
			if errors.Is(err, rpnc.ErrStoreChanged) {
				fmt.Fprintln(r.out, "use :persist force to overwrite")
			}
			return false
		}
		stored := 0
		for _, name := range r.runtime.Names() {
			if !r.runtime.IsPrelude(name) {
				stored++
			}
		}
		fmt.Fprintf(r.out, "persist mode %s, %d macros\n", r.runtime.PersistMode(), stored)

	default:
		fmt.Fprintf(r.out, "unknown command %s. Type :help for help.\n", name)
	}
	return false
}

// completeWord completes the word under the cursor from the vocabulary and
// the macro names.
func completeWord(runtime *rpnc.Runtime, line string, pos int) (string, []string, string) {
	// pos counts runes
	runes := []rune(line)
	if pos > len(runes) {
		pos = len(runes)
	}
	head, tail := string(runes[:pos]), string(runes[pos:])
	start := strings.LastIndexAny(head, " \t") + 1
	prefix := head[start:]
	if prefix == "" {
		return head, nil, tail
	}

	var matches []string
	for _, w := range append(token.Words(), runtime.Names()...) {
		if strings.HasPrefix(w, prefix) {
			matches = append(matches, w)
		}
	}
	return head[:start], matches, tail
}
