package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"kaffee/config"
	"kaffee/eval"
	"kaffee/parser"
	"kaffee/types"
)

const replHelp = `Enter statements to run them; unfinished blocks continue on the next line.
  :heap    show the allocation table
  :scope   show the scope stack
  :gc      show collector totals
  :help    show this message
  :quit    leave (Ctrl-D also works)`

var keywords = []string{
	"break", "const", "continue", "else", "false", "fn", "for", "function",
	"if", "let", "null", "return", "true", "while",
}

// runREPL reads and evaluates input until EOF. Errors are reported and
// the session continues with whatever state the failed line left.
func runREPL(cfg *config.Config, opts eval.Options, stdout, stderr io.Writer) int {
	evaluator := eval.NewEvaluator(opts)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return complete(evaluator, line)
	})

	histPath := historyPath(cfg.REPL.HistoryFile)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		} else if !errors.Is(err, os.ErrNotExist) {
			log.Warnf("Cannot read history %s: %v", histPath, err)
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warnf("Cannot save history %s: %v", histPath, err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Fprintln(stdout, "kaffee REPL. Type :help for commands.")
	for {
		src, ok := readStatement(ln, cfg.REPL.Prompt, cfg.REPL.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(stdout)
			return exitOK
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(evaluator, trimmed, stdout); quit {
				return exitOK
			}
			continue
		}

		v, err := evaluator.EvalProgram(src)
		if err != nil {
			fmt.Fprintln(stderr, describe(types.AsError(err)))
			continue
		}
		if _, isNull := v.(types.NullValue); !isNull {
			fmt.Fprintln(stdout, evaluator.Heap().Inspect(v))
		}
	}
}

// readStatement prompts until the input parses or fails for a reason
// other than running out of text
func readStatement(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C drops the pending statement
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.Parse(src); perr != nil && parser.IsIncomplete(perr) && line != "" {
			continue
		}
		return src, true
	}
}

// replCommand runs a :command and reports whether the session should end
func replCommand(evaluator *eval.Evaluator, cmd string, out io.Writer) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":heap":
		evaluator.Heap().Dump(out)
	case ":scope":
		evaluator.Scopes().Dump(out)
	case ":gc":
		totals := evaluator.Collector().Totals()
		fmt.Fprintf(out, "mode=%v collections=%d freed=%d live=%d\n",
			evaluator.Collector().Mode(), totals.Collections, totals.Freed, evaluator.Heap().Len())
	case ":help", ":?":
		fmt.Fprintln(out, replHelp)
	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for commands.\n", cmd)
	}
	return false
}

// complete offers bound names and keywords extending the word under the
// cursor
func complete(evaluator *eval.Evaluator, line string) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r == '$' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, name := range append(evaluator.Scopes().Names(), keywords...) {
		if strings.HasPrefix(name, word) && !seen[name] {
			seen[name] = true
			out = append(out, prefix+name)
		}
	}
	sort.Strings(out)
	return out
}

// historyPath puts a relative history file in the user's home directory
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}
