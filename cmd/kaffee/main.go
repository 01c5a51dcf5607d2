package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"

	"kaffee/config"
	"kaffee/eval"
	"kaffee/parser"
	"kaffee/trace"
	"kaffee/types"
)

// Process exit codes
const (
	exitOK       = 0
	exitUsage    = 1
	exitSyntax   = 2
	exitResolve  = 3
	exitType     = 4
	exitSemantic = 5
	exitLimit    = 6
	exitInternal = 70
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, so it can be driven from tests
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kaffee", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: kaffee [flags] [file.kf]\n\nWith no file and no -e, starts the REPL.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Config file (default ./"+config.DefaultPath+" if present)")
	source := fs.String("e", "", "Evaluate source text instead of a file")

	// Trace flags
	traceEnabled := fs.Bool("trace", false, "Enable execution tracing")
	traceFilter := fs.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'fib' or 'draw_*')")

	gcMode := fs.String("gc", "", "Collector mode: transitive or shallow")
	maxDepth := fs.Int("max-depth", -1, "Maximum nested call depth (0 = unlimited)")
	dumpAST := fs.Bool("dump-ast", false, "Print the parsed program instead of running it")
	verbose := fs.Bool("v", false, "Verbose diagnostics")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *verbose {
		log.SetLogLevel(log.Verbose)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Errf("Failed to load config: %v", err)
		return exitUsage
	}

	// Flags override the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.Trace.Enabled = *traceEnabled
		case "trace-filter":
			cfg.Trace.Filters = splitFilters(*traceFilter)
		case "gc":
			cfg.GC.Mode = *gcMode
		case "max-depth":
			cfg.Limits.MaxCallDepth = *maxDepth
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Errf("%v", err)
		return exitUsage
	}

	// Initialize tracer
	if cfg.Trace.Enabled {
		trace.Init(true, cfg.Trace.Filters, stderr)
		log.LogVf("Tracing enabled (filters: %v)", cfg.Trace.Filters)
	} else {
		trace.Init(false, nil, nil)
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Errf("%v", err)
		return exitUsage
	}
	opts.In = stdin
	opts.Out = stdout

	var name, src string
	switch {
	case *source != "":
		name, src = "-e", *source
	case fs.NArg() == 1:
		name = fs.Arg(0)
		data, err := os.ReadFile(name)
		if err != nil {
			log.Errf("Failed to read program: %v", err)
			return exitUsage
		}
		src = string(data)
	case fs.NArg() > 1:
		fs.Usage()
		return exitUsage
	default:
		if *dumpAST {
			log.Errf("-dump-ast needs a file or -e")
			return exitUsage
		}
		return runREPL(cfg, opts, stdout, stderr)
	}

	if *dumpAST {
		return dumpProgram(name, src, stdout, stderr)
	}
	return runProgram(name, src, opts, stderr)
}

// loadConfig reads an explicit config path, or the default path when present
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.Load(path)
		if err == nil {
			log.Infof("Config: %s", path)
		}
		return cfg, err
	}
	cfg, found, err := config.LoadOptional(config.DefaultPath)
	if found {
		log.Infof("Config: %s", config.DefaultPath)
	}
	return cfg, err
}

// splitFilters parses a comma separated -trace-filter value
func splitFilters(s string) []string {
	var filters []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			filters = append(filters, f)
		}
	}
	return filters
}

// runProgram evaluates a whole program and reports its first error
func runProgram(name, src string, opts eval.Options, stderr io.Writer) int {
	log.LogVf("Running %s (gc=%v, max depth %d)", name, opts.GCMode, opts.MaxCallDepth)
	evaluator := eval.NewEvaluator(opts)

	_, err := evaluator.EvalProgram(src)
	if err != nil {
		rtErr := types.AsError(err)
		fmt.Fprintf(stderr, "%s: %s\n", name, describe(rtErr))
		return exitCode(rtErr)
	}

	totals := evaluator.Collector().Totals()
	log.LogVf("%s: %d collections, %d slots freed, %d live", name,
		totals.Collections, totals.Freed, evaluator.Heap().Len())
	return exitOK
}

// describe formats an error, with its traceback when it left a function
func describe(err *types.Error) string {
	if len(err.Stack) == 0 {
		return err.Error()
	}
	return err.TracebackString()
}

// dumpProgram prints the program as the parser understood it
func dumpProgram(name, src string, stdout, stderr io.Writer) int {
	stmts, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitSyntax
	}
	fmt.Fprintln(stdout, parser.Unparse(stmts))
	return exitOK
}

// exitCode maps an error's category to the process exit status
func exitCode(err *types.Error) int {
	if err == nil {
		return exitOK
	}
	switch err.Code.Category() {
	case types.CAT_SYNTAX:
		return exitSyntax
	case types.CAT_RESOLUTION:
		return exitResolve
	case types.CAT_TYPE:
		return exitType
	case types.CAT_SEMANTIC:
		return exitSemantic
	case types.CAT_LIMIT:
		return exitLimit
	default:
		return exitInternal
	}
}
