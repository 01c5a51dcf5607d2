package conformance

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"kaffee/eval"
	"kaffee/gc"
	"kaffee/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Every test gets a fresh evaluator.
type Runner struct {
	maxCallDepth int
}

// NewRunner creates a test runner with the default call depth limit
func NewRunner() *Runner {
	return &Runner{maxCallDepth: eval.DefaultMaxCallDepth}
}

// outcome is what running a test's code produced
type outcome struct {
	value  types.Value
	err    *types.Error
	output string
	eval   *eval.Evaluator
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	// Check if test should be skipped
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}
	if test.Test.Code == "" {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: "no code",
		}
	}
	if test.Test.Expect.IsEmpty() {
		return TestResult{Test: test, Error: fmt.Errorf("no expectation specified")}
	}

	mode, err := gc.ParseMode(test.Test.GC)
	if err != nil {
		return TestResult{Test: test, Error: err}
	}

	var out bytes.Buffer
	opts := eval.Options{
		GCMode:       mode,
		MaxCallDepth: r.maxCallDepth,
		Out:          &out,
		In:           strings.NewReader(strings.Join(test.Test.Input, "\n")),
	}
	evaluator := eval.NewEvaluator(opts)

	// Run suite setup in the same evaluator
	if test.Suite.Setup != "" {
		if _, err := evaluator.EvalProgram(test.Suite.Setup); err != nil {
			return TestResult{
				Test:  test,
				Error: fmt.Errorf("suite setup failed: %w", err),
			}
		}
	}

	value, runErr := evaluator.EvalProgram(test.Test.Code)
	result := outcome{
		value:  value,
		err:    types.AsError(runErr),
		output: out.String(),
		eval:   evaluator,
	}

	passed, err := r.checkExpectation(test.Test.Expect, result)
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  err,
	}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the result matches the expected outcome.
// Output is compared even when the program failed, so a test can pin
// down what was printed before the error.
func (r *Runner) checkExpectation(expect Expectation, result outcome) (bool, error) {
	if expect.Output != nil {
		got := splitLines(result.output)
		if !reflect.DeepEqual(got, *expect.Output) {
			return false, fmt.Errorf("expected output %q, got %q", *expect.Output, got)
		}
	}

	// Check for expected error
	if expect.Error != "" {
		expectedErr, ok := types.ErrorFromString(expect.Error)
		if !ok {
			return false, fmt.Errorf("unknown error code: %s", expect.Error)
		}
		if result.err == nil {
			return false, fmt.Errorf("expected error %s, got value: %s", expect.Error, result.eval.Heap().Inspect(result.value))
		}
		if result.err.Code != expectedErr {
			return false, fmt.Errorf("expected error %s, got %v", expect.Error, result.err)
		}
		return true, nil
	}

	// Check for normal result
	if result.err != nil {
		return false, fmt.Errorf("unexpected error: %v", result.err)
	}

	if expect.Type != "" && result.value.Type().String() != expect.Type {
		return false, fmt.Errorf("expected type %s, got %s", expect.Type, result.value.Type())
	}

	if expect.HasValue() {
		var want interface{}
		if err := expect.Value.Decode(&want); err != nil {
			return false, fmt.Errorf("failed to decode expected value: %w", err)
		}
		got, err := result.eval.Heap().Export(result.value)
		if err != nil {
			return false, fmt.Errorf("cannot compare result: %w", err)
		}
		if !reflect.DeepEqual(normalize(got), normalize(want)) {
			return false, fmt.Errorf("expected %v, got %s", want, result.eval.Heap().Inspect(result.value))
		}
	}

	return true, nil
}

// splitLines breaks printed output into lines without their terminators
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// normalize converts YAML-decoded data and exported values to one shape:
// every number becomes float64.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = normalize(elem)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, elem := range val {
			out[k] = normalize(elem)
		}
		return out
	default:
		return v
	}
}
