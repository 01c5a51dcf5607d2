package conformance

import (
	"fmt"
	"testing"
)

func TestConformance(t *testing.T) {
	// Load all test cases
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}

	if len(tests) == 0 {
		t.Fatal("No tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)
	stats := ComputeStats(results)

	// Group results by file for organized output
	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	// Run each test file as a subtest
	for file, fileResults := range fileGroups {
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				result := result
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("Skipped: %s", result.SkipReason)
					} else if !result.Passed {
						if result.Error != nil {
							t.Errorf("Test failed: %v\n%s", result.Error, result.Test.Test.Code)
						} else {
							t.Error("Test failed")
						}
					}
				})
			}
		})
	}

	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
}

func TestYAMLParsing(t *testing.T) {
	// This test verifies that all YAML files parse and are well formed
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("YAML parsing failed: %v", err)
	}

	files := make(map[string]bool)
	for i, test := range tests {
		files[test.File] = true

		// Each test must have a name
		if test.Test.Name == "" {
			t.Errorf("Test %d in %s has no name", i, test.File)
		}

		// Each test must have an expectation
		if test.Test.Expect.IsEmpty() {
			t.Errorf("Test %s in %s has no expectation", test.Test.Name, test.File)
		}

		// Each test must have code
		if test.Test.Code == "" {
			t.Errorf("Test %s in %s has no code", test.Test.Name, test.File)
		}
	}

	if len(files) < 5 {
		t.Errorf("Expected at least 5 suite files, got %d", len(files))
	}
	t.Logf("All %d tests in %d files parsed successfully", len(tests), len(files))
}

func TestExpectationFailuresAreReported(t *testing.T) {
	tests, err := LoadFile("testdata/basics.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(tests) == 0 {
		t.Fatal("basics.yaml has no tests")
	}

	// Same code, wrong expectation
	broken := tests[0]
	broken.Test.Expect = Expectation{Error: "ArityMismatch"}
	result := NewRunner().Run(broken)
	if result.Passed || result.Error == nil {
		t.Errorf("mismatched expectation passed: %+v", result)
	}

	broken.Test.Expect = Expectation{Error: "NotAnError"}
	if result := NewRunner().Run(broken); result.Passed {
		t.Error("unknown error name accepted")
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		skip interface{}
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"not yet", true},
	}
	for _, tt := range tests {
		tc := TestCase{Skip: tt.skip}
		if got, _ := tc.IsSkipped(); got != tt.want {
			t.Errorf("IsSkipped(%v) = %v, want %v", tt.skip, got, tt.want)
		}
	}
}

// BenchmarkLoadAllTests measures test loading performance
func BenchmarkLoadAllTests(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := LoadAllTests()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func ExampleFormatStats() {
	fmt.Println(FormatStats(SummaryStats{Total: 5, Passed: 3, Failed: 1, Skipped: 1}))
	// Output: 3 passed, 1 failed, 1 skipped (5 total)
}
