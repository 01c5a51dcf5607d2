package conformance

import "gopkg.in/yaml.v3"

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Setup       string     `yaml:"setup,omitempty"` // code run before every test in the suite
	Tests       []TestCase `yaml:"tests"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	Code        string      `yaml:"code"`
	Input       []string    `yaml:"input,omitempty"` // lines fed to input()
	GC          string      `yaml:"gc,omitempty"`    // transitive|shallow
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test. Any
// combination may be given; at least one must be.
type Expectation struct {
	Value  yaml.Node `yaml:"value,omitempty"`  // program value, compared structurally
	Output *[]string `yaml:"output,omitempty"` // printed lines, in order
	Error  string    `yaml:"error,omitempty"`  // taxonomy name, e.g. ArityMismatch
	Type   string    `yaml:"type,omitempty"`   // type name of the program value
}

// HasValue reports whether a value expectation was written, including
// an explicit null
func (e *Expectation) HasValue() bool {
	return e.Value.Kind != 0
}

// IsEmpty reports whether nothing is expected at all
func (e *Expectation) IsEmpty() bool {
	return !e.HasValue() && e.Output == nil && e.Error == "" && e.Type == ""
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
