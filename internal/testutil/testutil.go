// Package testutil is the golden-fixture test harness jmcc's own
// _test.go files drive: a YAML file holds a map of test name to
// {jmc, namespace, tree}, and RunTest compiles the jmc source and
// diffs the resulting tree against the fixture. Adapted from the
// teacher's testutil.ReadTests/RunTest, which do the same thing for
// SQL fixtures and a live database instead of a compiled datapack.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/jmc-lang/jmcc/internal/compile"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

// TestCase is one fixture entry: compile JMC and expect the resulting
// in-memory file tree to equal Tree exactly.
type TestCase struct {
	JMC       string            `yaml:"jmc"`
	Namespace string            `yaml:"namespace"`
	Error     string            `yaml:"error"` // expected error substring, if compilation should fail
	Tree      map[string]string `yaml:"tree"`
}

// ReadTests loads every YAML file matching pattern and merges their
// test-name maps, erroring on a name defined in more than one file.
func ReadTests(pattern string) (map[string]TestCase, error) {
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	ret := map[string]TestCase{}
	definedIn := map[string]string{}

	for _, file := range files {
		buf, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		var tests map[string]TestCase
		if err := yaml.Unmarshal(buf, &tests); err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}

		for name, test := range tests {
			if existing, ok := definedIn[name]; ok {
				return nil, fmt.Errorf("duplicate test case name %q: defined in both %q and %q", name, existing, file)
			}
			definedIn[name] = file
			ret[name] = test
		}
	}

	return ret, nil
}

// RunTest compiles test.JMC and asserts the result against test.Tree
// (or test.Error, if the fixture expects a compile failure).
func RunTest(t *testing.T, name string, test TestCase) {
	t.Helper()

	namespace := test.Namespace
	if namespace == "" {
		namespace = "jmc"
	}

	vf, err := compile.Compile(test.JMC, "main.jmc", namespace)

	if test.Error != "" {
		if err == nil {
			t.Errorf("%s: expected error containing %q, got no error", name, test.Error)
			return
		}
		assert.Contains(t, err.Error(), test.Error, "%s: error mismatch", name)
		return
	}

	if !assert.NoError(t, err, "%s: compile failed", name) {
		return
	}

	actualPaths := vf.Paths()
	expectedPaths := make([]string, 0, len(test.Tree))
	for p := range test.Tree {
		expectedPaths = append(expectedPaths, p)
	}
	sort.Strings(expectedPaths)

	assert.Equal(t, expectedPaths, actualPaths, "%s: produced file set mismatch", name)

	for _, path := range expectedPaths {
		actual, ok := vf.ReadFile(path)
		if !assert.True(t, ok, "%s: missing expected file %s", name, path) {
			continue
		}
		assert.Equal(t, test.Tree[path], string(actual), "%s: content mismatch for %s", name, path)
	}
}

// RunAll loads every fixture matching pattern and runs each as its
// own subtest, named after its fixture key.
func RunAll(t *testing.T, pattern string) {
	t.Helper()

	tests, err := ReadTests(pattern)
	if err != nil {
		t.Fatalf("reading fixtures %s: %v", pattern, err)
	}

	names := make([]string, 0, len(tests))
	for name := range tests {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		test := tests[name]
		t.Run(name, func(t *testing.T) {
			RunTest(t, name, test)
		})
	}
}
