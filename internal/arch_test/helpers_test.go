// Package arch_test checks almanac's package structure: the layer order of
// internal packages and which packages may use which third-party modules.
package arch_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"testing"
)

const internalPfx = "github.com/papapumpkin/almanac/internal/"

// internalDir returns the absolute path of internal/, next to this file's
// directory.
func internalDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate arch_test source")
	}
	return filepath.Dir(filepath.Dir(file))
}

// internalPackages lists the directories under internal/ that hold Go
// code, excluding arch_test itself.
func internalPackages(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(internalDir(t))
	if err != nil {
		t.Fatalf("reading internal/: %v", err)
	}
	var pkgs []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "arch_test" {
			pkgs = append(pkgs, e.Name())
		}
	}
	return pkgs
}

// packageImports returns the sorted, de-duplicated import paths of the
// non-test files of an internal package.
func packageImports(t *testing.T, pkg string) []string {
	t.Helper()
	dir := filepath.Join(internalDir(t), pkg)
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	fset := token.NewFileSet()
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		node, err := parser.ParseFile(fset, f, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}
		for _, imp := range node.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				t.Fatalf("%s: bad import %s", f, imp.Path.Value)
			}
			seen[path] = true
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// isStdlib reports whether path names a standard library package, whose
// first element never contains a dot.
func isStdlib(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
