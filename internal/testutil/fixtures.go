package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CleanScript has every default section and no findings under the
// default configuration.
const CleanScript = `//@version=6
// =================== METADATA =================== //
indicator("Clean")

// =================== INPUT GROUPS =================== //

// =================== INPUT PARAMETERS =================== //
length = input.int(14, "Length")

// =================== VARIABLE DECLARATIONS =================== //
var float peak = na

// =================== FUNCTION DEFINITIONS =================== //
smooth(src, len) =>
    ta.ema(src, len)

// =================== MAIN CALCULATIONS =================== //
value = smooth(close, length)
peak := math.max(nz(peak), value)

// =================== VISUALIZATION =================== //
plot(value)

// =================== ALERTS =================== //
alertcondition(value > peak, "Peak")
`

// MisplacedScript is CleanScript with the variable declaration moved into
// MAIN CALCULATIONS. Fixing it yields MisplacedScriptFixed.
const MisplacedScript = `//@version=6
// =================== METADATA =================== //
indicator("Clean")

// =================== INPUT GROUPS =================== //

// =================== INPUT PARAMETERS =================== //
length = input.int(14, "Length")

// =================== VARIABLE DECLARATIONS =================== //

// =================== FUNCTION DEFINITIONS =================== //
smooth(src, len) =>
    ta.ema(src, len)

// =================== MAIN CALCULATIONS =================== //
var float peak = na
value = smooth(close, length)
peak := math.max(nz(peak), value)

// =================== VISUALIZATION =================== //
plot(value)

// =================== ALERTS =================== //
alertcondition(value > peak, "Peak")
`

// MisplacedScriptFixed is the fixer output for MisplacedScript.
const MisplacedScriptFixed = `//@version=6
// =================== METADATA =================== //
indicator("Clean")

// =================== INPUT GROUPS =================== //

// =================== INPUT PARAMETERS =================== //
length = input.int(14, "Length")

// =================== VARIABLE DECLARATIONS =================== //
var float peak = na

// =================== FUNCTION DEFINITIONS =================== //
smooth(src, len) =>
    ta.ema(src, len)

// =================== MAIN CALCULATIONS =================== //
value = smooth(close, length)
peak := math.max(nz(peak), value)

// =================== VISUALIZATION =================== //
plot(value)

// =================== ALERTS =================== //
alertcondition(value > peak, "Peak")
`

// WriteFile writes content to dir/name, creating parent directories, and
// returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // G304: test fixture path
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
