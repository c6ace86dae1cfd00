package fix_test

import (
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pinelint/internal/testutil"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/fix"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules" // register rules
)

// onlyRules returns the default config with every rule but ids disabled.
func onlyRules(ids ...string) core.RuleConfig {
	cfg := core.DefaultRuleConfig()
	for _, id := range core.RuleIDs() {
		if !slices.Contains(ids, id) {
			cfg.DisabledRules = append(cfg.DisabledRules, id)
		}
	}
	return cfg
}

func runFix(t *testing.T, cfg core.RuleConfig, text string) *fix.Result {
	t.Helper()
	res, err := fix.New(&cfg, fix.WithLogger(testutil.NewTestLogger(t))).Fix(text)
	require.NoError(t, err)
	return res
}

func findings(cfg core.RuleConfig, text string, ruleID string) []core.Finding {
	var out []core.Finding
	for _, f := range lint.NewAnalyzer(lint.NewConfigFromRuleConfig(&cfg)).AnalyzeText(text, &cfg) {
		if f.RuleID == ruleID {
			out = append(out, f)
		}
	}
	return out
}

func TestFix_RelocatesVariable(t *testing.T) {
	input := `//@version=6
// =================== METADATA =================== //
indicator("Demo")

// =================== INPUT GROUPS =================== //

// =================== INPUT PARAMETERS =================== //
length = input.int(14)

// =================== VARIABLE DECLARATIONS =================== //
var float peak = na

// =================== FUNCTION DEFINITIONS =================== //

// =================== MAIN CALCULATIONS =================== //
var float myVal = 1.0
plot(myVal)

// =================== VISUALIZATION =================== //

// =================== ALERTS =================== //
`
	want := `//@version=6
// =================== METADATA =================== //
indicator("Demo")

// =================== INPUT GROUPS =================== //

// =================== INPUT PARAMETERS =================== //
length = input.int(14)

// =================== VARIABLE DECLARATIONS =================== //
var float peak = na
var float myVal = 1.0

// =================== FUNCTION DEFINITIONS =================== //

// =================== MAIN CALCULATIONS =================== //
plot(myVal)

// =================== VISUALIZATION =================== //

// =================== ALERTS =================== //
`
	cfg := core.DefaultRuleConfig()
	res := runFix(t, cfg, input)

	assert.Equal(t, want, res.Text)
	assert.True(t, res.Changed)
	assert.Equal(t, []fix.Change{{Pass: fix.PassRelocateVariables, Count: 1}}, res.Changes)
	assert.Equal(t, 2, res.Rounds)
	assert.Empty(t, lint.NewAnalyzer(lint.NewConfigFromRuleConfig(&cfg)).AnalyzeText(res.Text, &cfg))
}

func TestFix_MissingPragma(t *testing.T) {
	cfg := core.DefaultRuleConfig()
	input := "indicator(\"x\")\nplot(close)\n"
	require.Len(t, findings(cfg, input, core.RuleRequireVersion), 1)

	res := runFix(t, cfg, input)
	assert.True(t, strings.HasPrefix(res.Text, "//@version=6\n"))
	assert.Empty(t, findings(cfg, res.Text, core.RuleRequireVersion))
}

func TestFix_Pragma(t *testing.T) {
	tests := []struct {
		name    string
		version int
		input   string
		want    string
	}{
		{
			name:  "empty file",
			input: "",
			want:  "//@version=6\n",
		},
		{
			name:    "configured version",
			version: 5,
			input:   "plot(close)",
			want:    "//@version=5\nplot(close)",
		},
		{
			name:  "hoisted after code",
			input: "indicator(\"x\")\n//@version=5\nplot(close)\n",
			want:  "//@version=5\nindicator(\"x\")\nplot(close)\n",
		},
		{
			name:  "already first",
			input: "// header\n//@version=6\nplot(close)\n",
			want:  "// header\n//@version=6\nplot(close)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := onlyRules(core.RuleRequireVersion)
			cfg.DefaultVersion = tt.version
			res := runFix(t, cfg, tt.input)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, tt.input != tt.want, res.Changed)
		})
	}
}

func TestFix_InsertsMissingSections(t *testing.T) {
	input := `//@version=6
// =================== METADATA =================== //
indicator("x")
// =================== MAIN CALCULATIONS =================== //
plot(close)
`
	want := `//@version=6
// =================== METADATA =================== //
indicator("x")

// =================== INPUT GROUPS =================== //

// =================== INPUT PARAMETERS =================== //

// =================== VARIABLE DECLARATIONS =================== //

// =================== FUNCTION DEFINITIONS =================== //

// =================== MAIN CALCULATIONS =================== //
plot(close)

// =================== VISUALIZATION =================== //

// =================== ALERTS =================== //
`
	cfg := onlyRules(core.RuleRequiredSections)
	res := runFix(t, cfg, input)

	assert.Equal(t, want, res.Text)
	assert.Equal(t, []fix.Change{{Pass: fix.PassSections, Count: 6}}, res.Changes)

	full := core.DefaultRuleConfig()
	assert.Empty(t, findings(full, res.Text, core.RuleRequiredSections))
	assert.Empty(t, findings(full, res.Text, core.RuleSectionOrder))
}

func TestFix_RelocatesFunctionsWithSeparator(t *testing.T) {
	input := `// =================== FUNCTION DEFINITIONS =================== //
avg(a, b) =>
    (a + b) / 2

// =================== MAIN CALCULATIONS =================== //
double(x) => x * 2
triple(x) =>
    x * 3
plot(double(close))
`
	want := `// =================== FUNCTION DEFINITIONS =================== //
avg(a, b) =>
    (a + b) / 2

double(x) => x * 2

triple(x) =>
    x * 3

// =================== MAIN CALCULATIONS =================== //
plot(double(close))
`
	cfg := onlyRules(core.RuleFunctionPlacement)
	res := runFix(t, cfg, input)

	assert.Equal(t, want, res.Text)
	assert.Equal(t, []fix.Change{{Pass: fix.PassRelocateFunctions, Count: 2}}, res.Changes)
	assert.Empty(t, findings(cfg, res.Text, core.RuleFunctionPlacement))
}

func TestFix_RelocatesIntoEmptySection(t *testing.T) {
	input := `// =================== INPUT PARAMETERS =================== //
// =================== MAIN CALCULATIONS =================== //
plot(close)
fast = input.int(9)
slow = input.int(21)
`
	want := `// =================== INPUT PARAMETERS =================== //
fast = input.int(9)
slow = input.int(21)
// =================== MAIN CALCULATIONS =================== //
plot(close)
`
	res := runFix(t, onlyRules(core.RuleInputPlacement), input)
	assert.Equal(t, want, res.Text)
}

func TestFix_AmbiguousBlockNotMoved(t *testing.T) {
	input := `// =================== FUNCTION DEFINITIONS =================== //
// =================== MAIN CALCULATIONS =================== //
calc(x) =>
    y = x * 2

    y + 1
`
	cfg := onlyRules(core.RuleFunctionPlacement)
	res := runFix(t, cfg, input)

	assert.False(t, res.Changed)
	assert.Equal(t, input, res.Text)

	remaining := findings(cfg, res.Text, core.RuleFunctionPlacement)
	require.Len(t, remaining, 1)
	assert.True(t, remaining[0].LowConfidence)
}

func TestFix_Naming(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "function renamed everywhere",
			input: `f_calculateAverage(a, b) => (a + b) / 2
avg = f_calculateAverage(close, open)
plot(avg, title = "f_calculateAverage")
obj.f_calculateAverage(1)
`,
			want: `calculateAverage(a, b) => (a + b) / 2
avg = calculateAverage(close, open)
plot(avg, title = "calculateAverage")
obj.calculateAverage(1)
`,
		},
		{
			name: "method and dotted call sites",
			input: `method f_double(float x) => x * 2
y = close.f_double()
z = y.f_double() + f_double(open)
`,
			want: `method double(float x) => x * 2
y = close.double()
z = y.double() + double(open)
`,
		},
		{
			name:  "constant",
			input: "const int c_max_len = 5\nplot(c_max_len)\n",
			want:  "const int MAX_LEN = 5\nplot(MAX_LEN)\n",
		},
		{
			name:  "whole words only",
			input: "var float v_total = 0\nv_total_bars = v_total + 1\n",
			want:  "var float total = 0\nv_total_bars = total + 1\n",
		},
		{
			name:  "target already declared",
			input: "f_avg(x) => x\navg(x) => x * 2\n",
			want:  "f_avg(x) => x\navg(x) => x * 2\n",
		},
		{
			name:  "two names share a target",
			input: "f_avg(x) => x\nvar float v_avg = 0\n",
			want:  "f_avg(x) => x\nvar float v_avg = 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runFix(t, onlyRules(core.RuleNamingConventions), tt.input)
			assert.Equal(t, tt.want, res.Text)
		})
	}
}

func TestFix_NamingSkipsAreLogged(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "target declared", input: "f_avg(x) => x\navg(x) => x * 2\n", want: "skipping rename: target already declared"},
		{name: "shared target", input: "f_avg(x) => x\nvar float v_avg = 0\n", want: "skipping rename: names would collide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, rec := testutil.NewRecordingLogger(t)
			cfg := onlyRules(core.RuleNamingConventions)
			res, err := fix.New(&cfg, fix.WithLogger(logger)).Fix(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.input, res.Text)
			assert.True(t, rec.Contains(slog.LevelWarn, tt.want), rec.Messages())
		})
	}
}

func TestFix_ContinuationAndIndentation(t *testing.T) {
	input := "signal = fast > slow and\nvolume > avgVol\nplot(close)\n    var int count = 0\n"
	want := "signal = fast > slow and\n  volume > avgVol\nplot(close)\nvar int count = 0\n"

	cfg := onlyRules(core.RuleMissingContinuation, core.RuleIndentedVariable)
	res := runFix(t, cfg, input)

	assert.Equal(t, want, res.Text)
	assert.Equal(t, []fix.Change{
		{Pass: fix.PassContinuation, Count: 1},
		{Pass: fix.PassIndentation, Count: 1},
	}, res.Changes)
}

func TestFix_PreservesCRLF(t *testing.T) {
	input := "plot(close)\r\n"
	res := runFix(t, onlyRules(core.RuleRequireVersion), input)
	assert.Equal(t, "//@version=6\r\nplot(close)\r\n", res.Text)
}

func TestFix_NoChanges(t *testing.T) {
	input := "//@version=6\nplot(close)\n"
	res := runFix(t, onlyRules(core.RuleRequireVersion, core.RuleIndentedVariable), input)

	assert.False(t, res.Changed)
	assert.Empty(t, res.Changes)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, input, res.Text)
}

const messy = `indicator("Messy")
var float Peak_Value = na
f_calc(x) =>
    x * 2
length = input.int(14)
import TradingView/ta/7
// =================== MAIN CALCULATIONS =================== //
value = f_calc(close) +
close
plot(value)
    var int counter = 0
//@version=5
`

func TestFix_NotConverged(t *testing.T) {
	cfg := core.DefaultRuleConfig()
	_, err := fix.New(&cfg, fix.WithMaxRounds(1)).Fix(messy)
	require.Error(t, err)
	assert.ErrorIs(t, err, fix.ErrNotConverged)
}

func TestFix_IdempotentAndComplete(t *testing.T) {
	corpus := map[string]string{
		"messy": messy,
		"empty": "",
		"no sections": "plot(close)\nvar x = 1\nf_y(a) => a\n",
		"crlf": "indicator(\"x\")\r\nvar float Big_Value = 1\r\n",
		"clean-ish": `//@version=6
// =================== METADATA =================== //
indicator("Clean")
// =================== FUNCTION DEFINITIONS =================== //
// =================== INPUT PARAMETERS =================== //
fast_len = input.int(9)
`,
	}

	cfg := core.DefaultRuleConfig()
	var fixable []string
	for _, rule := range lint.GetAll() {
		if rule.Fixable() {
			fixable = append(fixable, rule.ID())
		}
	}
	require.NotContains(t, fixable, core.RuleSectionOrder)

	for name, input := range corpus {
		t.Run(name, func(t *testing.T) {
			first := runFix(t, cfg, input)
			second := runFix(t, cfg, first.Text)

			assert.Equal(t, first.Text, second.Text)
			assert.False(t, second.Changed)

			for _, id := range fixable {
				assert.Empty(t, findings(cfg, first.Text, id), "rule %s after fix:\n%s", id, first.Text)
			}
		})
	}
}

func TestFixer_Passes(t *testing.T) {
	assert.Equal(t, []string{
		fix.PassPragma,
		fix.PassSections,
		fix.PassRelocateVariables,
		fix.PassRelocateFunctions,
		fix.PassRelocateInputs,
		fix.PassRelocateImports,
		fix.PassNaming,
		fix.PassContinuation,
		fix.PassIndentation,
	}, fix.New(nil).Passes())
}
