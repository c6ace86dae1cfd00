package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules" // register rules
)

func runRule(t *testing.T, text string, ruleID string, mutate ...func(*core.RuleConfig)) []core.Finding {
	t.Helper()
	cfg := core.DefaultRuleConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	analyzer := lint.NewAnalyzer(lint.NewConfigFromRuleConfig(&cfg))
	var filtered []core.Finding
	for _, f := range analyzer.AnalyzeText(text, &cfg) {
		if f.RuleID == ruleID {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func TestNamingConventions(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantMessage string // empty means no finding
	}{
		{
			name:        "prefixed function",
			text:        "f_calculateAverage(a, b) => (a + b) / 2\n",
			wantMessage: "Function name 'f_calculateAverage' does not follow camelCase convention",
		},
		{
			name: "camel function",
			text: "calculateAverage(a, b) => (a + b) / 2\n",
		},
		{
			name:        "snake input",
			text:        "fast_length = input.int(9)\n",
			wantMessage: "Input name 'fast_length' does not follow camelCase convention",
		},
		{
			name:        "variable",
			text:        "var float Peak_Value = na\n",
			wantMessage: "Variable name 'Peak_Value' does not follow camelCase convention",
		},
		{
			name:        "lower constant",
			text:        "const int c_max = 5\n",
			wantMessage: "Constant name 'c_max' does not follow SNAKE_CASE convention",
		},
		{
			name: "snake constant",
			text: "const int MAX_BARS = 500\n",
		},
		{
			name: "imports are not named",
			text: "import TradingView/ta/7 as Ta_Lib\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.text, core.RuleNamingConventions)
			if tt.wantMessage == "" {
				assert.Empty(t, findings)
				return
			}
			require.Len(t, findings, 1)
			assert.Equal(t, tt.wantMessage, findings[0].Message)
			assert.Equal(t, 1, findings[0].Line)
			assert.Equal(t, core.SeverityInfo, findings[0].Severity)
		})
	}
}

func TestNamingConventions_PrefixConvention(t *testing.T) {
	text := "calc(x) => x\nf_other(x) => x\n"
	findings := runRule(t, text, core.RuleNamingConventions, func(c *core.RuleConfig) {
		c.Rules.NamingConventions = core.NamingConventions{Functions: "f_*"}
	})
	require.Len(t, findings, 1)
	assert.Equal(t, "Function name 'calc' does not follow f_* convention", findings[0].Message)
}

func TestNamingConventions_UnknownSpecSkipped(t *testing.T) {
	findings := runRule(t, "Calc(x) => x\n", core.RuleNamingConventions, func(c *core.RuleConfig) {
		c.Rules.NamingConventions = core.NamingConventions{Functions: "kebab-case"}
	})
	assert.Empty(t, findings)
}

func TestIndentedVariable(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines []int
	}{
		{
			name:      "stray indent after statement",
			text:      "plot(close)\n    var int count = 0\n",
			wantLines: []int{2},
		},
		{
			name: "inside if body",
			text: "if close > open\n    var int count = 0\n",
		},
		{
			name: "inside function body",
			text: "counter() =>\n    var int count = 0\n    count += 1\n",
		},
		{
			name:      "first code line",
			text:      "//@version=6\n  var x = 1\n",
			wantLines: []int{2},
		},
		{
			name:      "run of stray declarations",
			text:      "plot(close)\n    var a = 1\n    var b = 2\n",
			wantLines: []int{2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.text, core.RuleIndentedVariable)
			var lines []int
			for _, f := range findings {
				lines = append(lines, f.Line)
				assert.Equal(t, "Variable declarations should not be indented", f.Message)
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestMissingContinuation(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLines []int
	}{
		{
			name:      "and at end of line",
			text:      "signal = fast > slow and\nvolume > avgVol\n",
			wantLines: []int{1},
		},
		{
			name: "indented continuation",
			text: "signal = fast > slow and\n     volume > avgVol\n",
		},
		{
			name:      "operator before comment",
			text:      "total = a + // running\nb\n",
			wantLines: []int{1},
		},
		{
			name: "followed by blank line",
			text: "x = a +\n\nb\n",
		},
		{
			name: "followed by comment",
			text: "x = a +\n// b\n",
		},
		{
			name: "function arrow",
			text: "f(x) =>\nplot(close)\n",
		},
		{
			name: "last line",
			text: "x = a +",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.text, core.RuleMissingContinuation)
			var lines []int
			for _, f := range findings {
				lines = append(lines, f.Line)
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}
