package fix

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// MaxRounds bounds how often the pipeline repeats before giving up.
const MaxRounds = 10

// ErrNotConverged is returned when the pipeline keeps changing the text.
var ErrNotConverged = errors.New("fix did not converge")

// Change counts the edits one pass made over all rounds.
type Change struct {
	Pass  string `json:"pass"`
	Count int    `json:"count"`
}

// Result is the outcome of fixing one text.
type Result struct {
	Text    string   `json:"-"`
	Changed bool     `json:"changed"`
	Changes []Change `json:"changes,omitempty"`
	Rounds  int      `json:"rounds"`
}

// Fixer applies the pass pipeline under one rule configuration.
type Fixer struct {
	cfg       *core.RuleConfig
	logger    *slog.Logger
	scanner   *source.Scanner
	maxRounds int
	passes    []pass
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithLogger sets the fixer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fixer) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMaxRounds overrides MaxRounds.
func WithMaxRounds(n int) Option {
	return func(f *Fixer) {
		if n > 0 {
			f.maxRounds = n
		}
	}
}

// New creates a Fixer. A nil cfg uses the built-in defaults.
func New(cfg *core.RuleConfig, opts ...Option) *Fixer {
	if cfg == nil {
		d := core.DefaultRuleConfig()
		cfg = &d
	}
	f := &Fixer{
		cfg:       cfg,
		logger:    slog.New(slog.DiscardHandler),
		maxRounds: MaxRounds,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.scanner = source.NewScanner(f.logger)
	f.passes = pipeline()
	return f
}

// Passes returns the pass names in pipeline order.
func (f *Fixer) Passes() []string {
	names := make([]string, len(f.passes))
	for i, p := range f.passes {
		names[i] = p.name
	}
	return names
}

// Fix runs the pipeline to a fixed point. On error the returned Result is
// nil and the caller must leave the source untouched.
func (f *Fixer) Fix(text string) (*Result, error) {
	counts := make(map[string]int)
	current := text

	for round := 1; round <= f.maxRounds; round++ {
		next, err := f.round(current, counts)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
		if next == current {
			return &Result{
				Text:    current,
				Changed: current != text,
				Changes: f.changes(counts),
				Rounds:  round,
			}, nil
		}
		current = next
	}

	f.logger.Warn("fix did not converge", slog.Int("rounds", f.maxRounds))
	return nil, fmt.Errorf("%w after %d rounds", ErrNotConverged, f.maxRounds)
}

func (f *Fixer) round(text string, counts map[string]int) (string, error) {
	doc := source.Parse(text)
	for _, p := range f.passes {
		if !f.cfg.RuleEnabled(p.ruleID) {
			continue
		}
		n, err := p.apply(f, doc)
		if err != nil {
			return "", fmt.Errorf("%s pass: %w", p.name, err)
		}
		if n > 0 {
			f.logger.Debug("pass changed text", slog.String("pass", p.name), slog.Int("count", n))
			counts[p.name] += n
		}
	}
	return doc.String(), nil
}

func (f *Fixer) changes(counts map[string]int) []Change {
	var out []Change
	for _, p := range f.passes {
		if n := counts[p.name]; n > 0 {
			out = append(out, Change{Pass: p.name, Count: n})
		}
	}
	return out
}

// context rebuilds sections and facts for the current state of doc.
func (f *Fixer) context(doc *source.Document) *lint.Context {
	return lint.NewContext(doc, f.cfg, f.scanner)
}
