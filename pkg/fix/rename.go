package fix

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// fixNaming renames every non-conforming declaration. The substitution is
// textual and file-wide: every whole-word occurrence is replaced, including
// method call sites and those in comments and strings.
func (f *Fixer) fixNaming(doc *source.Document) (int, error) {
	ctx := f.context(doc)
	renames := f.plannedRenames(ctx)
	if len(renames) == 0 {
		return 0, nil
	}

	olds := make([]string, 0, len(renames))
	for old := range renames {
		olds = append(olds, old)
	}
	// Longest first so the alternation never stops at a shorter name.
	slices.SortFunc(olds, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	quoted := make([]string, len(olds))
	for i, o := range olds {
		quoted[i] = regexp.QuoteMeta(o)
	}
	pattern := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)

	for i := 0; i < doc.Len(); i++ {
		text := doc.Text(i)
		replaced := pattern.ReplaceAllStringFunc(text, func(m string) string { return renames[m] })
		if replaced == text {
			continue
		}
		if err := doc.SetText(i, replaced); err != nil {
			return 0, err
		}
	}
	return len(renames), nil
}

// plannedRenames maps old names to new ones, dropping renames that cannot
// be fixed, whose target is already declared, or that would merge two names.
func (f *Fixer) plannedRenames(ctx *lint.Context) map[string]string {
	renames := make(map[string]string)
	targets := make(map[string][]string)
	for _, v := range lint.NamingViolations(ctx) {
		old := v.Block.Name
		if _, seen := renames[old]; seen {
			continue
		}
		renamed := v.Convention.Transform(old)
		if renamed == old {
			f.logger.Debug("no conforming name", slog.String("name", old), slog.String("convention", v.Convention.String()))
			continue
		}
		if ctx.Facts.Declared(renamed) {
			f.logger.Warn("skipping rename: target already declared",
				slog.String("from", old), slog.String("to", renamed), slog.Int("line", v.Block.Start))
			continue
		}
		renames[old] = renamed
		targets[renamed] = append(targets[renamed], old)
	}

	for renamed, olds := range targets {
		if len(olds) < 2 {
			continue
		}
		f.logger.Warn("skipping rename: names would collide",
			slog.String("to", renamed), slog.Any("from", olds))
		for _, old := range olds {
			delete(renames, old)
		}
	}
	return renames
}
