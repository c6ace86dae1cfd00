package fix

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// relocate returns the pass that moves misplaced blocks of one placement
// rule to the end of its target section.
func relocate(ruleID string) func(f *Fixer, doc *source.Document) (int, error) {
	return func(f *Fixer, doc *source.Document) (int, error) {
		p, ok := lint.PlacementFor(f.cfg, ruleID)
		if !ok {
			return 0, nil
		}
		return f.relocate(doc, p)
	}
}

func (f *Fixer) relocate(doc *source.Document, p lint.Placement) (int, error) {
	ctx := f.context(doc)
	misplaced, ok := p.Misplaced(ctx)
	if !ok || len(misplaced) == 0 {
		return 0, nil
	}
	target, ok := targetSection(ctx.Sections, p.Sections)
	if !ok {
		return 0, nil
	}

	var moving []source.Block
	for _, b := range misplaced {
		if b.Ambiguous {
			f.logger.Debug("not moving ambiguous block",
				slog.String("category", b.Category.String()),
				slog.String("name", b.Name),
				slog.Int("line", b.Start))
			continue
		}
		moving = append(moving, b)
	}
	if len(moving) == 0 {
		return 0, nil
	}

	// Remove bottom-up, then restore file order for insertion.
	texts := make([][]string, len(moving))
	for i := len(moving) - 1; i >= 0; i-- {
		removed, err := doc.Remove(moving[i].IDs...)
		if err != nil {
			return 0, fmt.Errorf("remove %s %q: %w", moving[i].Category, moving[i].Name, err)
		}
		texts[i] = removed
	}

	anchor, err := sectionAnchor(doc, target.HeaderID)
	if err != nil {
		return 0, err
	}

	separate := p.Category == source.CategoryFunction
	var lines []string
	for i, t := range texts {
		if separate && (i > 0 || anchor.ID != target.HeaderID) {
			lines = append(lines, "")
		}
		lines = append(lines, t...)
	}
	if _, err := doc.InsertAfter(anchor.ID, lines...); err != nil {
		return 0, err
	}

	for _, b := range moving {
		f.logger.Debug("relocated block",
			slog.String("category", b.Category.String()),
			slog.String("name", b.Name),
			slog.String("section", target.Name))
	}
	return len(moving), nil
}

// targetSection picks the first configured section name present in the
// file and returns its first occurrence.
func targetSection(sections []source.Section, names []string) (source.Section, bool) {
	for _, name := range names {
		if s, ok := source.FindSection(sections, name); ok {
			return s, true
		}
	}
	return source.Section{}, false
}

// sectionAnchor returns the last non-blank line of the section whose header
// has the given ID, as it stands in doc now.
func sectionAnchor(doc *source.Document, header source.LineID) (source.Line, error) {
	sections := source.Sections(doc)
	i := slices.IndexFunc(sections, func(s source.Section) bool { return s.HeaderID == header })
	if i < 0 {
		return source.Line{}, fmt.Errorf("%w: section header %d", source.ErrUnknownLine, header)
	}
	s := sections[i]
	for ln := s.End; ln > s.Start; ln-- {
		if !source.IsBlank(doc.Text(ln - 1)) {
			return doc.Line(ln - 1), nil
		}
	}
	return doc.Line(s.Start - 1), nil
}
