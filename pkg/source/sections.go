package source

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var sectionHeader = regexp.MustCompile(`^\s*//\s*=+\s*([A-Z][A-Z0-9 ]*[A-Z0-9])\s*=+\s*//\s*$`)

// Section is a named region of a file. Start is the header line and End the
// last line before the next header, or the last line of the file. Both are
// 1-based and inclusive.
type Section struct {
	Name     string
	Start    int
	End      int
	HeaderID LineID
}

// Contains reports whether the 1-based line range [start, end] lies inside s.
func (s Section) Contains(start, end int) bool {
	return start >= s.Start && end <= s.End
}

// HeaderName returns the section name if line is a section header.
func HeaderName(line string) (string, bool) {
	m := sectionHeader.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.Join(strings.Fields(m[1]), " "), true
}

// FormatHeader renders a section header line.
func FormatHeader(name string) string {
	return fmt.Sprintf("// =================== %s =================== //", name)
}

// Sections returns the sections of d in file order. A document without
// headers has no sections.
func Sections(d *Document) []Section {
	var out []Section
	for i := 0; i < d.Len(); i++ {
		l := d.Line(i)
		name, ok := HeaderName(l.Text)
		if !ok {
			continue
		}
		if n := len(out); n > 0 {
			out[n-1].End = i
		}
		out = append(out, Section{Name: name, Start: i + 1, End: d.Len(), HeaderID: l.ID})
	}
	return out
}

// FindSection returns the first section named name.
func FindSection(sections []Section, name string) (Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// SectionAt returns the section containing the 1-based line.
func SectionAt(sections []Section, line int) (Section, bool) {
	for _, s := range sections {
		if line >= s.Start && line <= s.End {
			return s, true
		}
	}
	return Section{}, false
}

// Misplaced returns the blocks not contained in any section named in
// targets. ok is false when none of the target sections exist, in which
// case placement cannot be judged.
func Misplaced(blocks []Block, sections []Section, targets ...string) (misplaced []Block, ok bool) {
	var homes []Section
	for _, s := range sections {
		if slices.Contains(targets, s.Name) {
			homes = append(homes, s)
		}
	}
	if len(homes) == 0 {
		return nil, false
	}
	for _, b := range blocks {
		inside := false
		for _, h := range homes {
			if h.Contains(b.Start, b.End) {
				inside = true
				break
			}
		}
		if !inside {
			misplaced = append(misplaced, b)
		}
	}
	return misplaced, true
}
