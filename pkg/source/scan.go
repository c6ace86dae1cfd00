package source

import (
	"log/slog"
	"regexp"
	"strconv"
)

// Category classifies a declaration.
type Category int

// Declaration categories.
const (
	CategoryFunction Category = iota
	CategoryInput
	CategoryVariable
	CategoryImport
	CategoryConst
)

// String returns the lower-case category name.
func (c Category) String() string {
	switch c {
	case CategoryFunction:
		return "function"
	case CategoryInput:
		return "input"
	case CategoryVariable:
		return "variable"
	case CategoryImport:
		return "import"
	case CategoryConst:
		return "constant"
	default:
		return "unknown"
	}
}

const typeExpr = `[A-Za-z_][\w.]*(?:<[^<>=]*>)?(?:\[\])?`

var (
	versionPattern  = regexp.MustCompile(`^\s*//\s*@version\s*=\s*(\d+)`)
	importPattern   = regexp.MustCompile(`^import\s+(\S+)`)
	constPattern    = regexp.MustCompile(`^const\s+(?:` + typeExpr + `\s+)?([A-Za-z_]\w*)\s*=(?:[^=]|$)`)
	variablePattern = regexp.MustCompile(`^(?:var|varip)\s+(?:` + typeExpr + `\s+)?([A-Za-z_]\w*)\s*=(?:[^=]|$)`)
	functionPattern = regexp.MustCompile(`^(?:export\s+)?(?:method\s+)?([A-Za-z_]\w*)\s*\(.*\)\s*=>`)
	inputPattern    = regexp.MustCompile(`^(?:(?:simple|series|const)\s+)?(?:` + typeExpr + `\s+)?([A-Za-z_]\w*)\s*=\s*input(?:\.\w+)?\s*\(`)

	indentedVariablePattern = regexp.MustCompile(`^[ \t]+(?:var|varip)\s+(?:` + typeExpr + `\s+)?([A-Za-z_]\w*)\s*=(?:[^=]|$)`)
)

var keywords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "switch": true,
	"var": true, "varip": true, "import": true, "export": true, "method": true,
}

// Block is the full line span of one top-level declaration.
type Block struct {
	Category Category
	Name     string
	Start    int // 1-based, inclusive
	End      int // 1-based, inclusive
	IDs      []LineID

	// Ambiguous is set when the block ended at a blank line but indented
	// lines follow it, so the real extent of the declaration is unknown.
	Ambiguous bool
}

// Pragma is a version declaration line.
type Pragma struct {
	Line    int
	ID      LineID
	Version int

	// BeforeCode is true when no code line precedes the pragma.
	BeforeCode bool
}

// IndentedVariable is an indented var declaration that is not nested in a body.
type IndentedVariable struct {
	Line int
	ID   LineID
	Name string
}

// Continuation is a line ending with an operator whose next line is not indented.
type Continuation struct {
	Line   int
	NextID LineID
}

// Facts are the declaration facts of a document.
type Facts struct {
	Pragma            *Pragma
	FirstCodeLine     int
	Blocks            []Block
	IndentedVariables []IndentedVariable
	Continuations     []Continuation
}

// ByCategory returns the blocks of one category in file order.
func (f *Facts) ByCategory(c Category) []Block {
	var out []Block
	for _, b := range f.Blocks {
		if b.Category == c {
			out = append(out, b)
		}
	}
	return out
}

// Declared reports whether any block declares name.
func (f *Facts) Declared(name string) bool {
	for _, b := range f.Blocks {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Scanner derives Facts from a Document.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a scanner. A nil logger discards output.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{logger: logger}
}

// Scan derives Facts with a discarding logger.
func Scan(d *Document) *Facts {
	return NewScanner(nil).Scan(d)
}

// Scan derives Facts from d.
func (s *Scanner) Scan(d *Document) *Facts {
	f := &Facts{}
	s.scanPragma(d, f)
	s.scanBlocks(d, f)
	s.scanIndentedVariables(d, f)
	s.scanContinuations(d, f)
	return f
}

func (s *Scanner) scanPragma(d *Document, f *Facts) {
	for i := 0; i < d.Len(); i++ {
		l := d.Line(i)
		if m := versionPattern.FindStringSubmatch(l.Text); m != nil && f.Pragma == nil {
			v, _ := strconv.Atoi(m[1])
			f.Pragma = &Pragma{Line: i + 1, ID: l.ID, Version: v, BeforeCode: f.FirstCodeLine == 0}
		}
		if f.FirstCodeLine == 0 && IsCode(l.Text) {
			f.FirstCodeLine = i + 1
		}
	}
}

func classify(text string) (Category, string, bool) {
	if m := importPattern.FindStringSubmatch(text); m != nil {
		return CategoryImport, m[1], true
	}
	if m := constPattern.FindStringSubmatch(text); m != nil {
		return CategoryConst, m[1], true
	}
	if m := variablePattern.FindStringSubmatch(text); m != nil {
		return CategoryVariable, m[1], true
	}
	if m := functionPattern.FindStringSubmatch(text); m != nil && !keywords[m[1]] {
		return CategoryFunction, m[1], true
	}
	if m := inputPattern.FindStringSubmatch(text); m != nil && !keywords[m[1]] {
		return CategoryInput, m[1], true
	}
	return 0, "", false
}

func (s *Scanner) scanBlocks(d *Document, f *Facts) {
	owner := make(map[LineID]Category)
	n := d.Len()
	for i := 0; i < n; i++ {
		text := d.Text(i)
		if Indent(text) != 0 || !IsCode(text) {
			continue
		}
		cat, name, ok := classify(text)
		if !ok {
			continue
		}

		end := i
		for j := i + 1; j < n; j++ {
			next := d.Text(j)
			if IsBlank(next) || Indent(next) == 0 {
				break
			}
			if _, header := HeaderName(next); header {
				break
			}
			end = j
		}

		b := Block{Category: cat, Name: name, Start: i + 1, End: end + 1}
		for k := i; k <= end; k++ {
			id := d.Line(k).ID
			if prev, taken := owner[id]; taken && prev != cat {
				s.logger.Warn("declaration blocks overlap",
					slog.Int("line", k+1),
					slog.String("first", prev.String()),
					slog.String("second", cat.String()))
			}
			owner[id] = cat
			b.IDs = append(b.IDs, id)
		}
		b.Ambiguous = continuesAfterBlank(d, end)
		f.Blocks = append(f.Blocks, b)
		i = end
	}
}

// continuesAfterBlank reports whether the lines after index end are a blank
// run followed by an indented line.
func continuesAfterBlank(d *Document, end int) bool {
	k := end + 1
	for k < d.Len() && IsBlank(d.Text(k)) {
		k++
	}
	if k == end+1 || k >= d.Len() {
		return false
	}
	text := d.Text(k)
	if _, header := HeaderName(text); header {
		return false
	}
	return Indent(text) > 0
}

func (s *Scanner) scanIndentedVariables(d *Document, f *Facts) {
	prev := ""
	hasPrev := false
	prevFlagged := false
	for i := 0; i < d.Len(); i++ {
		l := d.Line(i)
		if !IsCode(l.Text) {
			continue
		}
		flagged := false
		if m := indentedVariablePattern.FindStringSubmatch(l.Text); m != nil {
			flagged = !hasPrev || prevFlagged || (Indent(prev) == 0 && !OpensBlock(prev))
			if flagged {
				f.IndentedVariables = append(f.IndentedVariables, IndentedVariable{Line: i + 1, ID: l.ID, Name: m[1]})
			}
		}
		prev, hasPrev, prevFlagged = l.Text, true, flagged
	}
}

func (s *Scanner) scanContinuations(d *Document, f *Facts) {
	for i := 0; i+1 < d.Len(); i++ {
		text := d.Text(i)
		if !IsCode(text) || !EndsWithOperator(text) {
			continue
		}
		next := d.Line(i + 1)
		if !IsCode(next.Text) || Indent(next.Text) > 0 {
			continue
		}
		f.Continuations = append(f.Continuations, Continuation{Line: i + 1, NextID: next.ID})
	}
}
