// Package naming checks and repairs identifier naming conventions.
//
// A convention spec is one of:
//
//	camelCase    lower first letter, no underscores
//	SNAKE_CASE   upper case letters, digits and underscores
//	x_*          a fixed prefix followed by at least one identifier character
//
// Transform is idempotent: a name that already conforms is returned unchanged,
// and a name that cannot be repaired is returned unchanged as well.
package naming

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind identifies the family of a convention.
type Kind int

const (
	// KindNone matches every name.
	KindNone Kind = iota
	// KindCamel is camelCase.
	KindCamel
	// KindSnake is SNAKE_CASE.
	KindSnake
	// KindPrefix is a fixed prefix such as "f_".
	KindPrefix
)

var (
	camelPattern = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	snakePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

// camelStripPrefixes are removed before converting to camelCase.
var camelStripPrefixes = []string{"f_", "i_", "v_"}

const snakeStripPrefix = "c_"

// Convention is a parsed convention spec.
type Convention struct {
	kind    Kind
	prefix  string
	spec    string
	pattern *regexp.Regexp
}

// Parse parses a convention spec. Unknown specs parse to a convention that
// accepts every name; ok reports whether the convention string was recognised.
func Parse(spec string) (c Convention, ok bool) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return Convention{kind: KindNone}, true
	case spec == "camelCase":
		return Convention{kind: KindCamel, spec: spec, pattern: camelPattern}, true
	case spec == "SNAKE_CASE":
		return Convention{kind: KindSnake, spec: spec, pattern: snakePattern}, true
	case strings.HasSuffix(spec, "*") && len(spec) > 1:
		prefix := strings.TrimSuffix(spec, "*")
		return Convention{
			kind:    KindPrefix,
			prefix:  prefix,
			spec:    spec,
			pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `[A-Za-z0-9_]+$`),
		}, true
	default:
		return Convention{kind: KindNone, spec: spec}, false
	}
}

// MustParse is like Parse but ignores whether the convention string was recognised.
func MustParse(spec string) Convention {
	c, _ := Parse(spec)
	return c
}

// Kind returns the convention family.
func (c Convention) Kind() Kind { return c.kind }

// String returns the original spec.
func (c Convention) String() string { return c.spec }

// Check reports whether name already conforms.
func (c Convention) Check(name string) bool {
	if c.pattern == nil {
		return true
	}
	return c.pattern.MatchString(name)
}

// Transform returns the conforming form of name.
func (c Convention) Transform(name string) string {
	if c.Check(name) {
		return name
	}

	var candidate string
	switch c.kind {
	case KindCamel:
		candidate = toCamel(name)
	case KindSnake:
		candidate = toSnake(name)
	case KindPrefix:
		if strings.HasPrefix(name, c.prefix) {
			return name
		}
		candidate = c.prefix + name
	default:
		return name
	}

	if !c.Check(candidate) {
		return name
	}
	return candidate
}

// Check reports whether name conforms to spec.
func Check(name, spec string) bool {
	return MustParse(spec).Check(name)
}

// Transform maps name to the convention described by spec.
func Transform(name, spec string) string {
	return MustParse(spec).Transform(name)
}

func toCamel(name string) string {
	for _, p := range camelStripPrefixes {
		if strings.HasPrefix(name, p) && len(name) > len(p) {
			name = name[len(p):]
			break
		}
	}

	var b strings.Builder
	first := true
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		if isUpper(part) {
			part = strings.ToLower(part)
		}
		r := []rune(part)
		if first {
			r[0] = unicode.ToLower(r[0])
			first = false
		} else {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return b.String()
}

func toSnake(name string) string {
	if strings.HasPrefix(name, snakeStripPrefix) && len(name) > len(snakeStripPrefix) {
		name = name[len(snakeStripPrefix):]
	}
	return strings.ToUpper(name)
}

// isUpper reports whether s has letters and none of them are lower case.
func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
