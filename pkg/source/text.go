package source

import (
	"regexp"
	"strings"
)

var (
	trailingOperator = regexp.MustCompile(`(?:[-+*/<>?:]|==|!=|<=|>=|\band|\bor)$`)
	openerKeyword    = regexp.MustCompile(`^(?:if|else|for|while|switch)\b|=\s*(?:if|switch|for|while)\b`)
)

// Indent returns the number of leading space and tab characters.
func Indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether the line is a comment-only line.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// IsCode reports whether the line carries code.
func IsCode(line string) bool {
	return !IsBlank(line) && !IsComment(line)
}

// CodePart returns the line with any trailing comment removed and trailing
// whitespace trimmed. Comment markers inside string literals are kept.
func CodePart(line string) string {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return strings.TrimRight(line, " \t")
}

// EndsWithOperator reports whether the code on the line ends with a binary
// or ternary operator, so the expression continues on the next line.
// A trailing "=>" opens a body and is not an operator.
func EndsWithOperator(line string) bool {
	code := CodePart(line)
	if code == "" || strings.HasSuffix(code, "=>") {
		return false
	}
	return trailingOperator.MatchString(code)
}

// OpensBlock reports whether the line is followed by an indented body or
// continuation.
func OpensBlock(line string) bool {
	code := strings.TrimSpace(CodePart(line))
	if code == "" {
		return false
	}
	return strings.HasSuffix(code, "=>") || openerKeyword.MatchString(code) || EndsWithOperator(code)
}
