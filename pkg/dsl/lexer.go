package dsl

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/commute/pkg/errors"
)

type tokenKind int

const (
	tokLabel tokenKind = iota
	tokEquals
)

type token struct {
	kind   tokenKind
	text   string // label content without the outer braces
	offset int    // rune offset of '{' or '='
}

// lexer splits a single line into brace-delimited labels and, when enabled,
// '=' separators. Braces inside a label are depth-counted so labels may hold
// LaTeX markup. A '%' outside any label starts a comment.
type lexer struct {
	line   int
	equals bool        // whether '=' is a token
	stray  errors.Code // code reported for characters outside labels
}

func (lx lexer) errorf(code errors.Code, offset int, format string, args ...any) error {
	return errors.At(errors.New(code, format, args...), lx.line, offset)
}

// lex tokenizes runes, reporting offsets relative to base.
func (lx lexer) lex(runes []rune, base int) ([]token, error) {
	var toks []token
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '%':
			return toks, nil
		case unicode.IsSpace(r):
		case r == '{':
			end, err := lx.closing(runes, i, base)
			if err != nil {
				return nil, err
			}
			text := strings.TrimSpace(string(runes[i+1 : end]))
			if text == "" {
				return nil, lx.errorf(errors.ErrCodeInvalidLabel, base+i, "empty label")
			}
			text = norm.NFC.String(text)
			if err := errors.ValidateLabel(text); err != nil {
				return nil, errors.At(err, lx.line, base+i)
			}
			toks = append(toks, token{kind: tokLabel, text: text, offset: base + i})
			i = end
		case r == '}':
			return nil, lx.errorf(errors.ErrCodeInvalidLabel, base+i, "unbalanced '}'")
		case r == '=' && lx.equals:
			toks = append(toks, token{kind: tokEquals, offset: base + i})
		default:
			return nil, lx.errorf(lx.stray, base+i, "unexpected character %q", r)
		}
	}
	return toks, nil
}

// closing returns the index of the '}' matching the '{' at open.
func (lx lexer) closing(runes []rune, open, base int) (int, error) {
	depth := 0
	for j := open; j < len(runes); j++ {
		switch runes[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, lx.errorf(errors.ErrCodeInvalidLabel, base+open, "unterminated label")
}

// splitLines splits text into lines, accepting "\n" and "\r\n".
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
