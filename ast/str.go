package ast

import (
	"strings"

	"github.com/dhamidi/nixel/syntax"
)

// StrPart is one piece of a string or path: literal text or an
// interpolation splice.
type StrPart interface{ strPart() }

// TextPart is a literal fragment with escapes decoded and, for
// indented strings, common indentation removed.
type TextPart struct{ Text string }

func (TextPart) strPart() {}

// InterpolPart is a ${...} splice.
type InterpolPart struct{ Interpol *Interpol }

func (InterpolPart) strPart() {}

// Str is a string literal, double-quoted or indented.
type Str struct{ node *syntax.Node }

func CastStr(n *syntax.Node) *Str {
	if n != nil && n.Kind() == syntax.NodeString {
		return &Str{node: n}
	}
	return nil
}

func (s *Str) Syntax() *syntax.Node { return s.node }
func (s *Str) exprNode()            {}
func (s *Str) attrName()            {}

// IsIndented reports whether the string uses the '' delimiter.
func (s *Str) IsIndented() bool {
	if start := s.node.FirstChildOfKind(syntax.TokenStringStart); start != nil {
		return start.Text() == "''"
	}
	return false
}

// Parts returns the string's content with escapes decoded. Indented
// strings additionally have their common indentation stripped and a
// whitespace-only first line removed.
func (s *Str) Parts() []StrPart {
	var parts []StrPart
	indented := s.IsIndented()
	for _, c := range s.node.Children() {
		switch c.Kind() {
		case syntax.TokenStringContent:
			text := c.Text()
			if indented {
				text = unescapeIndented(text)
			} else {
				text = unescapeDouble(text)
			}
			parts = append(parts, TextPart{Text: text})
		case syntax.NodeInterpol:
			parts = append(parts, InterpolPart{Interpol: &Interpol{node: c}})
		}
	}
	if indented {
		parts = removeCommonIndent(parts)
	}
	return parts
}

// Value returns the decoded content of a string without splices. The
// second result is false when the string contains interpolation.
func (s *Str) Value() (string, bool) {
	var sb strings.Builder
	for _, p := range s.Parts() {
		t, ok := p.(TextPart)
		if !ok {
			return "", false
		}
		sb.WriteString(t.Text)
	}
	return sb.String(), true
}

func unescapeDouble(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func unescapeIndented(s string) string {
	if !strings.Contains(s, "''") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if !strings.HasPrefix(s[i:], "''") {
			sb.WriteByte(s[i])
			i++
			continue
		}
		switch {
		case strings.HasPrefix(s[i:], "'''"):
			sb.WriteString("''")
			i += 3
		case strings.HasPrefix(s[i:], "''$"):
			sb.WriteByte('$')
			i += 3
		case strings.HasPrefix(s[i:], "''\\") && i+3 < len(s):
			switch s[i+3] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(s[i+3])
			}
			i += 4
		default:
			sb.WriteString("''")
			i += 2
		}
	}
	return sb.String()
}

// removeCommonIndent strips the smallest indentation shared by all
// lines that carry content. Whitespace-only lines do not constrain the
// minimum; a splice at the start of a line does.
func removeCommonIndent(parts []StrPart) []StrPart {
	min := -1
	atStart := true
	indent := 0
	for _, p := range parts {
		switch p := p.(type) {
		case InterpolPart:
			if atStart && (min < 0 || indent < min) {
				min = indent
			}
			atStart = false
		case TextPart:
			for _, ch := range p.Text {
				switch {
				case ch == '\n':
					atStart = true
					indent = 0
				case atStart && (ch == ' ' || ch == '\t'):
					indent++
				case atStart:
					if min < 0 || indent < min {
						min = indent
					}
					atStart = false
				}
			}
		}
	}
	if min <= 0 {
		min = 0
	}

	out := make([]StrPart, 0, len(parts))
	skip := 0 // indentation chars still to drop on the current line
	first := true
	for _, p := range parts {
		switch p := p.(type) {
		case InterpolPart:
			first = false
			skip = 0
			out = append(out, p)
		case TextPart:
			text := p.Text
			if first {
				// A whitespace-only first line right after the opening
				// quote is dropped entirely.
				trimmed := strings.TrimLeft(text, " \t")
				if strings.HasPrefix(trimmed, "\n") {
					text = trimmed[1:]
					skip = min
				}
				first = false
			}
			var sb strings.Builder
			sb.Grow(len(text))
			for _, ch := range text {
				switch {
				case ch == '\n':
					sb.WriteRune(ch)
					skip = min
				case skip > 0 && (ch == ' ' || ch == '\t'):
					skip--
				default:
					skip = 0
					sb.WriteRune(ch)
				}
			}
			out = append(out, TextPart{Text: sb.String()})
		}
	}
	return out
}
