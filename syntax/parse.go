package syntax

import "fmt"

// ParseError is a recoverable syntax error: a message plus the byte
// range it refers to. Parsing never stops at an error; all errors are
// collected in the order they were encountered.
type ParseError struct {
	Msg  string
	From int
	To   int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("error at %d..%d: %s", e.From, e.To, e.Msg)
}

// ParseText parses Nix source text into a green tree rooted at
// NodeRoot. It is total: every input, malformed or not, produces a
// tree whose tokens concatenate back to the input exactly, plus the
// list of errors encountered.
func ParseText(src string) (*GreenNode, []ParseError) {
	p := &parser{b: NewBuilder(), srcLen: len(src)}
	offset := 0
	for _, tok := range Tokenize(src) {
		if tok.Kind == TokenEOF {
			break
		}
		p.tokens = append(p.tokens, tok)
		p.starts = append(p.starts, offset)
		offset += len(tok.Text)
	}
	p.parseRoot()
	return p.b.Finish(), p.errors
}
