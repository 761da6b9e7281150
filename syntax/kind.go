package syntax

import "fmt"

// SyntaxKind tags every token and node in the tree. Token kinds come
// first, node kinds after them, and the set is contiguous starting at
// zero so kinds can be stored as raw integers and recovered with
// KindFromRaw.
type SyntaxKind uint16

const (
	TokenEOF SyntaxKind = iota
	TokenError
	TokenWhitespace
	TokenComment

	// Literals and names
	TokenIdent
	TokenInteger
	TokenFloat
	TokenPath
	TokenURI

	// Keywords
	TokenAssert
	TokenElse
	TokenIf
	TokenIn
	TokenInherit
	TokenLet
	TokenOr
	TokenRec
	TokenThen
	TokenWith

	// Punctuation
	TokenCurlyOpen
	TokenCurlyClose
	TokenSquareOpen
	TokenSquareClose
	TokenParenOpen
	TokenParenClose
	TokenAssign
	TokenAt
	TokenColon
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenQuestion

	// Operators
	TokenConcat
	TokenUpdate
	TokenAdd
	TokenSub
	TokenMul
	TokenDiv
	TokenImplication
	TokenLess
	TokenLessOrEq
	TokenMore
	TokenMoreOrEq
	TokenEqual
	TokenNotEqual
	TokenAndAnd
	TokenOrOr
	TokenInvert

	// String pieces
	TokenStringStart
	TokenStringContent
	TokenStringEnd
	TokenInterpolStart
	TokenInterpolEnd

	// Nodes
	NodeRoot
	NodeIdent
	NodeLiteral
	NodeString
	NodeInterpol
	NodePath
	NodeList
	NodeAttrSet
	NodeKeyValue
	NodeAttrPath
	NodeDynamic
	NodeInherit
	NodeInheritFrom
	NodeSelect
	NodeApply
	NodeLambda
	NodeIdentParam
	NodePattern
	NodePatEntry
	NodePatBind
	NodeLetIn
	NodeLegacyLet
	NodeWith
	NodeAssert
	NodeIfElse
	NodeBinOp
	NodeUnaryOp
	NodeHasAttr
	NodeParen
	NodeError

	kindLast
)

// KindFromRaw converts a stored numeric tag back into a SyntaxKind.
// An out-of-range tag means the tree it came from is corrupted; that is
// a programming error, not a parse error, so it panics.
func KindFromRaw(raw uint16) SyntaxKind {
	if raw >= uint16(kindLast) {
		panic(fmt.Sprintf("syntax: raw kind %d out of range (max %d)", raw, uint16(kindLast)-1))
	}
	return SyntaxKind(raw)
}

// Raw returns the numeric tag of the kind.
func (k SyntaxKind) Raw() uint16 { return uint16(k) }

// IsToken reports whether the kind tags a token.
func (k SyntaxKind) IsToken() bool { return k < NodeRoot }

// IsNode reports whether the kind tags a tree node.
func (k SyntaxKind) IsNode() bool { return k >= NodeRoot && k < kindLast }

// IsTrivia reports whether the kind is whitespace or a comment. Trivia
// is kept in the tree for round-trip fidelity but skipped by most
// consumers.
func (k SyntaxKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment
}

var kindNames = map[SyntaxKind]string{
	TokenEOF:        "EOF",
	TokenError:      "TokenError",
	TokenWhitespace: "Whitespace",
	TokenComment:    "Comment",

	TokenIdent:   "Ident",
	TokenInteger: "Integer",
	TokenFloat:   "Float",
	TokenPath:    "Path",
	TokenURI:     "URI",

	TokenAssert:  "assert",
	TokenElse:    "else",
	TokenIf:      "if",
	TokenIn:      "in",
	TokenInherit: "inherit",
	TokenLet:     "let",
	TokenOr:      "or",
	TokenRec:     "rec",
	TokenThen:    "then",
	TokenWith:    "with",

	TokenCurlyOpen:   "{",
	TokenCurlyClose:  "}",
	TokenSquareOpen:  "[",
	TokenSquareClose: "]",
	TokenParenOpen:   "(",
	TokenParenClose:  ")",
	TokenAssign:      "=",
	TokenAt:          "@",
	TokenColon:       ":",
	TokenSemicolon:   ";",
	TokenComma:       ",",
	TokenDot:         ".",
	TokenEllipsis:    "...",
	TokenQuestion:    "?",

	TokenConcat:      "++",
	TokenUpdate:      "//",
	TokenAdd:         "+",
	TokenSub:         "-",
	TokenMul:         "*",
	TokenDiv:         "/",
	TokenImplication: "->",
	TokenLess:        "<",
	TokenLessOrEq:    "<=",
	TokenMore:        ">",
	TokenMoreOrEq:    ">=",
	TokenEqual:       "==",
	TokenNotEqual:    "!=",
	TokenAndAnd:      "&&",
	TokenOrOr:        "||",
	TokenInvert:      "!",

	TokenStringStart:   "StringStart",
	TokenStringContent: "StringContent",
	TokenStringEnd:     "StringEnd",
	TokenInterpolStart: "InterpolStart",
	TokenInterpolEnd:   "InterpolEnd",

	NodeRoot:        "Root",
	NodeIdent:       "IdentNode",
	NodeLiteral:     "Literal",
	NodeString:      "String",
	NodeInterpol:    "Interpol",
	NodePath:        "PathNode",
	NodeList:        "List",
	NodeAttrSet:     "AttrSet",
	NodeKeyValue:    "KeyValue",
	NodeAttrPath:    "AttrPath",
	NodeDynamic:     "Dynamic",
	NodeInherit:     "Inherit",
	NodeInheritFrom: "InheritFrom",
	NodeSelect:      "Select",
	NodeApply:       "Apply",
	NodeLambda:      "Lambda",
	NodeIdentParam:  "IdentParam",
	NodePattern:     "Pattern",
	NodePatEntry:    "PatEntry",
	NodePatBind:     "PatBind",
	NodeLetIn:       "LetIn",
	NodeLegacyLet:   "LegacyLet",
	NodeWith:        "With",
	NodeAssert:      "Assert",
	NodeIfElse:      "IfElse",
	NodeBinOp:       "BinOp",
	NodeUnaryOp:     "UnaryOp",
	NodeHasAttr:     "HasAttr",
	NodeParen:       "Paren",
	NodeError:       "Error",
}

func (k SyntaxKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
