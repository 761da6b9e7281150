package ast

import (
	"testing"

	"github.com/dhamidi/nixel/syntax"
)

func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	parse := ParseRoot(src)
	if len(parse.Errors()) != 0 {
		t.Fatalf("errors = %v, want none", parse.Errors())
	}
	expr := parse.Tree().Expr()
	if expr == nil {
		t.Fatalf("no expression under the root:\n%s", parse.Syntax().Dump())
	}
	return expr
}

func TestParseRootOk(t *testing.T) {
	root, err := ParseRoot("1 + 2").Ok()
	if err != nil {
		t.Fatalf("Ok() error = %v", err)
	}
	if root == nil || root.Expr() == nil {
		t.Fatalf("Ok() returned an empty tree")
	}

	if _, err := ParseRoot("{ a = ").Ok(); err == nil {
		t.Errorf("Ok() on malformed input returned no error")
	}
}

func TestBinOpAccessors(t *testing.T) {
	binop, ok := parseExpr(t, "1 + 2 * 3").(*BinOp)
	if !ok {
		t.Fatalf("not a BinOp")
	}
	if binop.Operator() != BinOpAdd {
		t.Errorf("Operator = %v, want %v", binop.Operator(), BinOpAdd)
	}
	lhs, ok := binop.Lhs().(*Literal)
	if !ok {
		t.Fatalf("Lhs is not a Literal")
	}
	if v, ok := lhs.Int(); !ok || v != 1 {
		t.Errorf("Lhs Int() = %d, %v, want 1", v, ok)
	}
	rhs, ok := binop.Rhs().(*BinOp)
	if !ok {
		t.Fatalf("Rhs is not a BinOp")
	}
	if rhs.Operator() != BinOpMul {
		t.Errorf("Rhs Operator = %v, want %v", rhs.Operator(), BinOpMul)
	}
}

func TestUnaryOpAccessors(t *testing.T) {
	unary, ok := parseExpr(t, "-a").(*UnaryOp)
	if !ok {
		t.Fatalf("not a UnaryOp")
	}
	if unary.Operator() != UnaryOpNegate {
		t.Errorf("Operator = %v, want %v", unary.Operator(), UnaryOpNegate)
	}
	if id, ok := unary.Expr().(*Ident); !ok || id.Name() != "a" {
		t.Errorf("Expr = %v, want the identifier a", unary.Expr())
	}
}

func TestLiteralValues(t *testing.T) {
	lit := parseExpr(t, "3.25").(*Literal)
	if v, ok := lit.Float(); !ok || v != 3.25 {
		t.Errorf("Float() = %v, %v, want 3.25", v, ok)
	}
	if _, ok := lit.Int(); ok {
		t.Errorf("Int() on a float reported ok")
	}

	lit = parseExpr(t, "https://example.com").(*Literal)
	if uri, ok := lit.URI(); !ok || uri != "https://example.com" {
		t.Errorf("URI() = %q, %v", uri, ok)
	}
}

func TestSelectAccessors(t *testing.T) {
	sel, ok := parseExpr(t, "a.b.c or d").(*Select)
	if !ok {
		t.Fatalf("not a Select")
	}
	if id, ok := sel.Expr().(*Ident); !ok || id.Name() != "a" {
		t.Errorf("Expr = %v, want the identifier a", sel.Expr())
	}
	attrs := sel.AttrPath().Attrs()
	if len(attrs) != 2 {
		t.Fatalf("attrs = %d, want 2", len(attrs))
	}
	if id, ok := attrs[0].(*Ident); !ok || id.Name() != "b" {
		t.Errorf("first attr = %v, want b", attrs[0])
	}
	def, ok := sel.Default().(*Ident)
	if !ok || def.Name() != "d" {
		t.Errorf("Default = %v, want the identifier d", sel.Default())
	}
}

func TestHasAttrAccessors(t *testing.T) {
	has, ok := parseExpr(t, "cfg ? services.nginx").(*HasAttr)
	if !ok {
		t.Fatalf("not a HasAttr")
	}
	if id, ok := has.Expr().(*Ident); !ok || id.Name() != "cfg" {
		t.Errorf("Expr = %v, want cfg", has.Expr())
	}
	if got := len(has.AttrPath().Attrs()); got != 2 {
		t.Errorf("attrs = %d, want 2", got)
	}
}

func TestApplyChain(t *testing.T) {
	apply, ok := parseExpr(t, "f x y").(*Apply)
	if !ok {
		t.Fatalf("not an Apply")
	}
	inner, ok := apply.Fn().(*Apply)
	if !ok {
		t.Fatalf("Fn is not an Apply")
	}
	if id, ok := inner.Fn().(*Ident); !ok || id.Name() != "f" {
		t.Errorf("innermost Fn = %v, want f", inner.Fn())
	}
	if id, ok := apply.Arg().(*Ident); !ok || id.Name() != "y" {
		t.Errorf("Arg = %v, want y", apply.Arg())
	}
}

func TestAttrSetAccessors(t *testing.T) {
	set, ok := parseExpr(t, `rec { a.b = 1; inherit (x) c d; }`).(*AttrSet)
	if !ok {
		t.Fatalf("not an AttrSet")
	}
	if !set.Rec() {
		t.Errorf("Rec() = false, want true")
	}
	entries := set.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if got := len(entries[0].Key().Attrs()); got != 2 {
		t.Errorf("key attrs = %d, want 2", got)
	}
	if lit, ok := entries[0].Value().(*Literal); !ok {
		t.Errorf("value = %v, want a Literal", entries[0].Value())
	} else if v, ok := lit.Int(); !ok || v != 1 {
		t.Errorf("value Int() = %d, %v, want 1", v, ok)
	}

	ins := set.Inherits()
	if len(ins) != 1 {
		t.Fatalf("inherits = %d, want 1", len(ins))
	}
	if id, ok := ins[0].From().(*Ident); !ok || id.Name() != "x" {
		t.Errorf("From = %v, want x", ins[0].From())
	}
	idents := ins[0].Idents()
	if len(idents) != 2 || idents[0].Name() != "c" || idents[1].Name() != "d" {
		t.Errorf("Idents = %v, want c and d", idents)
	}
}

func TestLetInAccessors(t *testing.T) {
	let, ok := parseExpr(t, "let x = 1; inherit y; in x").(*LetIn)
	if !ok {
		t.Fatalf("not a LetIn")
	}
	if got := len(let.Entries()); got != 1 {
		t.Errorf("entries = %d, want 1", got)
	}
	if got := len(let.Inherits()); got != 1 {
		t.Errorf("inherits = %d, want 1", got)
	}
	if id, ok := let.Body().(*Ident); !ok || id.Name() != "x" {
		t.Errorf("Body = %v, want x", let.Body())
	}
}

func TestIfElseAccessors(t *testing.T) {
	ife, ok := parseExpr(t, "if a then b else c").(*IfElse)
	if !ok {
		t.Fatalf("not an IfElse")
	}
	if id, ok := ife.Condition().(*Ident); !ok || id.Name() != "a" {
		t.Errorf("Condition = %v, want a", ife.Condition())
	}
	if id, ok := ife.Then().(*Ident); !ok || id.Name() != "b" {
		t.Errorf("Then = %v, want b", ife.Then())
	}
	if id, ok := ife.Else().(*Ident); !ok || id.Name() != "c" {
		t.Errorf("Else = %v, want c", ife.Else())
	}
}

func TestLambdaIdentParam(t *testing.T) {
	lambda, ok := parseExpr(t, "x: x").(*Lambda)
	if !ok {
		t.Fatalf("not a Lambda")
	}
	param, ok := lambda.Param().(*IdentParam)
	if !ok {
		t.Fatalf("Param = %v, want an IdentParam", lambda.Param())
	}
	if param.Ident().Name() != "x" {
		t.Errorf("param name = %q, want %q", param.Ident().Name(), "x")
	}
	if id, ok := lambda.Body().(*Ident); !ok || id.Name() != "x" {
		t.Errorf("Body = %v, want x", lambda.Body())
	}
}

func TestLambdaPattern(t *testing.T) {
	lambda, ok := parseExpr(t, "{ a, b ? 2, ... }@args: a").(*Lambda)
	if !ok {
		t.Fatalf("not a Lambda")
	}
	pat, ok := lambda.Param().(*Pattern)
	if !ok {
		t.Fatalf("Param = %v, want a Pattern", lambda.Param())
	}
	entries := pat.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Name().Name() != "a" {
		t.Errorf("first entry = %q, want a", entries[0].Name().Name())
	}
	if entries[0].Default() != nil {
		t.Errorf("first entry has a default, want none")
	}
	if lit, ok := entries[1].Default().(*Literal); !ok {
		t.Errorf("second default = %v, want a Literal", entries[1].Default())
	} else if v, ok := lit.Int(); !ok || v != 2 {
		t.Errorf("second default = %d, %v, want 2", v, ok)
	}
	if !pat.HasEllipsis() {
		t.Errorf("HasEllipsis() = false, want true")
	}
	if bind := pat.Bind(); bind == nil || bind.Name() != "args" {
		t.Errorf("Bind = %v, want args", pat.Bind())
	}
}

func TestWithAndAssert(t *testing.T) {
	with, ok := parseExpr(t, "with pkgs; hello").(*With)
	if !ok {
		t.Fatalf("not a With")
	}
	if id, ok := with.Namespace().(*Ident); !ok || id.Name() != "pkgs" {
		t.Errorf("Namespace = %v, want pkgs", with.Namespace())
	}
	if id, ok := with.Body().(*Ident); !ok || id.Name() != "hello" {
		t.Errorf("Body = %v, want hello", with.Body())
	}

	assert, ok := parseExpr(t, "assert ok; value").(*Assert)
	if !ok {
		t.Fatalf("not an Assert")
	}
	if id, ok := assert.Condition().(*Ident); !ok || id.Name() != "ok" {
		t.Errorf("Condition = %v, want ok", assert.Condition())
	}
}

func TestListItems(t *testing.T) {
	list, ok := parseExpr(t, "[ 1 a.b ./c ]").(*List)
	if !ok {
		t.Fatalf("not a List")
	}
	items := list.Items()
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if _, ok := items[0].(*Literal); !ok {
		t.Errorf("items[0] = %T, want *Literal", items[0])
	}
	if _, ok := items[1].(*Select); !ok {
		t.Errorf("items[1] = %T, want *Select", items[1])
	}
	if _, ok := items[2].(*Path); !ok {
		t.Errorf("items[2] = %T, want *Path", items[2])
	}
}

func TestStrParts(t *testing.T) {
	str, ok := parseExpr(t, `"pre ${x} post"`).(*Str)
	if !ok {
		t.Fatalf("not a Str")
	}
	if str.IsIndented() {
		t.Errorf("IsIndented() = true, want false")
	}
	parts := str.Parts()
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(parts))
	}
	if text, ok := parts[0].(TextPart); !ok || text.Text != "pre " {
		t.Errorf("parts[0] = %#v, want %q", parts[0], "pre ")
	}
	mid, ok := parts[1].(InterpolPart)
	if !ok {
		t.Fatalf("parts[1] = %#v, want a splice", parts[1])
	}
	if id, ok := mid.Interpol.Expr().(*Ident); !ok || id.Name() != "x" {
		t.Errorf("splice Expr = %v, want x", mid.Interpol.Expr())
	}
	if text, ok := parts[2].(TextPart); !ok || text.Text != " post" {
		t.Errorf("parts[2] = %#v, want %q", parts[2], " post")
	}
}

func TestStrEscapes(t *testing.T) {
	str := parseExpr(t, `"a\nb\t\${x}\""`).(*Str)
	value, ok := str.Value()
	if !ok {
		t.Fatalf("Value() reported interpolation")
	}
	want := "a\nb\t${x}\""
	if value != want {
		t.Errorf("Value() = %q, want %q", value, want)
	}
}

func TestIndentedStrDedent(t *testing.T) {
	str := parseExpr(t, "''\n  foo\n    bar\n  baz\n''").(*Str)
	if !str.IsIndented() {
		t.Errorf("IsIndented() = false, want true")
	}
	value, ok := str.Value()
	if !ok {
		t.Fatalf("Value() reported interpolation")
	}
	want := "foo\n  bar\nbaz\n"
	if value != want {
		t.Errorf("Value() = %q, want %q", value, want)
	}
}

func TestIndentedStrEscapes(t *testing.T) {
	str := parseExpr(t, "''a''${x}'''b''").(*Str)
	value, ok := str.Value()
	if !ok {
		t.Fatalf("Value() reported interpolation")
	}
	want := "a${x}''b"
	if value != want {
		t.Errorf("Value() = %q, want %q", value, want)
	}
}

func TestIndentedStrSpliceIndent(t *testing.T) {
	str := parseExpr(t, "''\n  line\n  ${x}\n''").(*Str)
	parts := str.Parts()
	var hasSplice bool
	var text string
	for _, p := range parts {
		switch p := p.(type) {
		case TextPart:
			text += p.Text
		case InterpolPart:
			hasSplice = true
			text += "@"
		}
	}
	if !hasSplice {
		t.Fatalf("no splice in parts")
	}
	if text != "line\n@\n" {
		t.Errorf("joined parts = %q, want %q", text, "line\n@\n")
	}
}

func TestPathParts(t *testing.T) {
	path, ok := parseExpr(t, "./f/${x}/g").(*Path)
	if !ok {
		t.Fatalf("not a Path")
	}
	parts := path.Parts()
	if len(parts) != 3 {
		t.Fatalf("parts = %d, want 3", len(parts))
	}
	if text, ok := parts[0].(TextPart); !ok || text.Text != "./f/" {
		t.Errorf("parts[0] = %#v, want %q", parts[0], "./f/")
	}
	if _, ok := parts[1].(InterpolPart); !ok {
		t.Errorf("parts[1] = %#v, want a splice", parts[1])
	}
}

func TestDynamicKey(t *testing.T) {
	set := parseExpr(t, `{ ${key} = 1; }`).(*AttrSet)
	attrs := set.Entries()[0].Key().Attrs()
	if len(attrs) != 1 {
		t.Fatalf("attrs = %d, want 1", len(attrs))
	}
	dyn, ok := attrs[0].(*Dynamic)
	if !ok {
		t.Fatalf("attr = %T, want *Dynamic", attrs[0])
	}
	if id, ok := dyn.Expr().(*Ident); !ok || id.Name() != "key" {
		t.Errorf("Expr = %v, want key", dyn.Expr())
	}
}

func TestCastExprClosed(t *testing.T) {
	// Every expression kind must be covered by CastExpr.
	inputs := []string{
		"x", "1", `"s"`, "./p", "[ ]", "{ }", "a.b", "a ? b", "f x",
		"x: x", "let x = 1; in x", "let { body = 1; }", "with a; b",
		"assert a; b", "if a then b else c", "1 + 2", "-1", "(x)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			parse := ParseRoot(input)
			root := parse.Tree()
			if root.Expr() == nil {
				t.Errorf("CastExpr returned nil:\n%s", parse.Syntax().Dump())
			}
		})
	}
}

func TestCastRejectsWrongKind(t *testing.T) {
	parse := ParseRoot("{ }")
	node := parse.Tree().Expr().Syntax()
	if node.Kind() != syntax.NodeAttrSet {
		t.Fatalf("Kind = %v, want %v", node.Kind(), syntax.NodeAttrSet)
	}
	if CastList(node) != nil {
		t.Errorf("CastList accepted an attrset node")
	}
	if CastAttrSet(node) == nil {
		t.Errorf("CastAttrSet rejected an attrset node")
	}
}
