package pattern

import (
	"reflect"
	"testing"

	"nilexer/ast"
)

func TestParseSingle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Expr
	}{
		{"single char", "a", ast.Single{Ch: 'a'}},
		{"escaped special", `\|`, ast.Single{Ch: '|'}},
		{"escaped newline", `\n`, ast.Single{Ch: '\n'}},
		{"seq", "ab", ast.Seq{Exprs: []ast.Expr{ast.Single{Ch: 'a'}, ast.Single{Ch: 'b'}}}},
		{"alt", "a|b", ast.Or{Variants: []ast.Expr{ast.Single{Ch: 'a'}, ast.Single{Ch: 'b'}}}},
		{"group", "(a)", ast.Single{Ch: 'a'}},
		{"loop", "a*", ast.Loop{Body: ast.Single{Ch: 'a'}}},
		{"range class", "[a-z]", ast.Range{From: 'a', To: 'z'}},
		{
			"multi-item class",
			"[a-zA-Z_]",
			ast.Or{Variants: []ast.Expr{
				ast.Range{From: 'a', To: 'z'},
				ast.Range{From: 'A', To: 'Z'},
				ast.Single{Ch: '_'},
			}},
		},
		{
			"group with alt and loop",
			"(a|b)*",
			ast.Loop{Body: ast.Or{Variants: []ast.Expr{ast.Single{Ch: 'a'}, ast.Single{Ch: 'b'}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed group", "(a"},
		{"unclosed class", "[a-z"},
		{"empty class", "[]"},
		{"empty alternative", "a|"},
		{"dangling escape", `a\`},
		{"unexpected close", "a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input); err == nil {
				t.Errorf("Parse(%q): expected error, got nil", tt.input)
			}
		})
	}
}

func TestParseTrailingDashIsLiteral(t *testing.T) {
	got, err := Parse("[a-]")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := ast.Or{Variants: []ast.Expr{ast.Single{Ch: 'a'}, ast.Single{Ch: '-'}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}
