package token

import "testing"

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Token
		want Token
	}{
		{"New", New(4, 2), Token{Length: 4, TypeIndex: 2}},
		{"Error", Error(3), Token{Length: 3, TypeIndex: ErrorIndex}},
		{"End", End(), Token{Length: 0, TypeIndex: EndIndex}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
	}{
		{"error token", Error(5)},
		{"end token", End()},
		{"user token", New(3, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tok.String() == "" {
				t.Errorf("String() returned empty string")
			}
		})
	}
}
