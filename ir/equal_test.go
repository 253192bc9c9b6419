package ir

import (
	"testing"
)

func mustDecode(t *testing.T, s string) *Node {
	t.Helper()
	n, err := DecodeJSON([]byte(s))
	if err != nil {
		t.Fatalf("DecodeJSON(%q): %v", s, err)
	}
	return n
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"null", `null`, `null`, true},
		{"bool", `true`, `true`, true},
		{"bool-mismatch", `true`, `false`, false},
		{"string", `"hi"`, `"hi"`, true},
		{"string-mismatch", `"hi"`, `"ho"`, false},
		{"int", `2`, `2`, true},
		{"int-float", `2`, `2.0`, true},
		{"float-int", `2.5`, `2`, false},
		{"negzero", `-0.0`, `0`, true},
		{"bignum", `123456789012345678901234567890`, `123456789012345678901234567890`, true},
		{"object-order", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"object-extra", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"object-value", `{"a":1}`, `{"a":2}`, false},
		{"array-order", `[1,2]`, `[2,1]`, false},
		{"array-len", `[1,2]`, `[1,2,3]`, false},
		{"array-same", `[1,[2,3]]`, `[1,[2,3]]`, true},
		{"nested", `{"a":{"b":[1,2]}}`, `{"a":{"b":[1,2]}}`, true},
		{"container-vs-leaf", `{}`, `"x"`, false},
		{"object-vs-array", `{}`, `[]`, false},
		{"empty-objects", `{}`, `{}`, true},
		{"null-vs-string", `null`, `"null"`, false},
		{"bool-vs-string", `true`, `"true"`, false},
		{"number-vs-string", `1`, `"1"`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := mustDecode(t, tc.a), mustDecode(t, tc.b)
			if got := Equal(a, b); got != tc.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			if got := Equal(b, a); got != tc.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}

func TestEqual_Nil(t *testing.T) {
	if !Equal(nil, nil) {
		t.Error("Equal(nil, nil) = false")
	}
	if Equal(nil, Null()) {
		t.Error("Equal(nil, Null()) = true")
	}
	if Equal(Null(), nil) {
		t.Error("Equal(Null(), nil) = true")
	}
}
