package runner

import (
	"testing"

	"minoj/internal/judge/catalog"
)

func TestOutputsMatchStandard(t *testing.T) {
	cases := []struct {
		got, want string
		match     bool
	}{
		{"1 2\n", "1 2\n", true},
		{"1 2", "1 2\n", true},
		{"  1 2  \n", "1 2", true},
		{"1 2\n\n\n", "1 2", true},
		{"a\nb\n", "a \n b\n", true},
		{"1 2\n3\n", "1 2\n", false},
		{"1  2\n", "1 2\n", false},
		{"a\n\nb\n", "a\nb\n", false},
	}
	for _, tc := range cases {
		if got := outputsMatch(catalog.CompareStandard, tc.got, tc.want); got != tc.match {
			t.Fatalf("standard match(%q, %q) = %v, want %v", tc.got, tc.want, got, tc.match)
		}
	}
}

func TestOutputsMatchStrict(t *testing.T) {
	if !outputsMatch(catalog.CompareStrict, "1 2\n", "1 2\n") {
		t.Fatalf("identical strict output should match")
	}
	if outputsMatch(catalog.CompareStrict, "1 2", "1 2\n") {
		t.Fatalf("strict match must be byte-exact")
	}
}
