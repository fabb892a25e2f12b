package compare

import (
	"testing"

	"acrunner/internal/testutil"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name          string
		expected      string
		actual        string
		caseSensitive bool
		want          bool
	}{
		{name: "identical", expected: "hello\n", actual: "hello\n", caseSensitive: true, want: true},
		{name: "case_folded", expected: "Hello", actual: "hello", caseSensitive: false, want: true},
		{name: "case_sensitive_mismatch", expected: "Hello", actual: "hello", caseSensitive: true, want: false},
		{name: "missing_final_newline", expected: "1\n", actual: "1", caseSensitive: true, want: false},
		{name: "trailing_space", expected: "1 2\n", actual: "1 2 \n", caseSensitive: false, want: false},
		{name: "yes_no", expected: "YES\n", actual: "yes\n", caseSensitive: false, want: true},
		{name: "full_fold", expected: "STRASSE", actual: "straße", caseSensitive: false, want: true},
		{name: "empty", expected: "", actual: "", caseSensitive: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, Compare(tt.expected, tt.actual, tt.caseSensitive), tt.want)
		})
	}
}

func TestPolicyCoercesUnknownModeToExact(t *testing.T) {
	testutil.AssertEqual(t, ResolveMode("token"), ModeExact)
	testutil.AssertEqual(t, ResolveMode(""), ModeExact)

	p := Policy{Mode: Mode("float"), CaseSensitive: true}
	testutil.AssertTrue(t, p.Equal("1.0\n", "1.0\n"), "exact match should pass")
	testutil.AssertFalse(t, p.Equal("1.0\n", "1.00\n"), "float tolerance must not be applied")
}
