package suggest

import "testing"

var countries = []string{"Canada", "United States", "Mexico", "Netherlands"}

func TestNearest(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"typo", "Canda", "Canada", true},
		{"case insensitive", "mexico", "Mexico", true},
		{"exact", "Netherlands", "Netherlands", true},
		{"partial", "Netherland", "Netherlands", true},
		{"gibberish", "zzzzzzzzzz", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Nearest(tc.input, countries)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("Nearest(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNearestEmptyOptions(t *testing.T) {
	if got, ok := Nearest("Canada", nil); ok {
		t.Fatalf("no options must yield no suggestion, got %q", got)
	}
}
