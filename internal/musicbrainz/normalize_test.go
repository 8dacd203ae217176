package musicbrainz

import (
	"reflect"
	"testing"
)

func TestStripEditionQualifiers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title untouched", "OK Computer", "OK Computer"},
		{"parenthesized qualifier", "Nevermind (Deluxe Edition)", "Nevermind"},
		{"bracketed qualifier", "Nevermind [2011 Remaster]", "Nevermind"},
		{"dash suffix", "Pinkerton - Deluxe Edition", "Pinkerton"},
		{"colon suffix", "Lonerism: Expanded Version", "Lonerism"},
		{"stacked qualifiers", "Blue (Remastered) [Bonus Tracks]", "Blue"},
		{"anniversary suffix", "Rumours - 35th Anniversary", "Rumours"},
		{"keyword kept mid-title", "Special Agent", "Special Agent"},
		{"parens without keyword kept", "Speak Now (Taylor's Version)", "Speak Now"},
		{"non-edition parens kept", "(What's the Story) Morning Glory?", "(What's the Story) Morning Glory?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripEditionQualifiers(tt.input); got != tt.want {
				t.Errorf("stripEditionQualifiers(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTitleVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "clean title has single variant",
			input: "OK Computer",
			want:  []string{"OK Computer"},
		},
		{
			name:  "qualified title adds stripped variant",
			input: "Pinkerton - Deluxe Edition",
			want:  []string{"Pinkerton - Deluxe Edition", "Pinkerton"},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Blue  ",
			want:  []string{"Blue"},
		},
		{
			name:  "case-only difference deduplicated",
			input: "nevermind (DELUXE EDITION)",
			want:  []string{"nevermind (DELUXE EDITION)", "nevermind"},
		},
		{
			name:  "qualifier-only title falls back to itself",
			input: "Deluxe Edition",
			want:  []string{"Deluxe Edition"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleVariants(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TitleVariants(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
