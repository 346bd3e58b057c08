package textfilter

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "The ash falls for weeks.",
			want:  "The ash falls for weeks.",
		},
		{
			name:  "strips code fences",
			input: "```\nThe ash falls for weeks.\n```",
			want:  "The ash falls for weeks.",
		},
		{
			name:  "strips fences with language tag",
			input: "```text\nThe ash falls.\n```",
			want:  "The ash falls.",
		},
		{
			name:  "strips matched quotes",
			input: `"The ash falls."`,
			want:  "The ash falls.",
		},
		{
			name:  "keeps unmatched quote",
			input: `"The ash falls.`,
			want:  `"The ash falls.`,
		},
		{
			name:  "drops meta prefix",
			input: "Sure, here is the description: The ash falls.",
			want:  "The ash falls.",
		},
		{
			name:  "collapses blank line runs",
			input: "One.\n\n\n\nTwo.",
			want:  "One.\n\nTwo.",
		},
		{
			name:  "trims whitespace",
			input: "  \n The ash falls. \n ",
			want:  "The ash falls.",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHeadline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "first line only",
			input: "The Crimson Winter\nSnow turns red as iron oxides rain down.",
			want:  "The Crimson Winter",
		},
		{
			name:  "drops markdown heading marker",
			input: "## The Crimson Winter",
			want:  "The Crimson Winter",
		},
		{
			name:  "title-cases all-lowercase lines",
			input: "the crimson winter",
			want:  "The Crimson Winter",
		},
		{
			name:  "trims trailing punctuation",
			input: "The Crimson Winter:",
			want:  "The Crimson Winter",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Headline(tt.input); got != tt.want {
				t.Errorf("Headline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
