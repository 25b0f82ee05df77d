package usecase

import (
	"testing"
)

func TestNewQueryTokenizer(t *testing.T) {
	t.Run("creates tokenizer with debug logging disabled", func(t *testing.T) {
		tk := NewQueryTokenizer(false)
		if tk.enableDebugLogging {
			t.Error("expected debug logging to be disabled")
		}
	})

	t.Run("creates tokenizer with debug logging enabled", func(t *testing.T) {
		tk := NewQueryTokenizer(true)
		if !tk.enableDebugLogging {
			t.Error("expected debug logging to be enabled")
		}
	})
}

func TestTokenize(t *testing.T) {
	tk := NewQueryTokenizer(false)

	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "removes comparison stop words",
			query: "best shoes under 1500",
			want:  []string{"shoes", "1500"},
		},
		{
			name:  "lowercases tokens",
			query: "Desk LAMP",
			want:  []string{"desk", "lamp"},
		},
		{
			name:  "splits on punctuation",
			query: "chair, table & sofa-bed?",
			want:  []string{"chair", "table", "sofa", "bed"},
		},
		{
			name:  "keeps underscores inside words",
			query: "usb_c cable",
			want:  []string{"usb_c", "cable"},
		},
		{
			name:  "keeps duplicates in order",
			query: "lamp and lamp",
			want:  []string{"lamp", "lamp"},
		},
		{
			name:  "all stop words",
			query: "the best of the best",
			want:  []string{},
		},
		{
			name:  "every listed stop word is removed",
			query: "the with under above for of and or a an in to below between is best",
			want:  []string{},
		},
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
		{
			name:  "whitespace only",
			query: "   \t ",
			want:  []string{},
		},
		{
			name:  "non-ASCII letters form words",
			query: "café crème",
			want:  []string{"café", "crème"},
		},
		{
			name:  "stop words only removed as whole tokens",
			query: "bestseller isolated",
			want:  []string{"bestseller", "isolated"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tk.Tokenize(tc.query)
			if len(got) != len(tc.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tc.query, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tc.query, i, got[i], tc.want[i])
				}
			}
		})
	}
}
