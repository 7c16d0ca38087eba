package voice

import (
	"reflect"
	"testing"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name           string
		tokens         []string
		wantFlags      map[string]string
		wantPositional []string
	}{
		{
			name:           "flag with value",
			tokens:         []string{"--output", "x", "a"},
			wantFlags:      map[string]string{"output": "x"},
			wantPositional: []string{"a"},
		},
		{
			name:           "boolean flag before positional",
			tokens:         []string{"--verbose", "a"},
			wantFlags:      map[string]string{"verbose": "true"},
			wantPositional: []string{"a"},
		},
		{
			name:           "boolean flag followed by flag",
			tokens:         []string{"--copy", "--output", "out.txt", "in.wav"},
			wantFlags:      map[string]string{"copy": "true", "output": "out.txt"},
			wantPositional: []string{"in.wav"},
		},
		{
			name:           "switch does not swallow text",
			tokens:         []string{"--play", "coral", "hi"},
			wantFlags:      map[string]string{"play": "true"},
			wantPositional: []string{"coral", "hi"},
		},
		{
			name:           "equals sign stays in the key",
			tokens:         []string{"--output=x.wav", "a"},
			wantFlags:      map[string]string{"output=x.wav": "a"},
			wantPositional: []string{},
		},
		{
			name:           "trailing boolean flag",
			tokens:         []string{"a", "b", "--play"},
			wantFlags:      map[string]string{"play": "true"},
			wantPositional: []string{"a", "b"},
		},
		{
			name:           "last duplicate wins",
			tokens:         []string{"--output", "one", "--output", "two"},
			wantFlags:      map[string]string{"output": "two"},
			wantPositional: []string{},
		},
		{
			name:           "positional order preserved",
			tokens:         []string{"coral", "Hello", "--output", "o.pcm", "world"},
			wantFlags:      map[string]string{"output": "o.pcm"},
			wantPositional: []string{"coral", "Hello", "world"},
		},
		{
			name:           "empty input",
			tokens:         nil,
			wantFlags:      map[string]string{},
			wantPositional: []string{},
		},
		{
			name:           "single dash is positional",
			tokens:         []string{"-o", "x"},
			wantFlags:      map[string]string{},
			wantPositional: []string{"-o", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFlags(tt.tokens)
			if !reflect.DeepEqual(got.Flags, tt.wantFlags) {
				t.Errorf("ParseFlags(%q).Flags = %v, want %v", tt.tokens, got.Flags, tt.wantFlags)
			}
			if !reflect.DeepEqual(got.Positional, tt.wantPositional) {
				t.Errorf("ParseFlags(%q).Positional = %q, want %q", tt.tokens, got.Positional, tt.wantPositional)
			}
		})
	}
}

// Every token is accounted for exactly once: as a flag key, a flag value or
// a positional argument. None of the keys used here are switches.
func TestParseFlags_ConsumesEveryToken(t *testing.T) {
	inputs := [][]string{
		{"--output", "x", "a"},
		{"--a", "--b", "c", "d", "--e"},
		{"x", "y", "z"},
		{"--k", "v", "--k", "w", "p"},
	}

	for _, tokens := range inputs {
		got := ParseFlags(tokens)

		consumed := len(got.Positional)
		for i := 0; i < len(tokens); i++ {
			if len(tokens[i]) > 2 && tokens[i][:2] == "--" {
				consumed++
				if i+1 < len(tokens) && !(len(tokens[i+1]) >= 2 && tokens[i+1][:2] == "--") {
					consumed++
					i++
				}
			}
		}
		if consumed != len(tokens) {
			t.Errorf("ParseFlags(%q) accounted for %d tokens, want %d", tokens, consumed, len(tokens))
		}
	}
}

func TestParsedArgs_Bool(t *testing.T) {
	parsed := ParseFlags([]string{"--copy", "--loud", "false"})
	if !parsed.Bool("copy") {
		t.Error("Bool(copy) = false, want true")
	}
	if parsed.Bool("loud") {
		t.Error("Bool(loud) = true for explicit false")
	}
	if parsed.Bool("missing") {
		t.Error("Bool(missing) = true, want false")
	}
}
