package voice

import (
	"strings"
)

const flagPrefix = "--"

// switchFlags never take a value, so "--verbose a" leaves "a" positional.
var switchFlags = map[string]bool{
	"copy":    true,
	"debug":   true,
	"help":    true,
	"play":    true,
	"verbose": true,
}

// ParsedArgs is the result of ParseFlags.
type ParsedArgs struct {
	Flags      map[string]string
	Positional []string
}

// Flag returns the value of a flag and whether it was given.
func (a ParsedArgs) Flag(key string) (string, bool) {
	v, ok := a.Flags[key]
	return v, ok
}

// Bool reports whether a flag was given with a value other than "false".
func (a ParsedArgs) Bool(key string) bool {
	v, ok := a.Flags[key]
	return ok && v != "false"
}

// ParseFlags splits tokens into --key value flags and positional arguments.
// A flag followed by another flag, by nothing, or that is a known switch
// gets the value "true". Repeated keys keep the last value.
func ParseFlags(tokens []string) ParsedArgs {
	parsed := ParsedArgs{
		Flags:      make(map[string]string),
		Positional: []string{},
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, flagPrefix) {
			parsed.Positional = append(parsed.Positional, tok)
			continue
		}

		key := strings.TrimPrefix(tok, flagPrefix)
		if !switchFlags[key] && i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], flagPrefix) {
			parsed.Flags[key] = tokens[i+1]
			i++
			continue
		}
		parsed.Flags[key] = "true"
	}

	return parsed
}
