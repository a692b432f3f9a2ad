package main

import "unicode"

// escapeArgs protects dash-leading positional values such as the impact
// list "-,+" or a negative weight list from being parsed as shorthand
// flags. They get a leading space, which the validator trims. Arguments
// after "--" are left alone.
func escapeArgs(args []string) []string {
	out := make([]string, len(args))
	done := false
	for i, a := range args {
		out[i] = a
		if done {
			continue
		}
		if a == "--" {
			done = true
			continue
		}
		if len(a) > 1 && a[0] == '-' && a[1] != '-' && !unicode.IsLetter(rune(a[1])) {
			out[i] = " " + a
		}
	}
	return out
}
