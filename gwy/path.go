package gwy

import "strings"

// SplitPath splits a container key into its components.
// Leading and trailing slashes are ignored and empty components are removed.
//
// Examples:
//   - "/" -> []string{}
//   - "/0/data" -> []string{"0", "data"}
//   - "0//data/" -> []string{"0", "data"}
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPath joins components into an absolute container key. Each element
// may itself contain slashes.
func JoinPath(elem ...string) string {
	var parts []string
	for _, e := range elem {
		parts = append(parts, SplitPath(e)...)
	}
	return "/" + strings.Join(parts, "/")
}

// CleanPath normalizes a key: a leading slash, no trailing slash and no
// empty components.
func CleanPath(path string) string {
	return JoinPath(path)
}
