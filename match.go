package main

import (
	"github.com/gobwas/glob"
)

// Allowed reports whether at least one pattern matches the remote.
// Order is irrelevant and the empty list matches nothing.
//
// A pattern containing a colon is split at its first unescaped colon
// and the two halves are matched independently against the remote's
// host and path, so a wildcard can never reach across the host/path
// boundary. A colon-free pattern falls back to a single whole-string
// match against host:path, with no boundary protection.
func Allowed(remote RequestedRemote, patterns []string) bool {
	for _, p := range patterns {
		if matchPattern(remote, p) {
			return true
		}
	}
	return false
}

func matchPattern(remote RequestedRemote, pattern string) bool {
	hostPat, pathPat, ok := splitUnescaped(pattern, ':')
	if !ok {
		return wildcardMatch(pattern, remote.String())
	}
	return wildcardMatch(hostPat, remote.Host) && wildcardMatch(pathPat, remote.Path)
}

// wildcardMatch is a case-sensitive whole-string match where * spans
// any run of characters and ? exactly one. A pattern that does not
// compile matches nothing.
func wildcardMatch(pattern, s string) bool {
	g, err := glob.Compile(pattern)
	if err != nil {
		return false
	}
	return g.Match(s)
}

// splitUnescaped cuts s at the first sep not preceded by a backslash.
func splitUnescaped(s string, sep byte) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
