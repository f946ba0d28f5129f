package database

import "strings"

// matchPattern implements the database glob rule from spec §4.4/§8
// testable property 3: `*` stands for zero-or-more of any character,
// a pattern without `*` matches only the equal name, and an empty
// pattern matches nothing. A pattern without `*` is compared directly;
// anything with a `*` goes to globMatch.
func matchPattern(pattern, name string) bool {
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "*") {
		return pattern == name
	}
	return globMatch(pattern, name)
}

// globMatch is a small, dependency-free matcher for the single
// metacharacter this package's patterns use. doublestar.Match is built
// for path segments (it treats `/` specially); package and element
// names are plain strings, so we implement the textbook `*`/literal
// matcher directly rather than bend doublestar's path semantics to a
// non-path domain.
func globMatch(pattern, name string) bool {
	segments := strings.Split(pattern, "*")

	if !strings.HasPrefix(name, segments[0]) {
		return false
	}
	name = name[len(segments[0]):]

	if !strings.HasSuffix(name, segments[len(segments)-1]) {
		return false
	}
	if len(segments) > 1 {
		name = name[:len(name)-len(segments[len(segments)-1])]
	}

	for _, seg := range segments[1 : len(segments)-1] {
		if seg == "" {
			continue
		}
		idx := strings.Index(name, seg)
		if idx < 0 {
			return false
		}
		name = name[idx+len(seg):]
	}
	return true
}
