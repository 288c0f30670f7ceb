// Package tailwind implements utility-class tokenization, group
// classification, and the replace-within-group / merge-across-groups policy
// used when property edits are written back into a className value.
package tailwind

import "strings"

// Split tokenizes a class string on whitespace, trimming and dropping empties.
func Split(value string) []string {
	if value == "" {
		return nil
	}
	fields := strings.Fields(value)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// SplitAll flattens and tokenizes a list of class strings.
func SplitAll(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, Split(v)...)
	}
	return out
}

// Group computes the group key for a single utility class.
//
// The variant prefix up to the last ':' (hover:, md:, dark:hover:) is kept
// verbatim and reattached to the computed base group, as is a leading '-' on
// negative utilities. The base group is the longest leading run of letters
// before a '-' or '[', which isolates "bg" from "bg-blue-500" and "rounded"
// from "rounded-lg".
//
// Known limitation: utilities whose prefix is not a pure alphabetic run
// (2xl, utilities with embedded numerals) fall through to an empty base
// group. Returns "" for unparseable input.
func Group(class string) string {
	class = strings.TrimSpace(class)
	if class == "" {
		return ""
	}

	variant := ""
	if i := strings.LastIndex(class, ":"); i >= 0 {
		variant = class[:i+1]
		class = class[i+1:]
	}

	negative := ""
	if strings.HasPrefix(class, "-") {
		negative = "-"
		class = class[1:]
	}

	end := 0
	for end < len(class) {
		c := class[end]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return ""
	}

	return variant + negative + class[:end]
}

// RemoveGroup filters out every class whose computed group equals group.
func RemoveGroup(existing []string, group string) []string {
	if group == "" {
		return existing
	}
	out := make([]string, 0, len(existing))
	for _, c := range existing {
		if Group(c) == group {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Merge applies the replace-within-group policy: every class in existing
// whose group matches either the explicit group argument or any group present
// in next is removed, then next is appended. Surviving classes keep their
// relative order, followed by the new classes in theirs. Unrelated groups are
// never touched.
func Merge(existing, next []string, group string) []string {
	drop := make(map[string]bool, len(next)+1)
	if group != "" {
		drop[group] = true
	}
	for _, c := range next {
		if g := Group(c); g != "" {
			drop[g] = true
		}
	}

	out := make([]string, 0, len(existing)+len(next))
	for _, c := range existing {
		if drop[Group(c)] {
			continue
		}
		out = append(out, c)
	}
	out = append(out, next...)
	return out
}

// NormalizeValue converts a raw property value into concrete class tokens.
//
// A value that already contains full class tokens (space-separated, or
// already carrying the prefix) is split and returned as-is. Otherwise a
// non-empty prefix is prepended to the bare value. An empty value returns an
// empty slice, which callers treat as "remove this group entirely".
func NormalizeValue(value, classPrefix string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if strings.ContainsAny(value, " \t\n") {
		return Split(value)
	}
	if classPrefix == "" || strings.HasPrefix(value, classPrefix) {
		return []string{value}
	}
	return []string{classPrefix + value}
}
