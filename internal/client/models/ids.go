package models

import "slices"

// The helpers below treat an id slice as an insertion-ordered set. They
// never modify their input.

func ContainsID(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

// WithID returns ids plus id, unchanged if already present.
func WithID(ids []string, id string) []string {
	out := slices.Clone(ids)
	if out == nil {
		out = []string{}
	}
	if slices.Contains(out, id) {
		return out
	}
	return append(out, id)
}

// WithoutID returns ids minus every occurrence of id.
func WithoutID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// UniqueIDs drops duplicates, keeping first occurrences.
func UniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
