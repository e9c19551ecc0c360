package normalize

import "strings"

// SplitList parses a raw string intended as a list. Newline is the primary
// delimiter; when splitting on newlines yields a single element the string
// is re-split on commas instead, reconciling the "one per line" and "comma
// separated" authoring conventions. Elements are trimmed, empties dropped,
// order preserved. Empty input yields an empty sequence.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, "\n")
	if len(nonEmpty(parts)) == 1 && strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	}
	return nonEmpty(parts)
}

// JoinList is the inverse of SplitList for round-trip checks and storage
// rewrites: elements are rejoined with newlines, which SplitList always
// prefers.
func JoinList(items []string) string {
	return strings.Join(items, "\n")
}

// Columns splits a structured line on the "|" delimiter and pads the result
// to count segments. Segments are trimmed; missing trailing segments become
// empty strings, never an error. A line with no delimiter yields its whole
// content in the first column.
func Columns(line string, count int) []string {
	segments := strings.Split(line, "|")
	out := make([]string, count)
	for idx := 0; idx < count; idx++ {
		if idx < len(segments) {
			out[idx] = strings.TrimSpace(segments[idx])
		}
	}
	return out
}

// ParseRows applies SplitList then Columns, mapping each line's segments
// positionally onto the given column names. Malformed lines are padded, not
// dropped.
func ParseRows(raw string, columns ...string) []map[string]string {
	lines := SplitList(raw)
	rows := make([]map[string]string, 0, len(lines))
	for _, line := range lines {
		segments := Columns(line, len(columns))
		row := make(map[string]string, len(columns))
		for idx, name := range columns {
			row[name] = segments[idx]
		}
		rows = append(rows, row)
	}
	return rows
}

func nonEmpty(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
