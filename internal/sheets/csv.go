package sheets

import "strings"

// ParseCSV converts sheet CSV export text into rows of fields.
// The first line is a header and is discarded, blank lines are skipped.
func ParseCSV(text string) [][]string {
	_, rows := ParseCSVWithHeader(text)
	return rows
}

// ParseCSVWithHeader is ParseCSV but also returns the parsed header line.
// header is nil when the input is empty.
func ParseCSVWithHeader(text string) ([]string, [][]string) {
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))

	var header []string
	if strings.TrimSpace(strings.TrimSuffix(lines[0], "\r")) != "" {
		header = parseLine(strings.TrimSuffix(lines[0], "\r"))
	}

	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, parseLine(line))
	}

	return header, rows
}

// parseLine splits a line on commas that are not inside double quotes.
// Each quote toggles the quoted state; "" escapes are not supported.
func parseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, cleanField(current.String()))

	return fields
}

// cleanField trims whitespace and at most one bounding quote on each side
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
