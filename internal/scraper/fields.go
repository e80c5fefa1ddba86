package scraper

import "strings"

// The detail pages carry no structured data feed; labels in the rendered text
// are the only reliable anchor. Each label is bound to an extraction rule so
// the schema is data the scan algorithm walks, not control flow.

// Rule selects how the value following a label is collected.
type Rule int

const (
	// SingleValue takes the first non-blank, non-label line within a bounded
	// window after the label.
	SingleValue Rule = iota
	// Block collects every line after the label up to a terminating sentinel,
	// skipping other labels and decorative separators.
	Block
)

// Field binds one recognized label to its extraction rule.
type Field struct {
	Label    string
	Rule     Rule
	Sentinel string // Block only: line (substring match) that ends the value
}

// Schema is the closed set of recognized labels for a detail page. A line
// matching any label always terminates the value scan of the preceding label.
type Schema struct {
	fields map[string]Field
	labels map[string]struct{}
}

// valueWindow bounds how far past a label a SingleValue scan may look. It
// keeps unrelated page content from bleeding into a field whose value is
// simply missing.
const valueWindow = 15

// separatorLine is the decorative rule the source renders inside overview text.
const separatorLine = "* * *"

// NewSchema builds a Schema from a field list.
func NewSchema(fields []Field) *Schema {
	s := &Schema{
		fields: make(map[string]Field, len(fields)),
		labels: make(map[string]struct{}, len(fields)),
	}
	for _, f := range fields {
		s.fields[f.Label] = f
		s.labels[f.Label] = struct{}{}
	}
	return s
}

// IsLabel reports whether a line is one of the recognized labels.
func (s *Schema) IsLabel(line string) bool {
	_, ok := s.labels[line]
	return ok
}

// Value returns the extracted value for label, or "" when the label is absent
// or no value appears within the window. An empty result is a legitimate
// "field not present", never an error.
func (s *Schema) Value(lines []string, label string) string {
	f, ok := s.fields[label]
	if !ok || f.Rule != SingleValue {
		return ""
	}

	i := indexOf(lines, label)
	if i < 0 {
		return ""
	}

	end := i + 1 + valueWindow
	if end > len(lines) {
		end = len(lines)
	}
	for j := i + 1; j < end; j++ {
		if s.IsLabel(lines[j]) {
			break
		}
		if lines[j] != "" {
			return lines[j]
		}
	}
	return ""
}

// BlockValue returns the multi-line value for a Block field: every line from
// the label to its sentinel, except other labels and separator lines, joined
// with newlines.
func (s *Schema) BlockValue(lines []string, label string) string {
	f, ok := s.fields[label]
	if !ok || f.Rule != Block {
		return ""
	}

	i := indexOf(lines, label)
	if i < 0 {
		return ""
	}

	var buf []string
	for j := i + 1; j < len(lines); j++ {
		if f.Sentinel != "" && strings.Contains(lines[j], f.Sentinel) {
			break
		}
		if s.IsLabel(lines[j]) || lines[j] == separatorLine {
			continue
		}
		buf = append(buf, lines[j])
	}
	return strings.TrimSpace(strings.Join(buf, "\n"))
}

func indexOf(lines []string, target string) int {
	for i, line := range lines {
		if line == target {
			return i
		}
	}
	return -1
}

// detailSchema is the label set used on gbuwh.co.uk event detail pages.
var detailSchema = NewSchema([]Field{
	{Label: "Type of event"},
	{Label: "Location"},
	{Label: "Is this a BOA event?"},
	{Label: "Event Owner"},
	{Label: "Start Date"},
	{Label: "End Date"},
	{Label: "Add to Calendar"},
	{Label: "Tier"},
	{Label: "No. of teams"},
	{Label: "Age Categories:"},
	{Label: "Team Registration & Edit Deadlines"},
	{Label: "Event overview", Rule: Block, Sentinel: "Back to Events"},
})
