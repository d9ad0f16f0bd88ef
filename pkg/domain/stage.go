package domain

import "slices"

// Stage is an ordered group of fields with a fixed 1-based index.
type Stage struct {
	Index  int      `json:"index"`
	Name   string   `json:"name"`
	Title  string   `json:"title,omitempty"`
	Fields []string `json:"fields"`
}

// Has reports whether the stage owns the field.
func (s Stage) Has(field string) bool {
	return slices.Contains(s.Fields, field)
}
