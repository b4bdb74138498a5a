package engine

// Summary is the per-category tally of a report.
type Summary struct {
	Total        int `json:"total" yaml:"total"`
	Security     int `json:"security" yaml:"security"`
	Availability int `json:"availability" yaml:"availability"`
	Stability    int `json:"stability" yaml:"stability"`
	Performance  int `json:"performance" yaml:"performance"`
}

// Add counts f in the total and in its category bucket.
// Categories outside the named four only count in the total.
func (s *Summary) Add(f Finding) {
	s.Total++
	switch f.Category {
	case Security:
		s.Security++
	case Performance:
		s.Performance++
	case Stability:
		s.Stability++
	case Availability:
		s.Availability++
	}
}

// Tally counts all findings
func Tally(findings []Finding) Summary {
	var s Summary
	for _, f := range findings {
		s.Add(f)
	}
	return s
}

// Categorized is the number of findings that landed in a named bucket.
func (s Summary) Categorized() int {
	return s.Security + s.Availability + s.Stability + s.Performance
}
