package engine

// Category classifies a Finding. Values are compared exactly, case-sensitive.
type Category string

const (
	Security     Category = "Security"
	Performance  Category = "Performance"
	Stability    Category = "Stability"
	Availability Category = "Availability"
)

// CategorySet is a set of the four named categories.
type CategorySet uint8

const (
	SecuritySet CategorySet = 1 << iota
	PerformanceSet
	StabilitySet
	AvailabilitySet

	AllCategories = SecuritySet | PerformanceSet | StabilitySet | AvailabilitySet
)

// Bit returns the set holding only c, or 0 for a category outside the named four.
func (c Category) Bit() CategorySet {
	switch c {
	case Security:
		return SecuritySet
	case Performance:
		return PerformanceSet
	case Stability:
		return StabilitySet
	case Availability:
		return AvailabilitySet
	}
	return 0
}

// Known reports whether c is one of the named categories.
func (c Category) Known() bool {
	return c.Bit() != 0
}

func (s CategorySet) With(c Category) CategorySet {
	return s | c.Bit()
}

func (s CategorySet) Has(c Category) bool {
	b := c.Bit()
	return b != 0 && s&b != 0
}

func (s CategorySet) Empty() bool {
	return s == 0
}
