package signalpath

// Segment is one dot-separated element of a path.
type Segment struct {
	Name       string
	Qualifiers []string
}

// Address is a parsed signal path.
type Address struct {
	Path []Segment
}

// NewSegment creates a segment with optional qualifiers.
func NewSegment(name string, qualifiers ...string) Segment {
	return Segment{Name: name, Qualifiers: qualifiers}
}
