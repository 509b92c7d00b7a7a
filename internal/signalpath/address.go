package signalpath

import (
	"reflect"
	"strings"
)

// String serializes the Address into its canonical path string.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		for _, q := range segment.Qualifiers {
			sb.WriteRune(':')
			sb.WriteString(q)
		}
	}
	return sb.String()
}

// Equal checks for deep equality between two addresses.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.Path) != len(other.Path) {
		return false
	}
	for i := range a.Path {
		if a.Path[i].Name != other.Path[i].Name {
			return false
		}
		if len(a.Path[i].Qualifiers) != len(other.Path[i].Qualifiers) {
			return false
		}
		if len(a.Path[i].Qualifiers) > 0 && !reflect.DeepEqual(a.Path[i].Qualifiers, other.Path[i].Qualifiers) {
			return false
		}
	}
	return true
}

// Len returns the number of segments.
func (a *Address) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Path)
}

// Head is the name of the first segment: the module for cycle-local paths,
// the point for problem paths.
func (a *Address) Head() string {
	if a.Len() == 0 {
		return ""
	}
	return a.Path[0].Name
}
