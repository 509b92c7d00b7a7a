package signalpath

import (
	"fmt"
	"regexp"
	"strings"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func isValidName(name string) bool {
	return nameRegex.MatchString(name) && name != "-"
}

// Parse creates an Address from its canonical string form.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("signal path cannot be empty")
	}

	addr := &Address{}
	for _, segmentStr := range strings.Split(raw, ".") {
		if segmentStr == "" {
			return nil, fmt.Errorf("signal path %q contains empty segment", raw)
		}

		parts := strings.Split(segmentStr, ":")
		for _, p := range parts {
			if !isValidName(p) {
				return nil, fmt.Errorf("invalid path segment %q in %q", segmentStr, raw)
			}
		}
		segment := NewSegment(parts[0])
		if len(parts) > 1 {
			segment.Qualifiers = parts[1:]
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}

// Join parses the dotted concatenation of parts.
func Join(parts ...string) (*Address, error) {
	return Parse(strings.Join(parts, "."))
}
