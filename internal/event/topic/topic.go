package topic

import "strings"

// Topic is a dot separated event name such as "keydown" or "map.zoom".
// Patterns use the same syntax plus the wildcards below.
type Topic string

const (
	// Any matches exactly one segment.
	Any = "*"

	// Rest matches zero or more segments.
	Rest = "**"

	sep = "."
)

func (t Topic) String() string { return string(t) }

// Segments splits t on dots. An empty topic has no segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), sep)
}

// Base returns the last segment, "zoom" for "map.zoom".
func (t Topic) Base() string {
	s := string(t)
	return s[strings.LastIndex(s, sep)+1:]
}

// HasWildcard reports whether t is a pattern rather than a concrete topic.
func (t Topic) HasWildcard() bool {
	return strings.Contains(string(t), Any)
}

// IsValid reports whether t is non-empty with no empty segments.
func (t Topic) IsValid() bool {
	return t != "" && !strings.HasPrefix(string(t), sep) &&
		!strings.HasSuffix(string(t), sep) && !strings.Contains(string(t), sep+sep)
}

// Matches reports whether t is matched by pattern.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(name, pattern []string) bool {
	for len(pattern) > 0 {
		head := pattern[0]
		pattern = pattern[1:]

		if head == Rest {
			// Try every possible length for the multi-segment wildcard.
			for skip := 0; skip <= len(name); skip++ {
				if match(name[skip:], pattern) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 || (head != Any && head != name[0]) {
			return false
		}
		name = name[1:]
	}
	return len(name) == 0
}

// Join builds a topic from segments.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, sep))
}
