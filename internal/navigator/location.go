package navigator

import "abandon/internal/descriptor"

// Location identifies a directory the navigator has left. The zero value
// matches nothing.
type Location struct {
	dir string
}

// Matches reports whether d is the entry for this location
func (l Location) Matches(d *descriptor.Descriptor) bool {
	return l.dir != "" && d != nil && d.BaseDir == l.dir
}

// IndexIn returns the position of the matching entry in items, or -1
func (l Location) IndexIn(items []*descriptor.Descriptor) int {
	for i, d := range items {
		if l.Matches(d) {
			return i
		}
	}
	return -1
}
