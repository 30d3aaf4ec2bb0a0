package navigator

import (
	"fmt"
	"strings"

	"abandon/internal/descriptor"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Changes summarizes how a directory listing changed between two scans
type Changes struct {
	Added   []string // Names of new entries
	Removed []string // Names of entries that disappeared
}

// Empty reports whether nothing was added or removed
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// String renders a one-line summary for the status bar
func (c Changes) String() string {
	if c.Empty() {
		return "No changes"
	}
	var parts []string
	if len(c.Added) > 0 {
		parts = append(parts, fmt.Sprintf("%d added", len(c.Added)))
	}
	if len(c.Removed) > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", len(c.Removed)))
	}
	return strings.Join(parts, ", ")
}

// Compare diffs two item lists line-wise, one line per entry
func Compare(before, after []*descriptor.Descriptor) Changes {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(entryLines(before), entryLines(after))
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var added, removed []string
	for _, d := range diffs {
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				added = append(added, line)
			case diffmatchpatch.DiffDelete:
				removed = append(removed, line)
			}
		}
	}

	// An entry whose sort key changed shows up on both sides; it only moved
	moved := make(map[string]bool)
	for _, a := range added {
		for _, r := range removed {
			if a == r {
				moved[a] = true
			}
		}
	}

	var c Changes
	for _, a := range added {
		if !moved[a] {
			c.Added = append(c.Added, entryName(a))
		}
	}
	for _, r := range removed {
		if !moved[r] {
			c.Removed = append(c.Removed, entryName(r))
		}
	}
	return c
}

// entryLines renders one "dir\tname" line per entry
func entryLines(items []*descriptor.Descriptor) string {
	var b strings.Builder
	for _, d := range items {
		b.WriteString(d.BaseDir)
		b.WriteString("\t")
		b.WriteString(d.Name)
		b.WriteString("\n")
	}
	return b.String()
}

func entryName(line string) string {
	_, name, _ := strings.Cut(line, "\t")
	return name
}
