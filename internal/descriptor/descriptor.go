// Package descriptor parses the abandon.info files that mark catalog entries.
//
// A descriptor is a small text file of "key: value" lines:
//
//	name: Commander Keen
//	type: dos
//	rom: KEEN1.EXE
//	sort: keen 1
//
// A directory is a catalog entry iff it directly contains one.
package descriptor

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"abandon/internal/registry"
)

// FileName is the descriptor file looked up in each catalog directory
const FileName = "abandon.info"

// Descriptor is one validated catalog entry
type Descriptor struct {
	Path         string // Path of the descriptor file
	BaseDir      string // Directory containing the descriptor (identity key)
	Name         string // Display name
	IsCategory   bool   // Navigable container rather than a launchable entry
	Type         string // Type identifier, empty for categories
	Resource     string // rom value as written, relative to BaseDir
	ResourcePath string // Resource joined onto BaseDir
	SortKey      string // Lowercase ordering key
}

// HasResource reports whether the entry names a resource file
func (d *Descriptor) HasResource() bool {
	return d.Resource != ""
}

// String returns a short debug representation
func (d *Descriptor) String() string {
	return "Descriptor(" + d.Name + ")"
}

// Parse reads and validates the descriptor at path.
//
// When both cat and name appear, the later line decides both the category
// flag and the display name.
func Parse(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Kind: KindRead, Detail: err.Error(), Err: err}
	}

	d := &Descriptor{
		Path:    path,
		BaseDir: filepath.Dir(path),
	}

	sortSet := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, newError(KindMalformedLine, "Unknown line: %s", line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "cat":
			d.IsCategory = true
			d.Name = value
		case "name":
			d.IsCategory = false
			d.Name = value
		case "type":
			d.Type = value
		case "sort":
			d.SortKey = strings.ToLower(value)
			sortSet = true
		case "rom":
			d.Resource = value
		default:
			return nil, newError(KindUnknownKey, "Unknown info file key: %s", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Kind: KindRead, Detail: err.Error(), Err: err}
	}

	if err := d.validate(sortSet); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Descriptor) validate(sortSet bool) error {
	if d.Name == "" {
		return newError(KindMissingName, "neither cat nor name was specified")
	}
	if !sortSet {
		d.SortKey = strings.ToLower(d.Name)
	}

	if d.IsCategory {
		// Categories are never launched, a type line has no meaning here.
		d.Type = ""
	} else {
		if d.Type == "" {
			return newError(KindMissingType, "type was not specified")
		}
		if !registry.IsValid(d.Type) {
			return newError(KindInvalidType, "type must be one of: %s", strings.Join(registry.Types(), ", "))
		}
		if registry.RequiresResource(d.Type) && d.Resource == "" {
			return newError(KindMissingResource, "does not specify a ROM file")
		}
	}

	if d.Resource != "" {
		d.ResourcePath = filepath.Join(d.BaseDir, d.Resource)
		if _, err := os.Stat(d.ResourcePath); err != nil {
			return &ParseError{
				Kind:   KindResourceNotFound,
				Detail: d.Resource + " does not exist",
				Err:    err,
			}
		}
	}

	return nil
}
