// Package navigator walks the catalog tree: it scans a directory for entries,
// keeps the breadcrumb trail and tracks whether a launch is in flight.
package navigator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"abandon/internal/descriptor"

	"go.uber.org/zap"
)

var (
	// ErrBusy is returned for navigation attempted while a launch is running
	ErrBusy = errors.New("a program is still running")
	// ErrNotCategory is returned when pushing a leaf entry
	ErrNotCategory = errors.New("entry is not a category")
	// ErrNotLeaf is returned when launching a category
	ErrNotLeaf = errors.New("entry is not launchable")
)

// State is the coarse mode of the navigator
type State int

const (
	StateBrowsing State = iota
	StateLaunching
)

// ScanError records an entry whose descriptor failed to parse
type ScanError struct {
	Dir     string // Subdirectory name
	Message string
	Err     error
}

// Listing is the browsable content of one directory
type Listing struct {
	Items  []*descriptor.Descriptor
	Errors []ScanError
}

// Navigator owns the navigation state of one session
type Navigator struct {
	breadcrumbs []string
	currentDir  string
	listing     Listing
	state       State
	launching   *descriptor.Descriptor
	logger      *zap.Logger
}

// New creates a Navigator positioned at root and scans it
func New(root, rootLabel string, logger *zap.Logger) (*Navigator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Navigator{
		breadcrumbs: []string{rootLabel},
		logger:      logger,
	}
	if _, err := n.Enter(root); err != nil {
		return nil, err
	}
	return n, nil
}

// Scan lists the catalog entries directly under dir. Hidden entries and
// directories without a descriptor are skipped; a broken descriptor becomes
// a ScanError instead of failing the whole listing.
func Scan(dir string) (Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Listing{}, err
	}

	var listing Listing
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		sub := filepath.Join(dir, name)
		// Stat follows symlinks, DirEntry.IsDir does not
		info, err := os.Stat(sub)
		if err != nil || !info.IsDir() {
			continue
		}
		infoPath := filepath.Join(sub, descriptor.FileName)
		if _, err := os.Stat(infoPath); err != nil {
			continue
		}

		d, err := descriptor.Parse(infoPath)
		if err != nil {
			listing.Errors = append(listing.Errors, ScanError{Dir: name, Message: err.Error(), Err: err})
			continue
		}
		listing.Items = append(listing.Items, d)
	}

	// ReadDir is sorted by name, so ties keep directory order
	sort.SliceStable(listing.Items, func(i, j int) bool {
		return listing.Items[i].SortKey < listing.Items[j].SortKey
	})
	return listing, nil
}

// Enter scans dir and makes it the current directory. On error the state
// is left as it was.
func (n *Navigator) Enter(dir string) (Listing, error) {
	listing, err := Scan(dir)
	if err != nil {
		n.logger.Warn("scan failed", zap.String("dir", dir), zap.Error(err))
		return Listing{}, fmt.Errorf("cannot read %s: %w", dir, err)
	}
	n.currentDir = dir
	n.listing = listing
	n.logger.Debug("entered directory",
		zap.String("dir", dir),
		zap.Int("items", len(listing.Items)),
		zap.Int("errors", len(listing.Errors)),
	)
	for _, e := range listing.Errors {
		if descriptor.IsKind(e.Err, descriptor.KindRead) {
			n.logger.Warn("descriptor unreadable", zap.String("entry", e.Dir), zap.Error(e.Err))
			continue
		}
		n.logger.Info("descriptor rejected", zap.String("entry", e.Dir), zap.String("reason", e.Message))
	}
	return listing, nil
}

// Push descends into a category
func (n *Navigator) Push(d *descriptor.Descriptor) error {
	if n.state == StateLaunching {
		return ErrBusy
	}
	if d == nil || !d.IsCategory {
		return ErrNotCategory
	}
	if _, err := n.Enter(d.BaseDir); err != nil {
		return err
	}
	n.breadcrumbs = append(n.breadcrumbs, d.Name)
	return nil
}

// Pop goes back up one level. It does nothing at the root (ok is false);
// otherwise it returns the location just left so the caller can put the
// cursor back on it.
func (n *Navigator) Pop() (from Location, ok bool, err error) {
	if n.state == StateLaunching {
		return Location{}, false, ErrBusy
	}
	if len(n.breadcrumbs) <= 1 {
		return Location{}, false, nil
	}

	prev := n.currentDir
	if _, err := n.Enter(filepath.Dir(prev)); err != nil {
		return Location{}, false, err
	}
	n.breadcrumbs = n.breadcrumbs[:len(n.breadcrumbs)-1]
	return Location{dir: prev}, true, nil
}

// Rescan re-reads the current directory and reports what changed
func (n *Navigator) Rescan() (Listing, Changes, error) {
	before := n.listing.Items
	listing, err := n.Enter(n.currentDir)
	if err != nil {
		return Listing{}, Changes{}, err
	}
	return listing, Compare(before, listing.Items), nil
}

// BeginLaunch marks d as running. Navigation is refused until EndLaunch.
func (n *Navigator) BeginLaunch(d *descriptor.Descriptor) error {
	if n.state == StateLaunching {
		return ErrBusy
	}
	if d == nil || d.IsCategory {
		return ErrNotLeaf
	}
	n.state = StateLaunching
	n.launching = d
	return nil
}

// EndLaunch returns to browsing
func (n *Navigator) EndLaunch() {
	n.state = StateBrowsing
	n.launching = nil
}

// State returns the current mode
func (n *Navigator) State() State {
	return n.state
}

// Busy reports whether a launch is in flight
func (n *Navigator) Busy() bool {
	return n.state == StateLaunching
}

// Launching returns the entry being run, or nil
func (n *Navigator) Launching() *descriptor.Descriptor {
	return n.launching
}

// Breadcrumbs returns a copy of the trail, root label first
func (n *Navigator) Breadcrumbs() []string {
	return append([]string(nil), n.breadcrumbs...)
}

// Depth is the number of categories entered below the root
func (n *Navigator) Depth() int {
	return len(n.breadcrumbs) - 1
}

// CurrentDir returns the directory being browsed
func (n *Navigator) CurrentDir() string {
	return n.currentDir
}

// Items returns the entries of the current directory
func (n *Navigator) Items() []*descriptor.Descriptor {
	return n.listing.Items
}

// ScanErrors returns the rejected entries of the current directory
func (n *Navigator) ScanErrors() []ScanError {
	return n.listing.Errors
}
