// Package registry holds the closed table of catalog type identifiers.
package registry

import "sort"

// Family groups type identifiers that run the same kind of software
type Family int

const (
	FamilyLegacyPC Family = iota
	FamilyConsole8Bit
	FamilyConsole16Bit
	FamilyHandheld
	FamilyTextAdventure
)

// String returns a display name for the family
func (f Family) String() string {
	switch f {
	case FamilyLegacyPC:
		return "legacy-pc"
	case FamilyConsole8Bit:
		return "console-8bit"
	case FamilyConsole16Bit:
		return "console-16bit"
	case FamilyHandheld:
		return "handheld"
	case FamilyTextAdventure:
		return "text-adventure"
	default:
		return "unknown"
	}
}

// Strategy is how a runtime's command line is built
type Strategy int

const (
	StrategyDOSBox   Strategy = iota // Mount the entry dir as a virtual drive
	StrategyDirect                   // program <resource>
	StrategyTerminal                 // Interpreter inside a fresh terminal window
)

// String returns a display name for the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyDOSBox:
		return "dosbox"
	case StrategyDirect:
		return "direct"
	case StrategyTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Runtime is the concrete program a type identifier resolves to
type Runtime struct {
	Program  string
	Family   Family
	Strategy Strategy
}

type entry struct {
	family           Family
	requiresResource bool
	runtime          string // concrete identifier this one resolves to
}

var runtimes = map[string]Runtime{
	"dosbox":             {Program: "dosbox", Family: FamilyLegacyPC, Strategy: StrategyDOSBox},
	"fceux":              {Program: "fceux", Family: FamilyConsole8Bit, Strategy: StrategyDirect},
	"snes9x-gtk":         {Program: "snes9x-gtk", Family: FamilyConsole16Bit, Strategy: StrategyDirect},
	"visualboyadvance-m": {Program: "visualboyadvance-m", Family: FamilyHandheld, Strategy: StrategyDirect},
	"frotz":              {Program: "frotz", Family: FamilyTextAdventure, Strategy: StrategyTerminal},
	"grotz":              {Program: "grotz", Family: FamilyTextAdventure, Strategy: StrategyDirect},
}

// The short names (dos, nes, ...) pick the default runtime for a family;
// naming a runtime directly pins an alternate one.
var types = map[string]entry{
	// DOS
	"dos":    {FamilyLegacyPC, false, "dosbox"},
	"dosbox": {FamilyLegacyPC, false, "dosbox"},

	// NES
	"nes":   {FamilyConsole8Bit, true, "fceux"},
	"fceux": {FamilyConsole8Bit, true, "fceux"},

	// SNES
	"snes":       {FamilyConsole16Bit, true, "snes9x-gtk"},
	"snes9x-gtk": {FamilyConsole16Bit, true, "snes9x-gtk"},

	// GBA
	"vba":                {FamilyHandheld, true, "visualboyadvance-m"},
	"visualboyadvance-m": {FamilyHandheld, true, "visualboyadvance-m"},

	// Z-Machine
	"zmachine": {FamilyTextAdventure, true, "frotz"},
	"frotz":    {FamilyTextAdventure, true, "frotz"},
	"grotz":    {FamilyTextAdventure, true, "grotz"},
}

// IsValid reports whether id is a known type identifier
func IsValid(id string) bool {
	_, ok := types[id]
	return ok
}

// RequiresResource reports whether entries of type id must name a resource file
func RequiresResource(id string) bool {
	return types[id].requiresResource
}

// FamilyOf returns the family of id
func FamilyOf(id string) (Family, bool) {
	e, ok := types[id]
	return e.family, ok
}

// Resolve maps id (alias or concrete) to the runtime that is actually invoked
func Resolve(id string) (Runtime, bool) {
	e, ok := types[id]
	if !ok {
		return Runtime{}, false
	}
	return runtimes[e.runtime], true
}

// RuntimeNames returns the concrete runtime identifiers, sorted
func RuntimeNames() []string {
	names := make([]string, 0, len(runtimes))
	for name := range runtimes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns every valid type identifier, sorted
func Types() []string {
	ids := make([]string, 0, len(types))
	for id := range types {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
