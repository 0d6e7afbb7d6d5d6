package core

import "fmt"

// Intelligence is the difficulty level of bot players.
// The order is pinned: ordinals are persisted by the new-game preferences.
type Intelligence int

const (
	IntelligenceLevel1 Intelligence = iota
	IntelligenceLevel2
	IntelligenceLevel3
	IntelligenceLevel4
)

var intelligenceNames = []string{"LEVEL_1", "LEVEL_2", "LEVEL_3", "LEVEL_4"}

// Intelligences lists every bot intelligence in ordinal order.
func Intelligences() []Intelligence {
	return []Intelligence{IntelligenceLevel1, IntelligenceLevel2, IntelligenceLevel3, IntelligenceLevel4}
}

func (i Intelligence) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Intelligence(%d)", int(i))
	}
	return intelligenceNames[i]
}

// Valid reports whether i is a defined variant.
func (i Intelligence) Valid() bool {
	return i >= 0 && int(i) < len(intelligenceNames)
}

// DisplayName returns a human-readable label.
func (i Intelligence) DisplayName() string {
	switch i {
	case IntelligenceLevel1:
		return "Easy"
	case IntelligenceLevel2:
		return "Medium"
	case IntelligenceLevel3:
		return "Hard"
	case IntelligenceLevel4:
		return "Very Hard"
	default:
		return "Unknown"
	}
}

// ParseIntelligence resolves a symbolic name such as "LEVEL_2".
func ParseIntelligence(name string) (Intelligence, error) {
	idx, ok := lookupName(intelligenceNames, name)
	if !ok {
		return 0, fmt.Errorf("core: unknown intelligence %q: %w", name, ErrInvalidArgument)
	}
	return Intelligence(idx), nil
}

// IntelligenceFromOrdinal maps a persisted ordinal back to a variant.
func IntelligenceFromOrdinal(ord int) (Intelligence, bool) {
	i := Intelligence(ord)
	return i, i.Valid()
}

// MapSize selects how many land tiles a generated map has.
type MapSize int

const (
	MapSizeSmall MapSize = iota
	MapSizeMedium
	MapSizeLarge
	MapSizeXLarge
	MapSizeXXLarge
)

var mapSizeNames = []string{"SMALL", "MEDIUM", "LARGE", "XLARGE", "XXLARGE"}

// MapSizes lists every map size in ordinal order.
func MapSizes() []MapSize {
	return []MapSize{MapSizeSmall, MapSizeMedium, MapSizeLarge, MapSizeXLarge, MapSizeXXLarge}
}

func (s MapSize) String() string {
	if !s.Valid() {
		return fmt.Sprintf("MapSize(%d)", int(s))
	}
	return mapSizeNames[s]
}

// Valid reports whether s is a defined variant.
func (s MapSize) Valid() bool {
	return s >= 0 && int(s) < len(mapSizeNames)
}

// DisplayName returns a human-readable label.
func (s MapSize) DisplayName() string {
	switch s {
	case MapSizeSmall:
		return "Small"
	case MapSizeMedium:
		return "Medium"
	case MapSizeLarge:
		return "Large"
	case MapSizeXLarge:
		return "XLarge"
	case MapSizeXXLarge:
		return "XXLarge"
	default:
		return "Unknown"
	}
}

// ParseMapSize resolves a symbolic name such as "LARGE".
func ParseMapSize(name string) (MapSize, error) {
	idx, ok := lookupName(mapSizeNames, name)
	if !ok {
		return 0, fmt.Errorf("core: unknown map size %q: %w", name, ErrInvalidArgument)
	}
	return MapSize(idx), nil
}

// MapSizeFromOrdinal maps a persisted ordinal back to a variant.
func MapSizeFromOrdinal(ord int) (MapSize, bool) {
	s := MapSize(ord)
	return s, s.Valid()
}

// Density controls how compact the generated land mass is.
type Density int

const (
	DensityLoose Density = iota
	DensityMedium
	DensityDense
)

var densityNames = []string{"LOOSE", "MEDIUM", "DENSE"}

// Densities lists every density in ordinal order.
func Densities() []Density {
	return []Density{DensityLoose, DensityMedium, DensityDense}
}

func (d Density) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Density(%d)", int(d))
	}
	return densityNames[d]
}

// Valid reports whether d is a defined variant.
func (d Density) Valid() bool {
	return d >= 0 && int(d) < len(densityNames)
}

// DisplayName returns a human-readable label.
func (d Density) DisplayName() string {
	switch d {
	case DensityLoose:
		return "Loose"
	case DensityMedium:
		return "Medium"
	case DensityDense:
		return "Dense"
	default:
		return "Unknown"
	}
}

// ParseDensity resolves a symbolic name such as "DENSE".
func ParseDensity(name string) (Density, error) {
	idx, ok := lookupName(densityNames, name)
	if !ok {
		return 0, fmt.Errorf("core: unknown density %q: %w", name, ErrInvalidArgument)
	}
	return Density(idx), nil
}

// DensityFromOrdinal maps a persisted ordinal back to a variant.
func DensityFromOrdinal(ord int) (Density, bool) {
	d := Density(ord)
	return d, d.Valid()
}

func lookupName(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
