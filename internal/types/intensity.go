package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidIntensity reports an intensity outside the four defined levels.
var ErrInvalidIntensity = errors.New("invalid intensity")

// Intensity is the ordinal strength of an emotion event. The zero value is not a level.
type Intensity int

const (
	IntensityLow Intensity = iota + 1
	IntensityMedium
	IntensityHigh
	IntensityVeryHigh
)

var intensityNames = map[Intensity]string{
	IntensityLow:      "Low",
	IntensityMedium:   "Medium",
	IntensityHigh:     "High",
	IntensityVeryHigh: "Very High",
}

func (i Intensity) String() string {
	if n, ok := intensityNames[i]; ok {
		return n
	}
	return fmt.Sprintf("Intensity(%d)", int(i))
}

// Valid reports whether i is one of the four defined levels.
func (i Intensity) Valid() bool {
	_, ok := intensityNames[i]
	return ok
}

// IsHigh reports whether i counts toward the engagement score.
func (i Intensity) IsHigh() bool {
	return i == IntensityHigh || i == IntensityVeryHigh
}

// ParseIntensity matches s against the level names, ignoring case and surrounding space.
func ParseIntensity(s string) (Intensity, error) {
	t := strings.TrimSpace(s)
	for lvl, name := range intensityNames {
		if strings.EqualFold(t, name) {
			return lvl, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidIntensity, s)
}

func (i Intensity) MarshalJSON() ([]byte, error) {
	if !i.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIntensity, int(i))
	}
	return json.Marshal(i.String())
}

func (i *Intensity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidIntensity, string(b))
	}
	lvl, err := ParseIntensity(s)
	if err != nil {
		return err
	}
	*i = lvl
	return nil
}
