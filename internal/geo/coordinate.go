// Package geo holds the great-circle distance math and proximity ranking
// used to order businesses around a reference point.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCoordinate is returned when a latitude or longitude is out of
// range or is not a finite number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate returns a validated Coordinate.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// FromOptional builds a Coordinate from nullable components. Both must be
// present; a record carrying only one of them is treated as unlocated.
func FromOptional(lat, lon *float64) (Coordinate, bool) {
	if lat == nil || lon == nil {
		return Coordinate{}, false
	}
	return Coordinate{Lat: *lat, Lon: *lon}, true
}

// Validate returns an error wrapping ErrInvalidCoordinate when either
// component is non-finite or out of range.
func (c Coordinate) Validate() error {
	if err := ValidateLatitude(c.Lat); err != nil {
		return err
	}
	return ValidateLongitude(c.Lon)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// ValidateLatitude checks that lat is finite and within [-90, 90].
func ValidateLatitude(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return fmt.Errorf("%w: latitude must be a finite number", ErrInvalidCoordinate)
	}
	if lat < -90.0 || lat > 90.0 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidCoordinate)
	}
	return nil
}

// ValidateLongitude checks that lon is finite and within [-180, 180].
func ValidateLongitude(lon float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return fmt.Errorf("%w: longitude must be a finite number", ErrInvalidCoordinate)
	}
	if lon < -180.0 || lon > 180.0 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidCoordinate)
	}
	return nil
}
