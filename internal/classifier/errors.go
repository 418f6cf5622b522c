package classifier

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is matched by every DimensionError.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidMass is matched by every MassError.
	ErrInvalidMass = errors.New("invalid mass")
)

// DimensionError is returned when a width, height or length is not a positive number.
type DimensionError struct {
	Width  float64
	Height float64
	Length float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: dimensions must be positive non-zero values (got %gx%gx%g cm)",
		ErrInvalidDimensions, e.Width, e.Height, e.Length)
}

// Is lets errors.Is match ErrInvalidDimensions
func (e *DimensionError) Is(target error) bool {
	return target == ErrInvalidDimensions
}

// MassError is returned when the mass is not a positive number.
type MassError struct {
	Mass float64
}

func (e *MassError) Error() string {
	return fmt.Sprintf("%v: mass must be a positive non-zero value (got %g kg)", ErrInvalidMass, e.Mass)
}

// Is lets errors.Is match ErrInvalidMass
func (e *MassError) Is(target error) bool {
	return target == ErrInvalidMass
}

// IsInputError reports whether err was caused by invalid parcel measurements
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDimensions) || errors.Is(err, ErrInvalidMass)
}
