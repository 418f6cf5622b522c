// Package classifier routes parcels to a handling stack based on their
// dimensions and mass.
package classifier

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muliwe/go-package-sorter/internal/parcel"
)

// Result is a classification together with the signals that produced it
type Result struct {
	RequestID string         `json:"request_id"`
	Timestamp time.Time      `json:"timestamp"`
	Parcel    parcel.Parcel  `json:"parcel"`
	Signals   parcel.Signals `json:"signals"`
	Category  Category       `json:"category"`
	Reason    string         `json:"reason"`
}

// Classify returns the handling category for a parcel measured in
// centimeters and kilograms. Dimensions are validated before mass.
func Classify(width, height, length, mass float64) (Category, error) {
	p := parcel.Parcel{WidthCm: width, HeightCm: height, LengthCm: length, MassKg: mass}
	if err := Validate(p); err != nil {
		return "", err
	}
	return categorize(parcel.ExtractSignals(p)), nil
}

// Validate checks that every measurement is a positive finite number.
// The first failing group wins: a DimensionError hides a MassError.
func Validate(p parcel.Parcel) error {
	if !positive(p.WidthCm) || !positive(p.HeightCm) || !positive(p.LengthCm) {
		return &DimensionError{Width: p.WidthCm, Height: p.HeightCm, Length: p.LengthCm}
	}
	if !positive(p.MassKg) {
		return &MassError{Mass: p.MassKg}
	}
	return nil
}

// positive is false for NaN and both infinities
func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 1)
}

func categorize(s parcel.Signals) Category {
	switch {
	case s.Bulky && s.Heavy:
		return Rejected
	case s.Bulky || s.Heavy:
		return Special
	default:
		return Standard
	}
}

// Classifier wraps Classify with request metadata and an explanation
type Classifier struct{}

// New creates a new classifier
func New() *Classifier {
	return &Classifier{}
}

// Evaluate validates and classifies a parcel
func (c *Classifier) Evaluate(p parcel.Parcel) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	signals := parcel.ExtractSignals(p)

	return Result{
		RequestID: uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Parcel:    p,
		Signals:   signals,
		Category:  categorize(signals),
		Reason:    c.reason(signals),
	}, nil
}

// reason lists the thresholds a parcel met
func (c *Classifier) reason(s parcel.Signals) string {
	var bulky []string
	if s.BulkyByVolume {
		bulky = append(bulky, fmt.Sprintf("volume >= %d cm3", parcel.MaxVolumeCm3))
	}
	if s.BulkyByWidth {
		bulky = append(bulky, fmt.Sprintf("width >= %d cm", parcel.MaxDimensionCm))
	}
	if s.BulkyByHeight {
		bulky = append(bulky, fmt.Sprintf("height >= %d cm", parcel.MaxDimensionCm))
	}
	if s.BulkyByLength {
		bulky = append(bulky, fmt.Sprintf("length >= %d cm", parcel.MaxDimensionCm))
	}

	var parts []string
	if len(bulky) > 0 {
		parts = append(parts, "Bulky: "+strings.Join(bulky, ", "))
	}
	if s.Heavy {
		parts = append(parts, fmt.Sprintf("Heavy: mass >= %d kg", parcel.MaxMassKg))
	}

	if len(parts) == 0 {
		return "Within standard limits"
	}
	return strings.Join(parts, "; ")
}
