// Package parcel derives handling predicates from parcel measurements.
package parcel

// Handling thresholds. A value equal to a threshold triggers the predicate.
const (
	MaxVolumeCm3   = 1_000_000
	MaxDimensionCm = 150
	MaxMassKg      = 20
)

// ExtractSignals computes the bulky and heavy predicates for a parcel.
// It does not validate; callers reject non-positive measurements first.
func ExtractSignals(p Parcel) Signals {
	s := Signals{
		VolumeCm3:     p.WidthCm * p.HeightCm * p.LengthCm,
		BulkyByWidth:  p.WidthCm >= MaxDimensionCm,
		BulkyByHeight: p.HeightCm >= MaxDimensionCm,
		BulkyByLength: p.LengthCm >= MaxDimensionCm,
		Heavy:         p.MassKg >= MaxMassKg,
	}

	s.BulkyByVolume = s.VolumeCm3 >= MaxVolumeCm3
	s.Bulky = s.BulkyByVolume || s.BulkyByWidth || s.BulkyByHeight || s.BulkyByLength

	return s
}
