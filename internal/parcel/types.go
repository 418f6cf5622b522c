package parcel

// Parcel holds the measurements of a single package.
// Dimensions are in centimeters, mass in kilograms.
type Parcel struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
	LengthCm float64 `json:"length_cm"`
	MassKg   float64 `json:"mass_kg"`
}

// Signals contains the handling predicates derived from a parcel
type Signals struct {
	VolumeCm3 float64 `json:"volume_cm3"`

	// Bulky triggers
	BulkyByVolume bool `json:"bulky_by_volume"` // volume >= MaxVolumeCm3
	BulkyByWidth  bool `json:"bulky_by_width"`  // width >= MaxDimensionCm
	BulkyByHeight bool `json:"bulky_by_height"` // height >= MaxDimensionCm
	BulkyByLength bool `json:"bulky_by_length"` // length >= MaxDimensionCm

	// Computed
	Bulky bool `json:"bulky"`
	Heavy bool `json:"heavy"` // mass >= MaxMassKg
}
