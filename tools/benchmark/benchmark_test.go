package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatencyStats(t *testing.T) {
	avg, minLat := latencyStats(0, 0, 1<<63-1)
	assert.Zero(t, avg)
	assert.Zero(t, minLat)

	avg, minLat = latencyStats(4, 1000, 120)
	assert.Equal(t, 250.0, avg)
	assert.Equal(t, int64(120), minLat)
}

func TestRandomParcel_Positive(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		p := randomParcel(r)
		assert.Positive(t, p.WidthCm)
		assert.Positive(t, p.HeightCm)
		assert.Positive(t, p.LengthCm)
		assert.Positive(t, p.MassKg)
	}
}
