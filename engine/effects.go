// Package engine: the effect model. Effects are value descriptions of
// placed overlays; they hold no graph references and are resolved
// geometrically on every recalculation.
package engine

import (
	"github.com/katalvlaran/dynroute/geometry"
	"github.com/katalvlaran/dynroute/trafficlight"
)

// EffectID is the opaque handle external collaborators hold for a placed
// effect. The engine's registry is the only authoritative owner of the
// effect data itself.
type EffectID string

// Segment is a drawn line: the geometric footprint of jam, block and
// traffic-light effects.
type Segment struct {
	A, B geometry.Point
}

// Effect is the tagged union of placeable overlays. The set is sealed:
// exactly TrafficJam, Rain, Block and TrafficLight.
type Effect interface {
	isEffect()
}

// TrafficJam raises the weight of every edge whose midpoint lies within
// the effect threshold of Line by Delta.
type TrafficJam struct {
	Line  Segment
	Delta float64
}

// Rain raises the weight of every edge whose midpoint lies inside Area
// by Delta.
type Rain struct {
	Area  geometry.Rect
	Delta float64
}

// Block forces every edge whose segment crosses Line to +Inf,
// unconditionally. Blocks are applied after magnitude deltas and win
// over them.
type Block struct {
	Line Segment
}

// TrafficLight penalizes every edge near Line by the owned signal's
// current weight modifier. Zero-value Durations/Rates select the stock
// signal configuration. The engine constructs, starts and, on removal,
// stops the signal instance; callers never touch it directly.
type TrafficLight struct {
	Line      Segment
	Durations trafficlight.Durations
	Rates     trafficlight.Rates
}

func (TrafficJam) isEffect()   {}
func (Rain) isEffect()         {}
func (Block) isEffect()        {}
func (TrafficLight) isEffect() {}

// RainIntensity names a preset rain delta.
type RainIntensity string

// Rain intensity presets, in increasing severity.
const (
	Drizzle   RainIntensity = "Drizzle"
	LightRain RainIntensity = "Light Rain"
	HeavyRain RainIntensity = "Heavy Rain"
	Downpour  RainIntensity = "Downpour"
)

// rainDeltas maps each preset to its weight increase.
var rainDeltas = map[RainIntensity]float64{
	Drizzle:   50,
	LightRain: 100,
	HeavyRain: 250,
	Downpour:  350,
}

// Delta returns the weight increase for the intensity, or false for an
// unknown name.
func (i RainIntensity) Delta() (float64, bool) {
	d, ok := rainDeltas[i]

	return d, ok
}

// Intensities returns the known preset names in increasing severity.
func Intensities() []RainIntensity {
	return []RainIntensity{Drizzle, LightRain, HeavyRain, Downpour}
}

// DefaultJamDelta is the stock weight increase of a traffic jam.
const DefaultJamDelta = 50.0
