// Package server: wire payloads and their translation to engine types.
package server

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dynroute/engine"
	"github.com/katalvlaran/dynroute/geometry"
	"github.com/katalvlaran/dynroute/trafficlight"
)

// Effect kind discriminators accepted by POST /effects.
const (
	kindJam   = "jam"
	kindRain  = "rain"
	kindBlock = "block"
	kindLight = "traffic_light"
)

var errBadEffectPayload = errors.New("server: malformed effect payload")

type pointPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p pointPayload) point() geometry.Point { return geometry.Point{X: p.X, Y: p.Y} }

type segmentPayload struct {
	A pointPayload `json:"a"`
	B pointPayload `json:"b"`
}

func (s segmentPayload) segment() engine.Segment {
	return engine.Segment{A: s.A.point(), B: s.B.point()}
}

type rectPayload struct {
	A pointPayload `json:"a"`
	B pointPayload `json:"b"`
}

func (r rectPayload) rect() geometry.Rect {
	return geometry.NewRect(r.A.point(), r.B.point())
}

type durationsPayload struct {
	Red    int `json:"red_s"`
	Yellow int `json:"yellow_s"`
	Green  int `json:"green_s"`
}

type ratesPayload struct {
	Red    float64 `json:"red"`
	Yellow float64 `json:"yellow"`
	Green  float64 `json:"green"`
}

// effectRequest is the POST /effects body. Kind selects the shape:
// jam/block/traffic_light carry a line, rain carries an area plus
// either a named intensity or a raw delta.
type effectRequest struct {
	Kind      string            `json:"kind"`
	Line      *segmentPayload   `json:"line,omitempty"`
	Area      *rectPayload      `json:"area,omitempty"`
	Delta     *float64          `json:"delta,omitempty"`
	Intensity string            `json:"intensity,omitempty"`
	Durations *durationsPayload `json:"durations,omitempty"`
	Rates     *ratesPayload     `json:"rates,omitempty"`
}

// toEffect translates the payload into an engine effect.
func (r effectRequest) toEffect() (engine.Effect, error) {
	switch r.Kind {
	case kindJam:
		if r.Line == nil {
			return nil, fmt.Errorf("%w: jam requires a line", errBadEffectPayload)
		}
		delta := engine.DefaultJamDelta
		if r.Delta != nil {
			delta = *r.Delta
		}

		return engine.TrafficJam{Line: r.Line.segment(), Delta: delta}, nil

	case kindRain:
		if r.Area == nil {
			return nil, fmt.Errorf("%w: rain requires an area", errBadEffectPayload)
		}
		delta, err := r.rainDelta()
		if err != nil {
			return nil, err
		}

		return engine.Rain{Area: r.Area.rect(), Delta: delta}, nil

	case kindBlock:
		if r.Line == nil {
			return nil, fmt.Errorf("%w: block requires a line", errBadEffectPayload)
		}

		return engine.Block{Line: r.Line.segment()}, nil

	case kindLight:
		if r.Line == nil {
			return nil, fmt.Errorf("%w: traffic_light requires a line", errBadEffectPayload)
		}
		tl := engine.TrafficLight{Line: r.Line.segment()}
		if r.Durations != nil {
			tl.Durations = trafficlight.Durations{
				Red: r.Durations.Red, Yellow: r.Durations.Yellow, Green: r.Durations.Green,
			}
		}
		if r.Rates != nil {
			tl.Rates = trafficlight.Rates{
				Red: r.Rates.Red, Yellow: r.Rates.Yellow, Green: r.Rates.Green,
			}
		}

		return tl, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", errBadEffectPayload, r.Kind)
	}
}

// rainDelta resolves the named intensity or the raw delta, in that
// order of preference.
func (r effectRequest) rainDelta() (float64, error) {
	if r.Intensity != "" {
		d, ok := engine.RainIntensity(r.Intensity).Delta()
		if !ok {
			return 0, fmt.Errorf("%w: unknown intensity %q", errBadEffectPayload, r.Intensity)
		}

		return d, nil
	}
	if r.Delta != nil {
		return *r.Delta, nil
	}

	return 0, fmt.Errorf("%w: rain requires intensity or delta", errBadEffectPayload)
}

// effectView is the API representation of a registered effect.
// Signal is populated for traffic lights only.
type effectView struct {
	ID     string               `json:"id"`
	Kind   string               `json:"kind"`
	Signal *engine.SignalStatus `json:"signal,omitempty"`
}

// kindOf maps a registered effect back to its wire discriminator.
func kindOf(eff engine.Effect) string {
	switch eff.(type) {
	case engine.TrafficJam:
		return kindJam
	case engine.Rain:
		return kindRain
	case engine.Block:
		return kindBlock
	case engine.TrafficLight:
		return kindLight
	default:
		return "unknown"
	}
}

// routeRequest is the PUT /route body. Endpoints are given either as
// node ids or as coordinates snapped to the nearest node; ids win when
// both are present.
type routeRequest struct {
	Start      string        `json:"start,omitempty"`
	End        string        `json:"end,omitempty"`
	StartPoint *pointPayload `json:"start_point,omitempty"`
	EndPoint   *pointPayload `json:"end_point,omitempty"`
}

// routeView pairs the selected endpoints with the search outcome.
type routeView struct {
	Start  string            `json:"start"`
	End    string            `json:"end"`
	Result engine.PathResult `json:"result"`
}

// healthView is the GET /healthz body.
type healthView struct {
	Status string `json:"status"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
}

// wsEvent is the envelope broadcast to every WebSocket client.
type wsEvent struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type idResponse struct {
	ID string `json:"id"`
}
