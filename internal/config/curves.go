// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/openfan/openfand/internal/apierr"
)

// CurvePoint is one (temperature, PWM) knot of a thermal curve.
type CurvePoint struct {
	TempC float64 `toml:"temp_c"`
	PWM   int     `toml:"pwm"`
}

// Curve is a named, strictly-ascending-in-temperature sequence of at
// least two points. Curves are pure data: the daemon interpolates them
// on demand but never drives PWM from one on a timer.
type Curve struct {
	Points []CurvePoint `toml:"points"`
}

type curvesFile struct {
	Curves map[string]Curve `toml:"curves"`
}

// CurveStore holds one controller's named thermal curves.
type CurveStore struct {
	s *store[Curve]
}

func newCurveStore(path string) *CurveStore {
	return &CurveStore{s: newStore(path, encodeCurves, decodeCurves)}
}

func encodeCurves(m map[string]Curve) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(curvesFile{Curves: m}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeCurves(data []byte) (map[string]Curve, []string, error) {
	var f curvesFile
	meta, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, nil, err
	}
	return f.Curves, undecodedStrings(meta), nil
}

// defaultCurves returns the three built-in thermal curves documented in
// spec §4.5: quiet, balanced, and aggressive.
func defaultCurves() map[string]Curve {
	return map[string]Curve{
		"quiet": {Points: []CurvePoint{
			{TempC: 30, PWM: 20}, {TempC: 50, PWM: 35}, {TempC: 70, PWM: 60}, {TempC: 85, PWM: 100},
		}},
		"balanced": {Points: []CurvePoint{
			{TempC: 30, PWM: 30}, {TempC: 50, PWM: 55}, {TempC: 70, PWM: 80}, {TempC: 85, PWM: 100},
		}},
		"aggressive": {Points: []CurvePoint{
			{TempC: 25, PWM: 40}, {TempC: 45, PWM: 70}, {TempC: 60, PWM: 100},
		}},
	}
}

// Load reads the backing file, seeding the three built-in curves if it
// does not exist yet.
func (c *CurveStore) Load() error {
	return c.s.load(func() map[string]Curve { return defaultCurves() })
}

// Get returns the named curve.
func (c *CurveStore) Get(name string) (Curve, bool) {
	return c.s.get(name)
}

// GetOrErr returns the named curve or *NotFound.
func (c *CurveStore) GetOrErr(name string) (Curve, error) {
	curve, ok := c.Get(name)
	if !ok {
		return Curve{}, apierr.Newf(apierr.NotFound, "curve %q not found", name)
	}
	return curve, nil
}

// All returns a snapshot of every stored curve.
func (c *CurveStore) All() map[string]Curve {
	return c.s.snapshot()
}

func validateCurveShape(curve Curve) error {
	if len(curve.Points) < 2 {
		return apierr.New(apierr.InvalidInput, "curve must have at least two points")
	}
	for i, p := range curve.Points {
		if p.TempC < -50 || p.TempC > 150 {
			return apierr.Newf(apierr.InvalidInput, "curve point[%d] temp_c = %v out of range -50..=150", i, p.TempC)
		}
		if p.PWM < 0 || p.PWM > 100 {
			return apierr.Newf(apierr.InvalidInput, "curve point[%d] pwm = %d out of range 0..=100", i, p.PWM)
		}
		if i > 0 && p.TempC <= curve.Points[i-1].TempC {
			return apierr.Newf(apierr.InvalidInput, "curve points must be strictly ascending in temp_c: point[%d] = %v does not exceed point[%d] = %v", i, p.TempC, i-1, curve.Points[i-1].TempC)
		}
	}
	return nil
}

// Set installs a named curve, failing *InvalidInput if its points
// violate ordering or range constraints, or *Config if the save fails.
func (c *CurveStore) Set(name string, curve Curve) error {
	if name == "" {
		return apierr.New(apierr.InvalidInput, "curve name must not be empty")
	}
	if err := validateCurveShape(curve); err != nil {
		return err
	}
	return c.s.set(name, curve)
}

// Delete removes the named curve, failing *NotFound if absent.
func (c *CurveStore) Delete(name string) error {
	return c.s.delete(name)
}

// Interpolate evaluates curve at temperature t: piecewise-linear between
// its points, clamped to the first/last point's pwm outside the curve's
// range, per spec §4.7.
func Interpolate(curve Curve, t float64) int {
	points := curve.Points
	if len(points) == 0 {
		return 0
	}
	if t <= points[0].TempC {
		return points[0].PWM
	}
	last := points[len(points)-1]
	if t >= last.TempC {
		return last.PWM
	}
	for i := 1; i < len(points); i++ {
		p1, p2 := points[i-1], points[i]
		if t > p2.TempC {
			continue
		}
		if t == p1.TempC {
			return p1.PWM
		}
		frac := (t - p1.TempC) / (p2.TempC - p1.TempC)
		value := float64(p1.PWM) + frac*float64(p2.PWM-p1.PWM)
		return clampPWM(int(math.Round(value)))
	}
	return last.PWM
}

func clampPWM(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
