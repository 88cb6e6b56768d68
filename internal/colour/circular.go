package colour

import "math"

// Circular hue arithmetic. All helpers operate on the half-scale hue domain
// [0,180): the maximum distance between two hues is 90 half-units (180 degrees).
// Linear averaging of hues is wrong at the 0/179 boundary, so everything that
// aggregates hues must go through these helpers.

// HueDistance returns the shortest circular distance between two hues in
// half-units, in [0, 90].
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(h1 - h2)
	if diff > HueMax/2 {
		diff = HueMax - diff
	}
	return diff
}

// SignedHueDistance returns the signed circular offset from h1 to h2 in
// half-units, in (-90, 90].
func SignedHueDistance(h1, h2 float64) float64 {
	diff := math.Mod(h2-h1, HueMax)
	if diff > HueMax/2 {
		diff -= HueMax
	} else if diff <= -HueMax/2 {
		diff += HueMax
	}
	return diff
}

// hueToRadians maps a half-scale hue onto the full circle.
func hueToRadians(h float64) float64 {
	return h * 2.0 * math.Pi / 180.0
}

// radiansToHue maps an angle back to the half-scale hue domain [0,180).
func radiansToHue(theta float64) float64 {
	h := theta * 180.0 / (2.0 * math.Pi)
	h = math.Mod(h, HueMax)
	if h < 0 {
		h += HueMax
	}
	return h
}

// CircularMeanHue computes the weighted circular mean of hues in half-units.
// hues and weights must have equal length; zero total weight returns 0.
func CircularMeanHue(hues, weights []float64) float64 {
	var sin, cos, total float64
	for i, h := range hues {
		w := weights[i]
		theta := hueToRadians(h)
		sin += w * math.Sin(theta)
		cos += w * math.Cos(theta)
		total += w
	}
	if total == 0 {
		return 0
	}
	return radiansToHue(math.Atan2(sin/total, cos/total))
}

// CircularHueSpread computes the weighted circular standard deviation of hues
// in half-units. A single hue (or identical hues) yields 0.
func CircularHueSpread(hues, weights []float64) float64 {
	var sin, cos, total float64
	for i, h := range hues {
		w := weights[i]
		theta := hueToRadians(h)
		sin += w * math.Sin(theta)
		cos += w * math.Cos(theta)
		total += w
	}
	if total == 0 {
		return 0
	}
	// Resultant length R shrinks from 1 toward 0 as hues disperse.
	r := math.Hypot(sin/total, cos/total)
	if r >= 1 {
		return 0
	}
	if r <= 1e-12 {
		return HueMax / 2
	}
	spread := math.Sqrt(-2.0 * math.Log(r)) // radians on the doubled circle
	spread = spread * 180.0 / (2.0 * math.Pi)
	return math.Min(spread, HueMax/2)
}
