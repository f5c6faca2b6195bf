package astro

import "math"

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Normalize maps an angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// math.Mod of a tiny negative value can round back up to 360.
	if d >= 360 {
		d = 0
	}
	return d
}

// SignedDelta wraps an angular difference into (-180, 180]. Every
// difference that may straddle the 0/360 seam must pass through here
// before its sign or magnitude is used.
func SignedDelta(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r <= -180 {
		r += 360
	} else if r > 180 {
		r -= 360
	}
	return r
}

func sinD(deg float64) float64 { return math.Sin(deg * deg2rad) }
func cosD(deg float64) float64 { return math.Cos(deg * deg2rad) }
func tanD(deg float64) float64 { return math.Tan(deg * deg2rad) }

func atan2D(y, x float64) float64 { return math.Atan2(y, x) * rad2deg }
