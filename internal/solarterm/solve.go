package solarterm

import (
	"fmt"
	"math"
	"strings"

	"github.com/papapumpkin/almanac/internal/astro"
	"github.com/papapumpkin/almanac/internal/julian"
)

// Solver limits.
const (
	NewtonMaxIter   = 30
	NewtonTolerance = 1e-5 // degrees

	BisectHalfWidth = 15.0 // days either side of the estimate
	BisectTolerance = 1e-4 // days, about 8.6 seconds
	BisectMaxIter   = 64
)

// Method selects a root-finding algorithm.
type Method int

const (
	// Newton steps by the wrapped longitude error divided by the Sun's mean
	// motion.
	Newton Method = iota
	// Bisection halves a bracket around an estimate.
	Bisection
)

// String returns the name accepted by ParseMethod.
func (m Method) String() string {
	switch m {
	case Newton:
		return "newton"
	case Bisection:
		return "bisect"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod resolves "newton" or "bisect"; the empty string selects
// Newton.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "newton":
		return Newton, nil
	case "bisect", "bisection":
		return Bisection, nil
	}
	return 0, fmt.Errorf("solarterm: unknown root method %q", s)
}

// Solution is a converged instant together with solver diagnostics.
type Solution struct {
	JD         julian.JD
	Iterations int
	// Residual is the wrapped apparent solar longitude minus the target at
	// JD, in degrees.
	Residual float64
}

// Solve dispatches to the selected algorithm.
func (m Method) Solve(target float64, estimate julian.JD) (Solution, error) {
	if m == Bisection {
		return SolveBisect(target, estimate)
	}
	return SolveNewton(target, estimate)
}

// SolveNewton finds the instant nearest start at which the Sun's apparent
// longitude equals target. The first correction jumps the whole wrapped
// distance at mean motion before refining.
func SolveNewton(target float64, start julian.JD) (Solution, error) {
	target = astro.Normalize(target)

	jd := start + julian.JD(astro.SignedDelta(target-astro.SunLongitude(start))/astro.SunMeanMotion)
	var delta float64
	for i := 1; i <= NewtonMaxIter; i++ {
		delta = astro.SignedDelta(target - astro.SunLongitude(jd))
		if math.Abs(delta) < NewtonTolerance {
			return Solution{JD: jd, Iterations: i, Residual: -delta}, nil
		}
		jd += julian.JD(delta / astro.SunMeanMotion)
	}
	return Solution{JD: jd, Iterations: NewtonMaxIter, Residual: -delta},
		fmt.Errorf("solarterm: newton for %.4f from %.4f: %w", target, float64(start), ErrNotConverged)
}

// SolveBisect finds the instant within BisectHalfWidth days of estimate at
// which the Sun's apparent longitude equals target.
func SolveBisect(target float64, estimate julian.JD) (Solution, error) {
	target = astro.Normalize(target)
	f := func(jd julian.JD) float64 {
		return astro.SignedDelta(astro.SunLongitude(jd) - target)
	}

	lo := estimate - BisectHalfWidth
	hi := estimate + BisectHalfWidth
	if f(lo) > 0 || f(hi) < 0 {
		return Solution{}, fmt.Errorf("solarterm: bisect for %.4f around %.4f: %w", target, float64(estimate), ErrNoBracket)
	}

	i := 0
	for ; i < BisectMaxIter && hi-lo >= BisectTolerance; i++ {
		mid := (lo + hi) / 2
		if f(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	jd := (lo + hi) / 2
	return Solution{JD: jd, Iterations: i, Residual: f(jd)}, nil
}

// FindTimeAtLongitude returns the instant nearest start at which the Sun
// reaches target, by linear correction.
func FindTimeAtLongitude(target float64, start julian.JD) (julian.JD, error) {
	sol, err := SolveNewton(target, start)
	if err != nil {
		return 0, err
	}
	return sol.JD, nil
}

// Estimate returns a rough instant for term index i in year, a few days at
// most from the true one for years near the present.
func Estimate(year, i int) julian.JD {
	jan1 := julian.FromCivil(julian.Civil{Year: year, Month: 1, Day: 1}, 0)
	return jan1 + julian.JD(5.5+float64(i)*365.2422/Count)
}
