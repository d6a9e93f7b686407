package dragdrop

import (
	"math"

	"fyne.io/fyne/v2"
)

// settleThreshold is the remaining amplitude treated as settled at t = 1.
const settleThreshold = 0.001

// SpringCurve returns an easing curve for a damped spring that starts at 0,
// settles at 1 by the end of the animation and may overshoot on the way.
func SpringCurve(damping, velocity float32) fyne.AnimationCurve {
	zeta := float64(damping)
	if zeta <= 0 {
		zeta = 0.05
	}
	v0 := float64(velocity)
	omega := -math.Log(settleThreshold) / math.Min(zeta, 1)

	return func(t float32) float32 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := float64(t)
		decay := math.Exp(-zeta * omega * x)

		var offset float64
		if zeta < 1 {
			wd := omega * math.Sqrt(1-zeta*zeta)
			offset = decay * (math.Cos(wd*x) + (zeta*omega-v0)/wd*math.Sin(wd*x))
		} else {
			offset = decay * (1 + (omega-v0)*x)
		}
		return float32(1 - offset)
	}
}
