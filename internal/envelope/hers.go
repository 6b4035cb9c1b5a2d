package envelope

// EstimateHERSIndex ratios rated against reference site energy on a 100 scale:
//
//	100 × (ratedHeat + ratedCool + other) / (refHeat + refCool + other)
//
// other is non-envelope energy (lighting, appliances, hot water) held equal on
// both sides. A non-positive reference total has no meaningful ratio and returns
// 100; it does not occur for realistic houses.
func EstimateHERSIndex(ratedHeatKWh, ratedCoolKWh, refHeatKWh, refCoolKWh, otherKWh float64) float64 {
	refTotal := refHeatKWh + refCoolKWh + otherKWh
	if !(refTotal > 0) {
		return 100
	}
	return 100 * (ratedHeatKWh + ratedCoolKWh + otherKWh) / refTotal
}
