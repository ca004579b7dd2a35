package sim

// clamp01 clips a value into [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// clamp clips a value into [lo,hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// validProb reports whether p is a probability.
func validProb(p float64) bool { return p >= 0.0 && p <= 1.0 }

// normalizeProbs clips negative and overflowing entries and rescales the
// vector to sum to 1. If clipping removed all mass it falls back to the
// uniform distribution, so the vector is always a valid categorical.
func normalizeProbs(p *[ActionCount]float64) {
	total := 0.0
	for i := range p {
		p[i] = clamp01(p[i])
		total += p[i]
	}
	if total <= 0 {
		for i := range p {
			p[i] = 1.0 / ActionCount
		}
		return
	}
	for i := range p {
		p[i] /= total
	}
}
