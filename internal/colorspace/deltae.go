package colorspace

import "math"

// DeltaECMC returns the CMC(l:c) color difference with l = c = 1.
//
// CMC is not symmetric: ref is the reference (standard) color and sample is
// measured against it. Callers that need a stable value for an unordered pair
// must pick a canonical argument order.
func DeltaECMC(ref, sample RGB) float64 {
	l1, a1, b1 := lab100(ref)
	l2, a2, b2 := lab100(sample)
	return cmc(l1, a1, b1, l2, a2, b2, 1, 1)
}

// lab100 returns CIE L*a*b* (D65) on the conventional 0-100 L* scale.
// go-colorful reports L in [0,1] and a/b scaled by the same factor.
func lab100(c RGB) (l, a, b float64) {
	l, a, b = c.colorful().Lab()
	return l * 100, a * 100, b * 100
}

func cmc(l1, a1, b1, l2, a2, b2, pl, pc float64) float64 {
	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)

	dL := l1 - l2
	dC := c1 - c2
	da := a1 - a2
	db := b1 - b2
	dH2 := da*da + db*db - dC*dC
	if dH2 < 0 {
		dH2 = 0
	}

	h1 := math.Atan2(b1, a1) * 180 / math.Pi
	if h1 < 0 {
		h1 += 360
	}

	var t float64
	if h1 >= 164 && h1 <= 345 {
		t = 0.56 + math.Abs(0.2*math.Cos((h1+168)*math.Pi/180))
	} else {
		t = 0.36 + math.Abs(0.4*math.Cos((h1+35)*math.Pi/180))
	}

	c14 := c1 * c1 * c1 * c1
	f := math.Sqrt(c14 / (c14 + 1900))

	sl := 0.511
	if l1 >= 16 {
		sl = 0.040975 * l1 / (1 + 0.01765*l1)
	}
	sc := 0.0638*c1/(1+0.0131*c1) + 0.638
	sh := sc * (f*t + 1 - f)

	termL := dL / (pl * sl)
	termC := dC / (pc * sc)
	return math.Sqrt(termL*termL + termC*termC + dH2/(sh*sh))
}
