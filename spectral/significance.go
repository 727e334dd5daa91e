package spectral

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// falseAlarmComplement converts a variance-normalized periodogram peak into a
// significance score in [0,1].
//
// Under the white-noise null hypothesis a normalized Lomb-Scargle ordinate z
// follows half a chi-squared distribution with two degrees of freedom, so the
// single-frequency exceedance probability is Surv(2z) = exp(-z). Scanning
// independentFreqs candidate frequencies raises the chance of a spurious
// peak; the returned score is (1 - exp(-z))^m, the probability that no noise
// fluctuation anywhere in the scan reaches the observed peak.
func falseAlarmComplement(z float64, independentFreqs int) float64 {
	if math.IsNaN(z) || z <= 0 || independentFreqs <= 0 {
		return 0
	}

	null := distuv.ChiSquared{K: 2}
	pSingle := null.Survival(2 * z)

	sig := math.Pow(1-pSingle, float64(independentFreqs))

	if math.IsNaN(sig) || sig < 0 {
		return 0
	}

	if sig > 1 {
		return 1
	}

	return sig
}
