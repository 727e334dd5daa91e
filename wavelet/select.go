package wavelet

import (
	"math"
	"sort"
)

// Fixed weights of the wavelet suitability score.
const (
	weightEnergyConcentration   = 0.35
	weightTimeLocalization      = 0.25
	weightFrequencyLocalization = 0.25
	weightEdgeQuality           = 0.15

	// Share of time indices counted as "the event region" for the
	// time-localization metric.
	topTimeFraction = 0.05

	// Boundary margin, as a fraction of the record, for the edge metric.
	edgeMarginFraction = 0.1
)

// Score rates how well a wavelet matches the signal. Every metric lies in
// [0, 1]; Total is their fixed weighted combination.
type Score struct {
	Total float64

	// EnergyConcentration rewards transforms whose energy collects in few
	// coefficients (1 minus normalized entropy).
	EnergyConcentration float64

	// TimeLocalization is the energy share of the top 5% of time indices.
	TimeLocalization float64

	// FrequencyLocalization is the energy share of the dominant scale and
	// its two neighbors.
	FrequencyLocalization float64

	// EdgeQuality penalizes energy piling up near the record boundaries.
	EdgeQuality float64
}

// ScoredWavelet pairs a catalog entry with its score.
type ScoredWavelet struct {
	Name  string
	Score Score
}

// scoreAllWavelets rates every catalog entry against the signal and returns
// them sorted by descending total score. Equal totals keep catalog order,
// so the ranking is deterministic for identical input.
func scoreAllWavelets(signal []float64, scales []float64) ([]ScoredWavelet, error) {
	scored := make([]ScoredWavelet, 0, len(catalog))

	for _, info := range catalog {
		coeffs, tfMap, err := cwt(signal, info.Name, scales)
		if err != nil {
			return nil, err
		}

		scored = append(scored, ScoredWavelet{Name: info.Name, Score: scoreTransform(coeffs, tfMap)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Total > scored[j].Score.Total
	})

	return scored, nil
}

// scoreTransform computes the four suitability metrics for one transform.
func scoreTransform(coeffs, tfMap [][]float64) Score {
	numScales := len(coeffs)
	if numScales == 0 || len(coeffs[0]) == 0 {
		return Score{}
	}

	n := len(coeffs[0])

	timeMarginal := make([]float64, n)
	scaleMarginal := make([]float64, numScales)

	total := 0.0
	entropy := 0.0

	for s, row := range coeffs {
		for t, c := range row {
			e := c * c
			timeMarginal[t] += e
			scaleMarginal[s] += e
			total += e
		}
	}

	if total <= 0 {
		return Score{}
	}

	for _, row := range coeffs {
		for _, c := range row {
			if p := c * c / total; p > 0 {
				entropy -= p * math.Log(p)
			}
		}
	}

	sc := Score{
		EnergyConcentration:   energyConcentration(entropy, numScales*n),
		TimeLocalization:      timeLocalization(timeMarginal, total),
		FrequencyLocalization: frequencyLocalization(scaleMarginal, total),
		EdgeQuality:           edgeQuality(tfMap, n),
	}

	sc.Total = weightEnergyConcentration*sc.EnergyConcentration +
		weightTimeLocalization*sc.TimeLocalization +
		weightFrequencyLocalization*sc.FrequencyLocalization +
		weightEdgeQuality*sc.EdgeQuality

	return sc
}

func energyConcentration(entropy float64, cells int) float64 {
	if cells < 2 {
		return 0
	}

	return clamp01(1 - entropy/math.Log(float64(cells)))
}

func timeLocalization(marginal []float64, total float64) float64 {
	top := int(math.Ceil(topTimeFraction * float64(len(marginal))))
	if top < 1 {
		top = 1
	}

	sorted := make([]float64, len(marginal))
	copy(sorted, marginal)

	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	sum := 0.0
	for _, e := range sorted[:top] {
		sum += e
	}

	return clamp01(sum / total)
}

func frequencyLocalization(marginal []float64, total float64) float64 {
	dominant := 0
	for s, e := range marginal {
		if e > marginal[dominant] {
			dominant = s
		}
	}

	sum := 0.0

	for s := dominant - 1; s <= dominant+1; s++ {
		if s >= 0 && s < len(marginal) {
			sum += marginal[s]
		}
	}

	return clamp01(sum / total)
}

func edgeQuality(tfMap [][]float64, n int) float64 {
	margin := int(edgeMarginFraction * float64(n))
	if margin < 1 {
		margin = 1
	}

	if n-2*margin <= 0 {
		return 0
	}

	var interior, edge float64

	for _, row := range tfMap {
		for t, e := range row {
			if t < margin || t >= n-margin {
				edge += e
			} else {
				interior += e
			}
		}
	}

	interiorMean := interior / float64(len(tfMap)*(n-2*margin))
	edgeMean := edge / float64(len(tfMap)*2*margin)

	if interiorMean+edgeMean <= 0 {
		return 0
	}

	return clamp01(interiorMean / (interiorMean + edgeMean))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}

	return v
}
