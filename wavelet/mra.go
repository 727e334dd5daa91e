package wavelet

import (
	"math"
	"sort"
	"strconv"

	"github.com/cwbudde/algo-biosignal/stats"
)

// Orthonormal scaling filters (coefficient sum sqrt(2), unit energy). The
// matching highpass filters come from the quadrature mirror relation.
var (
	haarFilter = []float64{math.Sqrt2 / 2, math.Sqrt2 / 2}

	db2Filter = []float64{
		0.48296291314469025,
		0.8365163037378079,
		0.2241438680420134,
		-0.12940952255092145,
	}

	db4Filter = []float64{
		0.23037781330885523,
		0.7148465705525415,
		0.6308807679295904,
		-0.02798376941698385,
		-0.18703481171888114,
		0.030841381835986965,
		0.032883011666982945,
		-0.010597401784997278,
	}
)

func scalingFilter(name string) []float64 {
	switch name {
	case Haar:
		return haarFilter
	case DB2:
		return db2Filter
	case DB4:
		return db4Filter
	}

	return nil
}

// decomposition is a full periodic DWT pyramid. details[0] is the finest
// level; approx is the coarsest approximation.
type decomposition struct {
	approx  []float64
	details [][]float64
	h, g    []float64
}

// decompose runs a periodic orthogonal DWT to the given depth. The signal
// is extended cyclically to a multiple of 2^levels first; sliceLen
// remembers the original length for truncation on the way back.
func decompose(signal []float64, name string, levels int) decomposition {
	h := scalingFilter(name)
	g := qmf(h)

	block := 1 << levels

	m := (len(signal) + block - 1) / block * block

	a := make([]float64, m)
	for i := range a {
		a[i] = signal[i%len(signal)]
	}

	dec := decomposition{h: h, g: g, details: make([][]float64, 0, levels)}

	for range levels {
		approx, detail := dwtStep(a, h, g)
		dec.details = append(dec.details, detail)
		a = approx
	}

	dec.approx = a

	return dec
}

// dwtStep computes one analysis level with periodic (circular) convolution.
// len(a) must be even.
func dwtStep(a, h, g []float64) (approx, detail []float64) {
	n := len(a)
	half := n / 2

	approx = make([]float64, half)
	detail = make([]float64, half)

	for k := 0; k < half; k++ {
		var sa, sd float64

		for i, hv := range h {
			v := a[(2*k+i)%n]
			sa += hv * v
			sd += g[i] * v
		}

		approx[k] = sa
		detail[k] = sd
	}

	return approx, detail
}

// idwtStep is the transpose of dwtStep. For orthonormal filters the
// transpose is the exact inverse.
func idwtStep(approx, detail, h, g []float64) []float64 {
	n := 2 * len(approx)
	out := make([]float64, n)

	for k := range approx {
		for i, hv := range h {
			idx := (2*k + i) % n
			out[idx] += hv*approx[k] + g[i]*detail[k]
		}
	}

	return out
}

// reconstruct inverts the full pyramid.
func (d decomposition) reconstruct() []float64 {
	a := d.approx

	for j := len(d.details) - 1; j >= 0; j-- {
		a = idwtStep(a, d.details[j], d.h, d.g)
	}

	return a
}

// band reconstructs a single subband (level < 0 selects the approximation,
// otherwise details[level]) with every other subband zeroed.
func (d decomposition) band(level int) []float64 {
	a := make([]float64, len(d.approx))
	if level < 0 {
		copy(a, d.approx)
	}

	for j := len(d.details) - 1; j >= 0; j-- {
		detail := d.details[j]
		if j != level {
			detail = make([]float64, len(d.details[j]))
		}

		a = idwtStep(a, detail, d.h, d.g)
	}

	return a
}

// bandName maps subband index to its component key. Detail numbering starts
// at the finest level: detail_1 holds the highest frequencies.
func bandName(level int) string {
	if level < 0 {
		return "approximation"
	}

	return "detail_" + strconv.Itoa(level+1)
}

// components expands the pyramid into same-length time-domain bands, one
// per subband, truncated to n samples. Their sample-wise sum rebuilds the
// signal.
func (d decomposition) components(n int) map[string][]float64 {
	out := make(map[string][]float64, len(d.details)+1)

	for level := -1; level < len(d.details); level++ {
		full := d.band(level)
		out[bandName(level)] = full[:n:n]
	}

	return out
}

// summarize describes each band's share of the total energy, spread, and a
// coarse zero-crossing frequency estimate.
func summarize(components map[string][]float64, sampleRate float64) map[string]BandSummary {
	total := 0.0
	for _, c := range components {
		total += energy(c)
	}

	out := make(map[string]BandSummary, len(components))

	for name, c := range components {
		s := BandSummary{
			RMS:               stats.RMS(c),
			PeakToPeak:        peakToPeak(c),
			DominantFrequency: stats.DominantFrequency(c, sampleRate),
		}

		if total > 0 {
			s.EnergyShare = 100 * energy(c) / total
		}

		out[name] = s
	}

	return out
}

// denoise applies universal soft thresholding: the noise level comes from
// the finest detail coefficients, and every detail level is shrunk toward
// zero before reconstruction. The result never gets rougher than the input;
// if thresholding backfires the input comes back unchanged.
func denoise(signal []float64, name string, levels int) []float64 {
	dec := decompose(signal, name, levels)

	sigma := medianAbs(dec.details[0]) / 0.6745
	threshold := sigma * math.Sqrt(2*math.Log(float64(len(signal))))

	for _, detail := range dec.details {
		softThreshold(detail, threshold)
	}

	out := dec.reconstruct()[:len(signal):len(signal)]

	if stats.DiffVariance(out) > stats.DiffVariance(signal) {
		out = make([]float64, len(signal))
		copy(out, signal)
	}

	return out
}

func softThreshold(buf []float64, t float64) {
	for i, v := range buf {
		switch {
		case v > t:
			buf[i] = v - t
		case v < -t:
			buf[i] = v + t
		default:
			buf[i] = 0
		}
	}
}

func medianAbs(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	tmp := make([]float64, len(buf))
	for i, v := range buf {
		tmp[i] = math.Abs(v)
	}

	sort.Float64s(tmp)

	mid := len(tmp) / 2
	if len(tmp)%2 == 0 {
		return (tmp[mid-1] + tmp[mid]) / 2
	}

	return tmp[mid]
}

func energy(buf []float64) float64 {
	sum := 0.0
	for _, v := range buf {
		sum += v * v
	}

	return sum
}

func peakToPeak(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	lo, hi := buf[0], buf[0]

	for _, v := range buf[1:] {
		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	return hi - lo
}
