package zfilter

// coefficients holds the transfer function of a single second-order section.
// a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// section is a biquad with coefficients and delay-line state.
type section struct {
	coefficients

	d0, d1 float64
}

func (s *section) processBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

func (s *section) reset() {
	s.d0 = 0
	s.d1 = 0
}

// cascade runs buf through every section in order, in place.
func cascade(sections []section, buf []float64) {
	for i := range sections {
		sections[i].processBlock(buf)
	}
}

func resetAll(sections []section) {
	for i := range sections {
		sections[i].reset()
	}
}
