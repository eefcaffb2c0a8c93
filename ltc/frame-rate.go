package ltc

// Measured frame rates outside this range are not believed, since they
// mean frames were lost (or the measurement spans a gap in the signal).
const (
	minPlausibleFPS = 24 * 0.9
	maxPlausibleFPS = 30 * 1.1
)

// rateHistory is how many recent measurements are kept for smoothing.
const rateHistory = 3

// RateEstimator infers the frame rate from the distance in samples
// between consecutive frames.
//
// To keep one bad frame interval from flipping the reported rate, it
// keeps the last few measurements, and only switches to a rate that
// shows up in at least two of them. Before any measurement, the rate is
// inferred from the nominal bit cell width instead.
type RateEstimator struct {
	SampleRate int

	history [rateHistory]FrameRate
	n       int
	next    int
	current FrameRate
}

// NewRateEstimator returns an estimator for the given sampling rate.
func NewRateEstimator(sampleRate int) *RateEstimator {
	return &RateEstimator{SampleRate: sampleRate}
}

// Measure records a frame that took distance samples. It returns false
// (and records nothing) if the distance is not plausible for LTC.
func (r *RateEstimator) Measure(distance int) bool {
	if distance <= 0 {
		return false
	}
	fps := float64(r.SampleRate) / float64(distance)
	if fps < minPlausibleFPS || fps > maxPlausibleFPS {
		return false
	}
	m := NearestFrameRate(fps)

	r.history[r.next] = m
	r.next = (r.next + 1) % rateHistory
	if r.n < rateHistory {
		r.n++
	}

	if r.n == 1 {
		r.current = m
		return true
	}
	for i := 0; i < r.n; i++ {
		count := 0
		for j := 0; j < r.n; j++ {
			if r.history[j] == r.history[i] {
				count++
			}
		}
		if count >= 2 {
			r.current = r.history[i]
			break
		}
	}
	return true
}

// Rate returns the current frame rate estimate. If no frame has been
// measured yet, the rate is inferred from the given nominal cell width.
func (r *RateEstimator) Rate(cellWidth float64) FrameRate {
	if r.current != 0 {
		return r.current
	}
	return NearestFrameRate(
		float64(r.SampleRate) / (BitsPerFrame * cellWidth),
	)
}

// Peek returns what Rate would return after Measure(distance), without
// changing the estimator.
func (r *RateEstimator) Peek(distance int, cellWidth float64) FrameRate {
	tmp := *r
	tmp.Measure(distance)
	return tmp.Rate(cellWidth)
}

// Reset forgets all measurements.
func (r *RateEstimator) Reset() {
	*r = RateEstimator{SampleRate: r.SampleRate}
}
