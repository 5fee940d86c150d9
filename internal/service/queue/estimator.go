package queue

// WaitEstimator turns a queue length into an estimated wait in minutes.
// The linear per-patient figure is a placeholder inherited from the
// original product, so it is kept behind an interface.
type WaitEstimator interface {
	Estimate(queueLength int) int
}

// LinearEstimator assumes a fixed service time per queued patient.
type LinearEstimator struct {
	MinutesPerPatient int
}

func NewLinearEstimator(minutesPerPatient int) LinearEstimator {
	if minutesPerPatient <= 0 {
		minutesPerPatient = 15
	}
	return LinearEstimator{MinutesPerPatient: minutesPerPatient}
}

func (e LinearEstimator) Estimate(queueLength int) int {
	return queueLength * e.MinutesPerPatient
}
