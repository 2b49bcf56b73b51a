package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged rolls.
// All rolls are logged at debug level with a label and the drawn value.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Percent draws a uniform value in [0, 100).
//
// Postcondition: 0 <= result < 100.
func (r *Roller) Percent(label string) float64 {
	v := r.src.Float64() * 100
	r.logger.Debug("percent roll",
		zap.String("label", label),
		zap.Float64("value", v),
	)
	return v
}

// Intn draws a uniform int in [0, n).
//
// Precondition: n > 0.
// Postcondition: 0 <= result < n.
func (r *Roller) Intn(label string, n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("int roll",
		zap.String("label", label),
		zap.Int("n", n),
		zap.Int("value", v),
	)
	return v
}

// Chance reports whether a one-in-n roll succeeds (draws 0 from [0, n)).
//
// Precondition: n > 0.
func (r *Roller) Chance(label string, n int) bool {
	return r.Intn(label, n) == 0
}
