package srs

// Params defines all configurable parameters for the SM-2 scheduler.
type Params struct {
	// MinEaseFactor is the floor the ease factor is clamped to after
	// every review. SM-2 uses 1.3; there is deliberately no ceiling.
	MinEaseFactor float64

	// FirstInterval and SecondInterval are the fixed intervals (in
	// days) after the first and second consecutive successful recalls.
	// Later intervals grow by the ease factor.
	FirstInterval  int
	SecondInterval int

	// PassThreshold is the lowest quality counted as a successful
	// recall. Qualities below it reset the repetition streak.
	PassThreshold int

	// Mastery gates. A word is marked mastered (one-way) once its
	// interval exceeds MasteryMinIntervalDays, it has been reviewed at
	// least MasteryMinReviews times, and recall accuracy is at least
	// MasteryMinAccuracy percent.
	MasteryMinIntervalDays int
	MasteryMinReviews      int
	MasteryMinAccuracy     float64
}

// ParamsConfig allows overriding the default parameters when creating a
// new Params instance. Zero values keep the defaults.
type ParamsConfig struct {
	MinEaseFactor  float64
	FirstInterval  int
	SecondInterval int
	PassThreshold  int

	MasteryMinIntervalDays int
	MasteryMinReviews      int
	MasteryMinAccuracy     float64
}

// NewDefaultParams creates a new Params instance with the standard SM-2
// values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor:  1.3,
		FirstInterval:  1,
		SecondInterval: 6,
		PassThreshold:  3,

		MasteryMinIntervalDays: 21,
		MasteryMinReviews:      5,
		MasteryMinAccuracy:     90.0,
	}
}

// NewParams creates a new Params instance with custom configuration.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.FirstInterval > 0 {
		params.FirstInterval = config.FirstInterval
	}
	if config.SecondInterval > 0 {
		params.SecondInterval = config.SecondInterval
	}
	if config.PassThreshold > 0 {
		params.PassThreshold = config.PassThreshold
	}

	if config.MasteryMinIntervalDays > 0 {
		params.MasteryMinIntervalDays = config.MasteryMinIntervalDays
	}
	if config.MasteryMinReviews > 0 {
		params.MasteryMinReviews = config.MasteryMinReviews
	}
	if config.MasteryMinAccuracy > 0 {
		params.MasteryMinAccuracy = config.MasteryMinAccuracy
	}

	return params
}
