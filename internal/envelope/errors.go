package envelope

import "errors"

var (
	ErrInvalidInsulation      = errors.New("invalid cavity insulation")
	ErrInvalidSheathing       = errors.New("invalid exterior sheathing")
	ErrInvalidFramingDepth    = errors.New("framing depth must be positive")
	ErrInvalidFramingFraction = errors.New("framing fraction must be strictly between 0 and 1")
	ErrInvalidWindowU         = errors.New("window U-value must be positive")
	ErrInvalidCeilingR        = errors.New("ceiling R-value must be non-negative")
	ErrInvalidACH50           = errors.New("ACH50 must be positive")
	ErrInvalidNatFactor       = errors.New("ACH50 to natural infiltration factor must be positive")
	ErrInvalidGeometry        = errors.New("house geometry areas and heights must be positive")
	ErrInvalidStoryCount      = errors.New("story count must be at least 1")
	ErrInvalidWindowRatio     = errors.New("window to wall ratio must be in [0,1)")
	ErrNegativeDegreeDays     = errors.New("degree days must be non-negative")
	ErrNegativePrice          = errors.New("electricity price must be non-negative")
	ErrNegativeOtherEnergy    = errors.New("other site energy must be non-negative")
	ErrInvalidEfficiency      = errors.New("COP and SEER must be positive")
)
