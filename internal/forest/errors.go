package forest

import "errors"

// ErrProbability indicates a rule probability outside [0, 1].
var ErrProbability = errors.New("forest: probability out of range")
