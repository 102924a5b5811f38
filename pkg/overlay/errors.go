package overlay

import "errors"

var ErrInvalidConfig = errors.New("overlay: invalid config")
