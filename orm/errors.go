package orm

import (
	"github.com/tranche-io/tranche/errors"
)

// orm reserves error codes 2000-2099

// ErrInvalidIndex is returned when an index specified is invalid
var ErrInvalidIndex = errors.Register(2000, "invalid index")
