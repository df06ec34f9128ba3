package reference

import "errors"

var ErrInvalidCatalog = errors.New("invalid reference catalog")
