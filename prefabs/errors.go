package prefabs

import "errors"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")
