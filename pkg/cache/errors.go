package cache

import (
	"github.com/parameter1/omeda-go/pkg/errors"
)

// wrapErr tags a backend failure with the CACHE code so callers can tell
// it apart from API and network errors.
func wrapErr(err error, op, key string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeCache, err, "cache %s %s", op, key)
}
