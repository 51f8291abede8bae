package handler

import (
	"strconv"

	"github.com/pkg/errors"
)

func parseID(raw string) (int32, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	if id <= 0 {
		return 0, errors.Errorf("id must be positive, got %d", id)
	}

	return int32(id), nil
}

// parseOptionalID returns nil for an empty value.
func parseOptionalID(raw string) (*int32, error) {
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	value := int32(id)

	return &value, nil
}
