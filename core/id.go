package core

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

// ID is a row id read from JSON as a number or a numeric string ("12").
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return errors.Errorf("invalid id %q", data)
	}
	*id = ID(n)
	return nil
}
