package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotText is returned when a request field holds an object or an array.
var ErrNotText = errors.New("value must be a string, number, boolean or null")

// Text is a request field decoded leniently.
//
// Strings are kept as sent, numbers are written in plain decimal form and true becomes
// "true". Falsy values (null, false, 0 and "") decode to the empty string,
// which every handler treats as "not provided".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 'n', 'f':
		// null, false
		*t = ""
	case 't':
		*t = "true"
	case '{', '[':
		return ErrNotText
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("decode number: %w", err)
		}
		if f == 0 {
			*t = ""
			return nil
		}
		*t = Text(strconv.FormatFloat(f, 'f', -1, 64))
	}

	return nil
}

// String returns the decoded value.
func (t Text) String() string {
	return string(t)
}
