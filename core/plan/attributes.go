package plan

import (
	"bytes"
	"encoding/json"

	"github.com/volatiletech/null/v8"
)

var emptyAttributes = [][]byte{[]byte(`[]`), []byte(`{}`), []byte(`""`), []byte(`null`), []byte(`false`), []byte(`0`)}

// EncodeAttributes normalizes features/limitations as received from a client into the text stored in DB.
// Structured values are kept as compact JSON; a JSON string is stored as its raw content.
// Empty values become NULL.
func EncodeAttributes(attr null.JSON) null.JSON {
	raw := bytes.TrimSpace(attr.JSON)
	if !attr.Valid || isEmptyAttributes(raw) {
		return null.JSON{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return null.JSONFrom([]byte(s))
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return null.JSONFrom(raw)
	}
	return null.JSONFrom(buf.Bytes())
}

// DecodeAttributes turns stored features/limitations text into a JSON value for responses.
// Text that is not valid JSON decodes to null.
func DecodeAttributes(attr null.JSON) null.JSON {
	raw := bytes.TrimSpace(attr.JSON)
	if !attr.Valid || len(raw) == 0 || !json.Valid(raw) {
		return null.JSON{}
	}
	return null.JSONFrom(raw)
}

func isEmptyAttributes(raw []byte) bool {
	if len(raw) == 0 {
		return true
	}
	for _, empty := range emptyAttributes {
		if bytes.Equal(raw, empty) {
			return true
		}
	}
	return false
}

// AttributesParam returns attr as a text SQL parameter, nil when NULL.
func AttributesParam(attr null.JSON) interface{} {
	if !attr.Valid || len(attr.JSON) == 0 {
		return nil
	}
	return string(attr.JSON)
}
