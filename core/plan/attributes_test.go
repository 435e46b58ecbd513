package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func TestEncodeAttributes(t *testing.T) {
	tests := []struct {
		name  string
		in    null.JSON
		want  string
		valid bool
	}{
		{name: "absent", in: null.JSON{}},
		{name: "null", in: null.JSONFrom([]byte(`null`))},
		{name: "empty list", in: null.JSONFrom([]byte(`[]`))},
		{name: "empty object", in: null.JSONFrom([]byte(` {} `))},
		{name: "empty string", in: null.JSONFrom([]byte(`""`))},
		{name: "false", in: null.JSONFrom([]byte(`false`))},
		{name: "list", in: null.JSONFrom([]byte(`[ "gps", "alerts" ]`)), want: `["gps","alerts"]`, valid: true},
		{name: "object", in: null.JSONFrom([]byte(`{"max_routes": 5}`)), want: `{"max_routes":5}`, valid: true},
		{name: "string holding JSON", in: null.JSONFrom([]byte(`"[\"gps\"]"`)), want: `["gps"]`, valid: true},
		{name: "plain string", in: null.JSONFrom([]byte(`"gps only"`)), want: `gps only`, valid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeAttributes(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, string(got.JSON))
			}
		})
	}
}

func TestDecodeAttributes(t *testing.T) {
	tests := []struct {
		name  string
		in    null.JSON
		want  string
		valid bool
	}{
		{name: "NULL", in: null.JSON{}},
		{name: "list", in: null.JSONFrom([]byte(`["gps"]`)), want: `["gps"]`, valid: true},
		{name: "object", in: null.JSONFrom([]byte(`{"a":1}`)), want: `{"a":1}`, valid: true},
		{name: "not JSON", in: null.JSONFrom([]byte(`gps only`))},
		{name: "blank", in: null.JSONFrom([]byte(`  `))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeAttributes(tt.in)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, string(got.JSON))
			}
		})
	}
}

func TestAttributesParam(t *testing.T) {
	assert.Nil(t, AttributesParam(null.JSON{}))
	assert.Equal(t, `["gps"]`, AttributesParam(null.JSONFrom([]byte(`["gps"]`))))
}
