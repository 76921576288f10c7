package identity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCompanyID(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int64
		ok   bool
	}{
		{"raw int", `7`, 7, true},
		{"numeric string", `"42"`, 42, true},
		{"padded numeric string", `" 42 "`, 42, true},
		{"object with id", `{"id": 7}`, 7, true},
		{"object with company_id", `{"company_id": 9}`, 9, true},
		{"object with empresa_id", `{"empresa_id": 3}`, 3, true},
		{"object with string id", `{"id": "11"}`, 11, true},
		{"nested object", `{"empresa_id": {"id": 5}}`, 5, true},
		{"null", `null`, 0, false},
		{"empty", ``, 0, false},
		{"non-numeric string", `"acme"`, 0, false},
		{"object without id key", `{"nombre": "Acme"}`, 0, false},
		{"array", `[7]`, 0, false},
		{"boolean", `true`, 0, false},
		{"float", `7.5`, 0, false},
		{"bare digits, not JSON-quoted", `07`, 7, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseCompanyID(json.RawMessage(tc.raw))
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestRecordFromRow_FieldVariants(t *testing.T) {
	row := map[string]json.RawMessage{
		"id":    json.RawMessage(`"15"`),
		"email": json.RawMessage(`"laura@mail.test"`),
		"rol":   json.RawMessage(`"rrhh"`),
		"empresa_id": json.RawMessage(`2`),
	}

	rec := recordFromRow(row)
	assert.Equal(t, "15", rec.ID)
	assert.Equal(t, "laura@mail.test", rec.Email)
	assert.Equal(t, "rrhh", rec.Role)

	id, ok := ParseCompanyID(rec.Company)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
}

func TestRecordFromRow_RoleFallbackName(t *testing.T) {
	row := map[string]json.RawMessage{
		"id":      json.RawMessage(`7`),
		"role":    json.RawMessage(`"admin"`),
		"company": json.RawMessage(`{"id": 4}`),
	}

	rec := recordFromRow(row)
	assert.Equal(t, "7", rec.ID)
	assert.Equal(t, "admin", rec.Role)

	id, ok := ParseCompanyID(rec.Company)
	assert.True(t, ok)
	assert.Equal(t, int64(4), id)
}
