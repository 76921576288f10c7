package identity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Record is the mirrored user row in the external identity store. Company
// stays raw because the store has produced several encodings over time (see
// ParseCompanyID).
type Record struct {
	ID      string
	Email   string
	Role    string
	Company json.RawMessage
}

// Field-name variants observed in the external store for the company
// association and the role.
var (
	companyFieldNames = []string{"company_id", "empresa_id", "id_empresa", "empresa", "company"}
	roleFieldNames    = []string{"rol", "role"}
	idLikeKeys        = []string{"id", "company_id", "empresa_id", "id_empresa"}
)

// recordFromRow builds a Record from a decoded store row, tolerating the
// field-name variants.
func recordFromRow(row map[string]json.RawMessage) *Record {
	rec := &Record{}

	if raw, ok := row["id"]; ok {
		rec.ID = rawScalarString(raw)
	}
	if raw, ok := row["email"]; ok {
		rec.Email = rawScalarString(raw)
	}
	for _, name := range roleFieldNames {
		if raw, ok := row[name]; ok {
			rec.Role = rawScalarString(raw)
			break
		}
	}
	for _, name := range companyFieldNames {
		if raw, ok := row[name]; ok {
			rec.Company = raw
			break
		}
	}

	return rec
}

func rawScalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// ParseCompanyID extracts an integer company id from the polymorphic value
// the external store returns. Accepted encodings: raw int, numeric string,
// and a JSON object carrying an id-like key (possibly nested one level, e.g.
// {"empresa": {"id": 7}}). Anything else yields ok=false, meaning no company
// association.
func ParseCompanyID(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		// Not valid JSON; the store has been seen returning bare digits.
		if id, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			return id, true
		}
		return 0, false
	}

	return parseCompanyValue(v, 0)
}

func parseCompanyValue(v any, depth int) (int64, bool) {
	if depth > 2 {
		return 0, false
	}

	switch t := v.(type) {
	case json.Number:
		if id, err := t.Int64(); err == nil {
			return id, true
		}
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return id, true
		}
	case map[string]any:
		for _, key := range idLikeKeys {
			if inner, ok := t[key]; ok {
				if id, ok := parseCompanyValue(inner, depth+1); ok {
					return id, true
				}
			}
		}
	}

	return 0, false
}
