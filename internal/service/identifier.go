package service

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NormalizeIdentifier canonicalizes the identifier representations left behind
// by the portal's legacy write paths: native ObjectID values migrated as raw
// bytes, 24-hex strings in any casing, stringified wrappers such as
// ObjectID("...") or extended-JSON {"$oid": "..."}, and plain string ids.
// Two encodings of the same identifier normalize to the same output. Malformed
// or empty input returns ok=false and is treated as absent downstream; this
// function never panics. Normalizing an already-canonical value returns it
// unchanged.
func NormalizeIdentifier(raw interface{}) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return normalizeIdentifierString(v)
	case *string:
		if v == nil {
			return "", false
		}
		return normalizeIdentifierString(*v)
	case []byte:
		if len(v) == 12 {
			return hex.EncodeToString(v), true
		}
		if !utf8.Valid(v) {
			return "", false
		}
		return normalizeIdentifierString(string(v))
	case primitive.ObjectID:
		if v.IsZero() {
			return "", false
		}
		return v.Hex(), true
	default:
		return "", false
	}
}

func normalizeIdentifierString(s string) (string, bool) {
	s = strings.TrimSpace(unwrapLegacyIdentifier(strings.TrimSpace(s)))
	switch strings.ToLower(s) {
	case "", "null", "undefined":
		return "", false
	}
	if oid, err := primitive.ObjectIDFromHex(strings.ToLower(s)); err == nil {
		return oid.Hex(), true
	}
	return s, true
}

func unwrapLegacyIdentifier(s string) string {
	if strings.HasPrefix(s, "{") {
		var wrapper struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal([]byte(s), &wrapper); err == nil && wrapper.OID != "" {
			return wrapper.OID
		}
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "objectid(") && strings.HasSuffix(s, ")") {
		inner := s[len("objectid(") : len(s)-1]
		return strings.Trim(inner, `"'`)
	}
	return s
}

// normalizeOptional lifts NormalizeIdentifier over nullable columns.
func normalizeOptional(raw *string) *string {
	if raw == nil {
		return nil
	}
	id, ok := NormalizeIdentifier(*raw)
	if !ok {
		return nil
	}
	return &id
}
