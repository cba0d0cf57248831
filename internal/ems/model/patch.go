package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Patch is a validated set of proposed field values. Every value has the
// Go type that Employee.With expects for its field.
type Patch map[Field]any

// Fields returns the proposed field set in canonical order.
func (p Patch) Fields() []Field {
	out := make([]Field, 0, len(p))
	for f := range p {
		out = append(out, f)
	}
	return SortFields(out)
}

// ParsePatch decodes a JSON object of field name to new value.
func ParsePatch(body []byte) (Patch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, badRequest("Invalid body")
	}
	return ParsePatchFields(raw)
}

// ParsePatchFields validates each raw value against its field.
func ParsePatchFields(raw map[string]json.RawMessage) (Patch, error) {
	patch := make(Patch, len(raw))
	for key, value := range raw {
		f, err := ParseField(key)
		if err != nil {
			return nil, badRequest("Unknown field: " + key)
		}
		v, err := decodeFieldValue(f, value)
		if err != nil {
			return nil, err
		}
		patch[f] = v
	}
	return patch, nil
}

func decodeFieldValue(f Field, value json.RawMessage) (any, error) {
	switch f {
	case FieldAddress:
		var a Address
		if err := decodeStrict(value, &a); err != nil {
			return nil, badRequest("Invalid value for " + string(f))
		}
		return a, nil
	case FieldEmergencyContact:
		var c EmergencyContact
		if err := decodeStrict(value, &c); err != nil {
			return nil, badRequest("Invalid value for " + string(f))
		}
		return c, nil
	case FieldApproved:
		var b bool
		if err := json.Unmarshal(value, &b); err != nil {
			return nil, badRequest("Invalid value for " + string(f))
		}
		return b, nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, badRequest("Invalid value for " + string(f))
	}

	switch f {
	case FieldFirstName, FieldLastName:
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, badRequest(string(f) + " cannot be empty")
		}
	case FieldEmail:
		s = strings.ToLower(strings.TrimSpace(s))
		if err := GetValidator().Var(s, "required,email"); err != nil {
			return nil, badRequest("Invalid email")
		}
	case FieldPassword:
		if !IsStrongPassword(s) {
			return nil, badRequest(PasswordRuleMessage)
		}
	case FieldEmploymentStatus:
		status, err := ParseEmploymentStatus(s)
		if err != nil {
			return nil, badRequest(err.Error())
		}
		return status, nil
	case FieldRole:
		role, err := ParseRole(s)
		if err != nil {
			return nil, badRequest(err.Error())
		}
		return role, nil
	}
	return s, nil
}

func decodeStrict(value json.RawMessage, dst any) error {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
