// Package recent keeps the bounded, recency-ordered list of patients a
// practitioner has booked before, persisted across app sessions. It also owns
// the normalization of heterogeneous upstream patient records into the one
// canonical shape the client renders.
package recent

import (
	"encoding/json"
)

// NameFallback is displayed when no upstream field carries a patient name.
const NameFallback = "Nome não disponível"

// Entry is a canonical recent-patient record. Raw retains the unmodified
// upstream record so consumers needing fields outside the canonical shape are
// not blocked by normalization.
type Entry struct {
	CPF             string          `json:"cpf"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	LastAppointment string          `json:"last_appointment,omitempty"`
	Raw             json.RawMessage `json:"raw,omitempty"`
}

// fieldRule maps one canonical field to an ordered list of upstream keys and
// the value used when none of them carries a usable string.
type fieldRule struct {
	sources  []string
	fallback string
}

// decodeTable is the full normalization contract, auditable as data: for each
// canonical field, the first non-empty source string wins, otherwise the
// fallback applies.
var decodeTable = map[string]fieldRule{
	"cpf":             {sources: []string{"cpf", "patientCpf"}, fallback: ""},
	"name":            {sources: []string{"name", "patientName"}, fallback: NameFallback},
	"phone":           {sources: []string{"phone", "patientPhone"}, fallback: ""},
	"lastAppointment": {sources: []string{"lastAppointment", "lastAppointmentDate"}, fallback: ""},
}

// Normalize maps a raw upstream patient record into the canonical Entry
// shape. Records that do not decode as an object normalize to the pure
// fallback entry; the client must never crash on a malformed record.
func Normalize(raw json.RawMessage) Entry {
	var fields map[string]any
	_ = json.Unmarshal(raw, &fields)

	return Entry{
		CPF:             resolve(fields, decodeTable["cpf"]),
		Name:            resolve(fields, decodeTable["name"]),
		Phone:           resolve(fields, decodeTable["phone"]),
		LastAppointment: resolve(fields, decodeTable["lastAppointment"]),
		Raw:             raw,
	}
}

func resolve(fields map[string]any, rule fieldRule) string {
	for _, key := range rule.sources {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	return rule.fallback
}
