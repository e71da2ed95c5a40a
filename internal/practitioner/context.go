// Package practitioner carries the signed-in practitioner identity through
// request contexts. The mobile client sends it on every wizard call; it also
// seeds the draft's default practitioner id.
package practitioner

import "context"

type ctxKey string

const idKey ctxKey = "agendadoc.practitioner_id"

// WithID stores the practitioner id in context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idKey, id)
}

// FromContext extracts the practitioner id if present.
func FromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(idKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
