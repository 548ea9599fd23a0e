// Package model defines the stored entities and the payloads that create
// or patch them.
//
// Entities map one-to-one to store tables and serialize with a fixed JSON
// field order. Payload fields are tri-state (absent, null, value) so a
// request body can be told apart from a partial update.
package model

import "github.com/oapi-codegen/nullable"

type field struct {
	name      string
	specified bool
}

func missing(fields ...field) []string {
	var out []string
	for _, f := range fields {
		if !f.specified {
			out = append(out, f.name)
		}
	}
	return out
}

// valueOrNil returns nil for absent and null fields.
func valueOrNil[T any](n nullable.Nullable[T]) *T {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v := n.MustGet()
	return &v
}

// patch overwrites *dst only when n holds a non-null value.
func patch[T any](dst **T, n nullable.Nullable[T]) {
	if v := valueOrNil(n); v != nil {
		*dst = v
	}
}
