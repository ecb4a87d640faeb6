// Package directory looks up official contact emails in public directories.
//
// Lookups are best effort: callers wrap them with Lookup and branch on the
// Result status instead of handling errors.
package directory

import (
	"context"

	"moncomptepro/pkg/email"
)

type Status string

const (
	StatusFound  Status = "found"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Result of a best-effort contact lookup. Email is set only when Found.
type Result struct {
	Status Status
	Email  string
	Err    error
}

// Found reports whether a usable contact email was returned.
func (r Result) Found() bool {
	return r.Status == StatusFound
}

// Lookup runs fn and classifies its outcome. A syntactically invalid email is
// treated as no value.
func Lookup(ctx context.Context, fn func(context.Context) (string, error)) Result {
	contact, err := fn(ctx)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	contact = email.Normalize(contact)
	if contact == "" || !email.IsValid(contact) {
		return Result{Status: StatusEmpty}
	}
	return Result{Status: StatusFound, Email: contact}
}
