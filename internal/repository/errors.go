// Package repository implements persistence for reservations,
// apartments and users over MySQL.  Sentinel errors defined here let
// handlers map failure scenarios to HTTP responses without inspecting
// driver errors.  Not-found is signalled with sql.ErrNoRows, matching
// the rest of the database/sql surface.
package repository

import "errors"

// ErrConflict is returned when a write cannot proceed because of
// conflicting state, most importantly when the create path
// re-validates availability inside its transaction and finds an
// overlapping reservation in the same scope.  Handlers translate it
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering a user with an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")
