package realmkit

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a lookup that is required to succeed finds
// nothing. It carries the entity kind and the identifier that was looked up;
// role-set lookups additionally carry the names that were available at the
// time of the call.
type NotFoundError struct {
	// Kind is the entity type, e.g. "Role", "User", "Client".
	Kind string

	// Name is the identifier that had no match.
	Name string

	// Available lists the role names present in the set when the lookup
	// failed. It is nil for entity lookups.
	Available []string
}

// Error implements the error interface. Role-set lookups produce
//
//	Role 'four' not found: [one, two, three]
//
// and entity lookups produce
//
//	User 'john' should exist, but was not found
func (e *NotFoundError) Error() string {
	if e.Available != nil {
		return fmt.Sprintf("%s '%s' not found: [%s]", e.Kind, e.Name, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("%s '%s' should exist, but was not found", e.Kind, e.Name)
}

// InvalidArgumentError is returned when a required argument is missing,
// empty, or contains an empty element. It is raised before any remote call
// or lookup work happens.
type InvalidArgumentError struct {
	// Argument is the parameter name.
	Argument string

	// Reason describes what was wrong with it.
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Argument, e.Reason)
}

func errEmpty(argument string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Reason: "must not be empty"}
}

func errNil(argument string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Reason: "must not be nil"}
}
