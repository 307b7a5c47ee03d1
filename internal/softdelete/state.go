// Package softdelete models the two-state lifecycle of catalog rows.
package softdelete

import (
	"errors"
	"time"
)

var (
	ErrAlreadyDeleted = errors.New("already deleted")
	ErrNotDeleted     = errors.New("not deleted")
)

// State is either Active or Deleted at some instant. The zero value is Active.
type State struct {
	deleted bool
	at      time.Time
}

func Active() State { return State{} }

func Deleted(at time.Time) State { return State{deleted: true, at: at} }

func (s State) IsDeleted() bool { return s.deleted }

func (s State) DeletedAt() (time.Time, bool) { return s.at, s.deleted }

// Delete moves an Active state to Deleted(at).
func (s State) Delete(at time.Time) (State, error) {
	if s.deleted {
		return s, ErrAlreadyDeleted
	}
	return Deleted(at), nil
}

// Restore moves a Deleted state back to Active.
func (s State) Restore() (State, error) {
	if !s.deleted {
		return s, ErrNotDeleted
	}
	return Active(), nil
}

func (s State) String() string {
	if s.deleted {
		return "deleted"
	}
	return "active"
}

// FromNullable converts a storage column into a State.
func FromNullable(t *time.Time) State {
	if t == nil {
		return Active()
	}
	return Deleted(*t)
}

// Nullable converts a State into its storage column.
func (s State) Nullable() *time.Time {
	if !s.deleted {
		return nil
	}
	at := s.at
	return &at
}
