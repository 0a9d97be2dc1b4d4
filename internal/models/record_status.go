package models

import (
	"errors"
	"strings"
)

// RecordStatus is the lifecycle state shared by every master record.
// DELETED is terminal: nothing in the public API leads out of it.
type RecordStatus string

const (
	StatusActive   RecordStatus = "ACTIVE"
	StatusInactive RecordStatus = "INACTIVE"
	StatusDeleted  RecordStatus = "DELETED"
)

var (
	ErrRecordDeleted   = errors.New("record_deleted")
	ErrToggleToDeleted = errors.New("toggle_to_deleted")
	ErrUnknownStatus   = errors.New("unknown_status")
)

// ParseRecordStatus is lenient: blank or unknown input yields ACTIVE.
func ParseRecordStatus(v string) RecordStatus {
	switch RecordStatus(strings.ToUpper(strings.TrimSpace(v))) {
	case StatusInactive:
		return StatusInactive
	case StatusDeleted:
		return StatusDeleted
	default:
		return StatusActive
	}
}

// InitialStatus is the status a new record starts in. Only an explicit
// INACTIVE request is honoured.
func InitialStatus(requested string) RecordStatus {
	if ParseRecordStatus(requested) == StatusInactive {
		return StatusInactive
	}
	return StatusActive
}

func (s RecordStatus) IsDeleted() bool { return s == StatusDeleted }

func (s RecordStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusDeleted
}

func (s RecordStatus) String() string { return string(s) }

// CheckUpdatable reports whether non-status fields may change.
func (s RecordStatus) CheckUpdatable() error {
	if s == StatusDeleted {
		return ErrRecordDeleted
	}
	return nil
}

// Toggle moves between ACTIVE and INACTIVE. The current state is checked
// before the target so a DELETED record always reports ErrRecordDeleted.
func (s RecordStatus) Toggle(target string) (RecordStatus, error) {
	if s == StatusDeleted {
		return s, ErrRecordDeleted
	}
	switch RecordStatus(strings.ToUpper(strings.TrimSpace(target))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusDeleted:
		return s, ErrToggleToDeleted
	default:
		return s, ErrUnknownStatus
	}
}

// Delete is the only transition into DELETED.
func (s RecordStatus) Delete() (RecordStatus, error) {
	if s == StatusDeleted {
		return s, ErrRecordDeleted
	}
	return StatusDeleted, nil
}
