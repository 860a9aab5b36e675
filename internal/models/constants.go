// Package models defines the expense, budget and alert types.
package models

import "strings"

// OverallCategory is the reserved name of the ledger holding every expense.
const OverallCategory = "Overall"

// Limit states reported by Budget.CheckLimit.
type LimitState int

const (
	LimitUnset LimitState = iota
	LimitUnder
	LimitReached
	LimitExceeded
)

func (s LimitState) String() string {
	switch s {
	case LimitUnder:
		return "under"
	case LimitReached:
		return "reached"
	case LimitExceeded:
		return "exceeded"
	default:
		return "unset"
	}
}

// File permissions
const (
	PermissionDataFile   = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)

// IsOverall reports whether name refers to the Overall ledger. A blank name
// counts, since commands default to Overall when no category is given.
func IsOverall(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed == "" || strings.EqualFold(trimmed, OverallCategory)
}
