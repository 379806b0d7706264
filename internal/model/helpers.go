package model

import (
	"database/sql"
	"time"
)

// NullStringValue returns the string value or empty string.
func NullStringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// NullTimeValue formats a nullable timestamp as RFC3339, or empty string.
func NullTimeValue(nt sql.NullTime) string {
	if nt.Valid {
		return nt.Time.Format(time.RFC3339)
	}
	return ""
}
