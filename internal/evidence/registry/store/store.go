// Package store caches registry snapshots by SIRET.
//
// Entries expire after the retention period and carry their storage time so
// the gateway can check freshness against its own TTL.
package store

import (
	"time"

	"moncomptepro/internal/organization/models"
)

// Entry is a cached registry snapshot.
type Entry struct {
	Info     models.OrganizationInfo `json:"info"`
	StoredAt time.Time               `json:"stored_at"`
}

// Age returns how old the entry is at now.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}
