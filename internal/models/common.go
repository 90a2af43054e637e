package models

import "time"

// AuditFields mirrors the audit columns every ledger table carries.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     int64     `db:"created_by"`
	LastUpdatedAt time.Time `db:"updated_at"`
	LastUpdatedBy int64     `db:"updated_by"`
	Version       int64     `db:"version"`
}
