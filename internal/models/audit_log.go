package models

import "time"

// Audit action tags
const (
	AuditLogin  = "LOGIN"
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditLog is an append-only record of who did what to which target.
// Rows are never updated or deleted by the application.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   *uint     `gorm:"index" json:"actor_id"`
	Actor     string    `gorm:"size:100;index" json:"actor"` // username
	Action    string    `gorm:"size:20;index" json:"action"` // LOGIN, CREATE, UPDATE, DELETE
	Target    string    `gorm:"size:200" json:"target"`      // e.g. "resource", "project PRJ-001"
	Details   string    `gorm:"type:text" json:"details"`
	IP        string    `gorm:"size:50" json:"ip"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
