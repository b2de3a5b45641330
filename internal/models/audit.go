package models

import "time"

// Audit actions recorded for privileged mutations.
const (
	AuditActionPromoteAdmin      = "USER_PROMOTE_ADMIN"
	AuditActionPromoteInstructor = "USER_PROMOTE_INSTRUCTOR"
	AuditActionUserDelete        = "USER_DELETE"
	AuditActionClassApprove      = "CLASS_APPROVE"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorEmail *string   `db:"actor_email" json:"actorEmail,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	Payload    []byte    `db:"payload" json:"payload,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
