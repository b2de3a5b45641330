package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/music-school-api/internal/models"
)

// AuditRepository appends audit trail entries.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog stores an audit log entry.
func (r *AuditRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	var payload interface{}
	if len(log.Payload) > 0 {
		payload = string(log.Payload)
	}
	const query = `INSERT INTO audit_logs (id, actor_email, action, resource, resource_id, payload, ip_address, user_agent, created_at) VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9)`
	if _, err := r.db.ExecContext(ctx, query, log.ID, log.ActorEmail, log.Action, log.Resource, log.ResourceID, payload, log.IPAddress, log.UserAgent, log.CreatedAt); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
