package service

import (
	"context"
	"encoding/json"
	"fmt"

	"laundrybill/internal/model"
	"laundrybill/internal/repository"
	"laundrybill/pkg/pagination"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page pagination.Params) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) GetAuditLogs(ctx context.Context, page pagination.Params) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.repo.List(ctx, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, storeError("Audit log", "fetching audit logs", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}

// writeAudit records one entry; details is stored as JSON.
func writeAudit(ctx context.Context, repo repository.AuditRepository, action, entityID, entityName string, details interface{}) error {
	if repo == nil {
		return nil
	}
	payload := []byte("{}")
	if details != nil {
		encoded, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
		payload = encoded
	}
	return repo.Log(ctx, &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}
