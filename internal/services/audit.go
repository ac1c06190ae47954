package services

import (
	"context"
	"time"

	"github.com/minhph/resourcehub/internal/models"
	"github.com/minhph/resourcehub/pkg/logger"
	"gorm.io/gorm"
)

var auditDB *gorm.DB

// InitAuditLogger wires the database used by audit task processing.
func InitAuditLogger(db *gorm.DB) {
	auditDB = db
}

// ProcessAuditTask persists one audit entry. Used as the task queue/worker
// processor.
func ProcessAuditTask(ctx context.Context, task *AuditTask) error {
	if auditDB == nil {
		return nil
	}
	entry := &models.AuditLog{
		ActorID:   task.ActorID,
		Actor:     task.Actor,
		Action:    task.Action,
		Target:    task.Target,
		Details:   task.Details,
		IP:        task.IP,
		CreatedAt: time.Now(),
	}
	return auditDB.WithContext(ctx).Create(entry).Error
}

// RecordAudit appends one audit-trail entry through the task queue.
// Best-effort: failures are logged locally and never surfaced to the caller
// or allowed to block the primary operation.
func RecordAudit(actorID *uint, actor, action, target, details, ip string) {
	queue := GetTaskQueue()
	if queue == nil {
		return
	}
	task := &AuditTask{
		ActorID: actorID,
		Actor:   actor,
		Action:  action,
		Target:  target,
		Details: details,
		IP:      ip,
	}
	if err := queue.Enqueue(task); err != nil {
		logger.Warnf("[Audit] failed to enqueue audit entry: %v", err)
	}
}

type AuditLogService struct {
	db *gorm.DB
}

func NewAuditLogService(db *gorm.DB) *AuditLogService {
	return &AuditLogService{db: db}
}

type AuditLogListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Action    string `form:"action"`
	Actor     string `form:"actor"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Search    string `form:"search"`
}

type AuditLogListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.AuditLog `json:"items"`
}

// List returns paginated audit entries, newest first. The trail itself is
// append-only; this service never updates or deletes rows.
func (s *AuditLogService) List(req *AuditLogListRequest) (*AuditLogListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var entries []models.AuditLog
	var total int64

	query := s.db.Model(&models.AuditLog{})

	if req.Action != "" {
		query = query.Where("action = ?", req.Action)
	}
	if req.Actor != "" {
		query = query.Where("actor LIKE ?", "%"+req.Actor+"%")
	}
	if req.StartDate != "" {
		query = query.Where("created_at >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("created_at <= ?", req.EndDate+" 23:59:59")
	}
	if req.Search != "" {
		query = query.Where("details LIKE ? OR target LIKE ?", "%"+req.Search+"%", "%"+req.Search+"%")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Offset(offset).Limit(req.PageSize).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	return &AuditLogListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    entries,
	}, nil
}
