package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/httpresp"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 200
)

// auditLogQuery is the parsed query string of GET /api/auth/audit-logs.
// Malformed values fall back to defaults instead of failing the request.
type auditLogQuery struct {
	Page    int
	Limit   int
	Action  string
	Entity  string
	ActorID string
	From    *time.Time
	// Until is exclusive: the day after the requested "to" date.
	Until *time.Time
}

func parseAuditLogQuery(c *gin.Context) auditLogQuery {
	q := auditLogQuery{
		Page:    1,
		Limit:   auditDefaultLimit,
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		ActorID: c.Query("actor_id"),
	}

	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 && n <= auditMaxLimit {
		q.Limit = n
	}
	if d, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = &d
	}
	if d, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		until := d.AddDate(0, 0, 1)
		q.Until = &until
	}
	return q
}

func (q auditLogQuery) scope(db *gorm.DB) *gorm.DB {
	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if q.ActorID != "" {
		db = db.Where("actor_id = ?", q.ActorID)
	}
	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.Until != nil {
		db = db.Where("created_at < ?", *q.Until)
	}
	return db
}

type auditLogPage struct {
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"logs"`
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

// NewAuditLogsHandler accepts a nil db; the endpoint then reports
// feature_disabled.
func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if h.db == nil {
		httperr.FromError(c, httperr.ErrFeatureDisabled)
		return
	}

	q := parseAuditLogQuery(c)
	base := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Scopes(q.scope)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Failed to count audit logs.")
		return
	}

	out := auditLogPage{Page: q.Page, Limit: q.Limit, Total: total, Logs: []models.AuditLog{}}
	if err := base.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&out.Logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.OK(c, out)
}
