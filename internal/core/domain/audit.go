package domain

import (
	"errors"
	"time"
)

// AuditAction represents a type-safe action identifier for the audit log.
type AuditAction string

const (
	ActionSecurityUpdate AuditAction = "SECURITY_UPDATE"
	ActionConfigChange   AuditAction = "CONFIG_CHANGE"
	ActionReportExport   AuditAction = "REPORT_EXPORT"
)

var (
	ErrInvalidAction = errors.New("invalid audit action")
	ErrMissingUser   = errors.New("user identification is required for auditing")
)

// AuditLog is a record of a configuration change made through the dashboard.
type AuditLog struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"`
	Details   string      `json:"details"`
	IPAddress string      `json:"ip_address"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewAuditLog is the designated factory for creating valid AuditLog entities.
func NewAuditLog(id, username string, action AuditAction, target, details, ip string) (*AuditLog, error) {
	if username == "" {
		return nil, ErrMissingUser
	}
	if !isValidAction(action) {
		return nil, ErrInvalidAction
	}
	return &AuditLog{
		ID:        id,
		Username:  username,
		Action:    action,
		Target:    target,
		Details:   details,
		IPAddress: ip,
		Timestamp: time.Now().UTC(),
	}, nil
}

func isValidAction(action AuditAction) bool {
	switch action {
	case ActionSecurityUpdate, ActionConfigChange, ActionReportExport:
		return true
	}
	return false
}
