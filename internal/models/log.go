package models

import "time"

// AuditLog records every authenticated mutation for traceability.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	RequestID string `gorm:"size:36;index"`
	CompanyID uint   `gorm:"index"`
	UserID    uint   `gorm:"index"`
	Method    string `gorm:"size:16"`
	Path      string `gorm:"size:255"`
	Status    int
	IP        string `gorm:"size:64"`
	UserAgent string `gorm:"size:255"`
	CreatedAt time.Time
}
