// Package audit records admin actions in the database.
package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Entry is a row in the audit_logs table: who did what to the listings.
type Entry struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"index"`
	Username  string    `gorm:"index"`
	Action    string    `gorm:"index"`
	Fields    *string // JSON string of action details
}

// TableName overrides the table name used by Entry
func (Entry) TableName() string {
	return "audit_logs"
}

type Logger struct {
	db *gorm.DB
}

// New creates a new audit Logger. The audit_logs table is created by the
// database package's migration pass.
func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Record inserts an audit entry. Failures are returned, not fatal: audit
// writes must never block the action they describe.
func (l *Logger) Record(username, action string, fields map[string]interface{}) error {
	var fieldsJSON *string
	if len(fields) > 0 {
		jsonStr, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %v", err)
		}
		strJSON := string(jsonStr)
		fieldsJSON = &strJSON
	}

	entry := Entry{
		Timestamp: time.Now(),
		Username:  username,
		Action:    action,
		Fields:    fieldsJSON,
	}

	if err := l.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to insert audit entry: %v", err)
	}

	return nil
}
