package services

import (
	"encoding/json"

	"github.com/signingconnect/signingconnect-api/internal/models"
	"gorm.io/gorm"
)

// RecordAudit appends an audit_log row for a state-changing action.
// Callers inside a transaction pass the tx handle so the audit row
// commits or rolls back with the change it describes.
func RecordAudit(tx *gorm.DB, userID *uint64, action, entityType string, entityID uint64, oldValues, newValues map[string]interface{}) error {
	entry := models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}

	if oldValues != nil {
		data, err := json.Marshal(oldValues)
		if err != nil {
			return err
		}
		if err := entry.OldValues.Scan(data); err != nil {
			return err
		}
	}
	if newValues != nil {
		data, err := json.Marshal(newValues)
		if err != nil {
			return err
		}
		if err := entry.NewValues.Scan(data); err != nil {
			return err
		}
	}

	return tx.Create(&entry).Error
}
