package services

import (
	"time"

	"github.com/signingconnect/signingconnect-api/internal/config"
	"gorm.io/gorm"
)

// HealthStatus is the liveness payload for the /api/health endpoint.
type HealthStatus struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// CheckHealth pings the database and reports overall service health.
// Status degrades to "unhealthy" when the database is unreachable.
func CheckHealth(cfg *config.Config, db *gorm.DB) *HealthStatus {
	status := &HealthStatus{
		Status:      "healthy",
		Database:    "connected",
		Environment: cfg.Environment,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		status.Status = "unhealthy"
		status.Database = "disconnected"
	}
	return status
}
