package main

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/signingconnect/signingconnect-api/internal/models"
	"gorm.io/gorm"
)

// Dev tool: print the DDL GORM generates for the models, for comparing
// against data/initdb/postgres/001-schema.sql after model changes.
func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	err = db.AutoMigrate(
		&models.Application{},
		&models.User{},
		&models.Job{},
		&models.JobApplication{},
		&models.Document{},
		&models.Review{},
		&models.Notification{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal(err)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw(fmt.Sprintf("SELECT sql FROM sqlite_master WHERE name='%s'", table)).Scan(&schema)
		fmt.Println(schema)
	}
}
