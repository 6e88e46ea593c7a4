package models

import "time"

// Document is metadata for an uploaded file tied to an application, job,
// or user. File content lives with the storage provider; only metadata
// is recorded here.
type Document struct {
	ID            uint64       `gorm:"primaryKey;autoIncrement" json:"id"`
	ApplicationID *uint64      `gorm:"index:idx_documents_application_id" json:"applicationId,omitempty"`
	Application   *Application `gorm:"foreignKey:ApplicationID" json:"-"`
	JobID         *uint64      `gorm:"index:idx_documents_job_id" json:"jobId,omitempty"`
	Job           *Job         `gorm:"foreignKey:JobID" json:"-"`
	UserID        *uint64      `json:"userId,omitempty"`
	User          *User        `gorm:"foreignKey:UserID" json:"-"`

	DocumentType     string `gorm:"size:50;not null;index:idx_documents_type" json:"documentType"`
	OriginalFilename string `gorm:"size:255;not null" json:"originalFilename"`
	StoredFilename   string `gorm:"size:255;not null" json:"storedFilename"`
	FileSize         int64  `gorm:"not null" json:"fileSize"`
	MimeType         string `gorm:"size:100;not null" json:"mimeType"`
	FileHash         string `gorm:"size:64" json:"fileHash,omitempty"`

	Encrypted     bool       `gorm:"default:true" json:"encrypted"`
	RetentionDate *time.Time `gorm:"type:date" json:"retentionDate,omitempty"`
	AccessedCount int64      `gorm:"default:0" json:"accessedCount"`

	UploadedAt   time.Time  `gorm:"autoCreateTime" json:"uploadedAt"`
	LastAccessed *time.Time `json:"lastAccessed,omitempty"`

	StorageProvider string `gorm:"size:20;default:'railway'" json:"storageProvider"`
	StoragePath     string `gorm:"not null" json:"storagePath"`
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "documents"
}
