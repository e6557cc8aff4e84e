package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityModel mirrors the 'identities' table. IDs are UUIDv7 generated by the application.
type IdentityModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email  string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name   string    `gorm:"type:varchar(100);not null"`
	Joined time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (IdentityModel) TableName() string {
	return "identities"
}
