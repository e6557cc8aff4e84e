// Package model holds the GORM persistence models. They never leave the infra layer.
package model

import "time"

// CredentialModel mirrors the 'credentials' table. The email is the primary key.
type CredentialModel struct {
	Email        string    `gorm:"type:varchar(255);primaryKey"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}
