package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a free-text comment written by an identity.
type Review struct {
	ID        uuid.UUID
	UserID    uuid.UUID // References Identity.ID.
	Content   string
	CreatedAt time.Time
}

// ReviewWithAuthor pairs a review with its author's name as stored at read time.
type ReviewWithAuthor struct {
	Review
	UserName string
}
