package domain

import (
	"time"
)

type EntityType string

const (
	EntityClient    EntityType = "client"
	EntityPerformer EntityType = "performer"
	EntityEvent     EntityType = "event"
	EntityAgent     EntityType = "agent"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityClient, EntityPerformer, EntityEvent, EntityAgent:
		return true
	}
	return false
}

// Relation ties a document to exactly one other entity.
type Relation struct {
	Type EntityType `json:"type"`
	ID   string     `json:"id"`
}

type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	RelatedTo   Relation  `json:"relatedTo"`
	UploadedBy  string    `json:"uploadedBy"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
