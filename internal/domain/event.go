package domain

import (
	"time"
)

type EventStatus string

const (
	EventStatusInquiry   EventStatus = "inquiry"
	EventStatusProposed  EventStatus = "proposed"
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusInquiry, EventStatusProposed, EventStatusConfirmed, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Assignment joins an event to a performer with the booking terms for that
// engagement.
type Assignment struct {
	Performer string  `json:"performer"`
	Role      string  `json:"role"`
	Pay       float64 `json:"pay"`
	Confirmed bool    `json:"confirmed"`
}

type Event struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Date       time.Time    `json:"date"`
	Location   string       `json:"location"`
	Status     EventStatus  `json:"status"`
	Client     string       `json:"client"`
	Performers []Assignment `json:"performers"`
	Notes      string       `json:"notes"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// UnknownPerformerName is the placeholder used when an assignment references
// a performer record that no longer resolves.
const UnknownPerformerName = "Unknown performer"
