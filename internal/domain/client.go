package domain

import (
	"time"
)

type ClientStatus string

const (
	ClientStatusLead     ClientStatus = "lead"
	ClientStatusActive   ClientStatus = "active"
	ClientStatusYearly   ClientStatus = "yearly"
	ClientStatusInactive ClientStatus = "inactive"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientStatusLead, ClientStatusActive, ClientStatusYearly, ClientStatusInactive:
		return true
	}
	return false
}

// FollowUp is the single optional next contact planned for a client.
type FollowUp struct {
	Date *time.Time `json:"date"`
	Task string     `json:"task"`
}

type Client struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ContactPerson string       `json:"contactPerson"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Address       string       `json:"address"`
	EventTypes    []string     `json:"eventTypes"`
	ServicesUsed  []string     `json:"servicesUsed"`
	Status        ClientStatus `json:"status"`
	LastPerformed *time.Time   `json:"lastPerformed,omitempty"`
	LastContacted *time.Time   `json:"lastContacted,omitempty"`
	NextFollowUp  *FollowUp    `json:"nextFollowUp,omitempty"`
	Notes         string       `json:"notes"`
	Events        []string     `json:"events"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
