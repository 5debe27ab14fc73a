package domain

import (
	"time"
)

type SkillCategory string

const (
	SkillAcrobatics SkillCategory = "acrobatics"
	SkillAerial     SkillCategory = "aerial"
	SkillJuggling   SkillCategory = "juggling"
	SkillFire       SkillCategory = "fire"
	SkillMagic      SkillCategory = "magic"
	SkillBalloon    SkillCategory = "balloon"
	SkillLED        SkillCategory = "led"
	SkillAmbient    SkillCategory = "ambient"
)

func (c SkillCategory) Valid() bool {
	switch c {
	case SkillAcrobatics, SkillAerial, SkillJuggling, SkillFire, SkillMagic, SkillBalloon, SkillLED, SkillAmbient:
		return true
	}
	return false
}

type Skill struct {
	Category    SkillCategory `json:"category"`
	Description string        `json:"description"`
}

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
	AvailabilityTentative   AvailabilityStatus = "tentative"
)

func (s AvailabilityStatus) Valid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityTentative:
		return true
	}
	return false
}

// Availability is a per-date entry. A performer holds at most one entry per
// calendar day; UpdateAvailability replaces the entry for a day in place.
type Availability struct {
	Date   time.Time          `json:"date"`
	Status AvailabilityStatus `json:"status"`
	Notes  string             `json:"notes,omitempty"`
}

type Performer struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Skills       []Skill        `json:"skills"`
	Availability []Availability `json:"availability"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// AvailabilityOn reports the entry covering the given calendar day, if any.
func (p *Performer) AvailabilityOn(date time.Time) (Availability, bool) {
	for _, a := range p.Availability {
		if sameDay(a.Date, date) {
			return a, true
		}
	}
	return Availability{}, false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
