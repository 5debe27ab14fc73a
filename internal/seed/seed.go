// Package seed loads a small curated agency dataset, useful for demos and
// local development.
package seed

import (
	"context"
	"log/slog"
	"time"

	"github.com/circussync/backend/internal/domain"
	"github.com/circussync/backend/internal/service"
)

// SeedableRoles are the roles random users get assigned. Admins are only
// created through the bootstrap config.
func SeedableRoles() []domain.Role {
	return []domain.Role{
		domain.RoleReadOnly,
		domain.RolePerformer,
		domain.RoleManager,
	}
}

func daysFromNow(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

func ptr[T any](v T) *T {
	return &v
}

func SeedSampleData(ctx context.Context, services *service.Service) {
	performers := []domain.Performer{
		{
			Name:  "Marlene Hoffmann",
			Email: "marlene@example.com",
			Phone: "+49 170 2233445",
			Skills: []domain.Skill{
				{Category: domain.SkillAerial, Description: "Vertical rope and silks"},
				{Category: domain.SkillAcrobatics, Description: "Hand balancing"},
			},
		},
		{
			Name:  "Tomas Krejci",
			Email: "tomas@example.com",
			Phone: "+420 777 112233",
			Skills: []domain.Skill{
				{Category: domain.SkillJuggling, Description: "7 clubs, passing"},
				{Category: domain.SkillFire, Description: "Fire staff finale"},
			},
		},
		{
			Name:  "Silvia Ortega",
			Email: "silvia@example.com",
			Phone: "+34 612 998877",
			Skills: []domain.Skill{
				{Category: domain.SkillMagic, Description: "Close-up and parlor"},
				{Category: domain.SkillAmbient, Description: "Walking act: the fortune teller"},
			},
		},
	}

	performerIDs := make([]string, 0, len(performers))
	for i := range performers {
		id, err := services.Performers.Add(ctx, &performers[i])
		if err != nil {
			slog.Error("unable to insert performer", "error", err)
			return
		}
		performerIDs = append(performerIDs, id)
	}

	clients := []domain.Client{
		{
			Name:          "Hafenfest Hamburg",
			ContactPerson: "Jens Petersen",
			Email:         "petersen@hafenfest.example.com",
			Phone:         "+49 40 5551234",
			Status:        domain.ClientStatusYearly,
			EventTypes:    []string{"street festival"},
			ServicesUsed:  []string{"walking acts", "fire show"},
			NextFollowUp: &domain.FollowUp{
				Date: ptr(daysFromNow(5)),
				Task: "Confirm lineup for the summer edition",
			},
		},
		{
			Name:          "Keller & Sohn AG",
			ContactPerson: "Birgit Keller",
			Email:         "events@keller-sohn.example.com",
			Phone:         "+49 89 5559876",
			Status:        domain.ClientStatusActive,
			EventTypes:    []string{"corporate", "gala"},
			ServicesUsed:  []string{"stage show"},
		},
		{
			Name:          "Stadthalle Leipzig",
			ContactPerson: "Robert Fischer",
			Email:         "fischer@stadthalle.example.com",
			Phone:         "+49 341 5554321",
			Status:        domain.ClientStatusLead,
			EventTypes:    []string{"varieté"},
		},
	}

	clientIDs := make([]string, 0, len(clients))
	for i := range clients {
		id, err := services.Clients.Add(ctx, &clients[i])
		if err != nil {
			slog.Error("unable to insert client", "error", err)
			return
		}
		clientIDs = append(clientIDs, id)
	}

	events := []domain.Event{
		{
			Name:     "Hafenfest opening night",
			Date:     daysFromNow(30),
			Location: "Hamburg",
			Status:   domain.EventStatusConfirmed,
			Client:   clientIDs[0],
			Performers: []domain.Assignment{
				{Performer: performerIDs[0], Role: "aerial act", Pay: 650, Confirmed: true},
				{Performer: performerIDs[1], Role: "fire finale", Pay: 550, Confirmed: true},
			},
		},
		{
			Name:     "Keller & Sohn anniversary gala",
			Date:     daysFromNow(45),
			Location: "Munich",
			Status:   domain.EventStatusProposed,
			Client:   clientIDs[1],
			Performers: []domain.Assignment{
				{Performer: performerIDs[2], Role: "table magic", Pay: 480, Confirmed: false},
			},
			Notes: "Waiting on signed offer",
		},
		{
			Name:     "Varieté tryout evening",
			Date:     daysFromNow(60),
			Location: "Leipzig",
			Status:   domain.EventStatusInquiry,
			Client:   clientIDs[2],
		},
	}

	for i := range events {
		if _, err := services.Events.Add(ctx, &events[i]); err != nil {
			slog.Error("unable to insert event", "error", err)
			return
		}
	}

	agents := []domain.Agent{
		{
			Name:           "Petra Lombardi",
			Email:          "petra@agency.example.com",
			Phone:          "+49 30 5557788",
			Specialization: []string{"corporate", "gala"},
		},
		{
			Name:           "Henk Jansen",
			Email:          "henk@agency.example.com",
			Phone:          "+31 20 5553344",
			Specialization: []string{"street festival"},
		},
	}

	for i := range agents {
		if _, err := services.Agents.Add(ctx, &agents[i]); err != nil {
			slog.Error("unable to insert agent", "error", err)
			return
		}
	}

	slog.Info("sample data inserted",
		"performers", len(performers),
		"clients", len(clients),
		"events", len(events),
		"agents", len(agents),
	)
}
