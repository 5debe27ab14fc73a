package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/circussync/backend/internal/domain"
)

var firstNames = []string{
	"Ada", "Benno", "Carmen", "Dario", "Elena", "Felix", "Greta", "Hugo",
	"Ines", "Jonas", "Katja", "Luca", "Mira", "Nils", "Oona", "Pavel",
	"Rosa", "Stefan", "Tilda", "Viktor",
}
var lastNames = []string{
	"Albrecht", "Bauer", "Castellano", "Dvorak", "Egger", "Fischer",
	"Gruber", "Hoffmann", "Ivanov", "Jansen", "Keller", "Lombardi",
	"Moreau", "Novak", "Ortega", "Petrov", "Richter", "Santos",
	"Takacs", "Weber",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var companySuffixes = []string{"GmbH", "AG", "Events", "Festival", "Agentur", "Kulturhaus"}

func GenerateRandomCompanyName() string {
	return lastNames[rand.Intn(len(lastNames))] + " " + companySuffixes[rand.Intn(len(companySuffixes))]
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")
var digits = "0123456789"

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomEmail(name string, emailDomainName string) string {
	return fmt.Sprintf("%s%s@%s", name, GenerateRandomID(0, 3), emailDomainName)
}

var clientStatuses = []domain.ClientStatus{
	domain.ClientStatusLead,
	domain.ClientStatusActive,
	domain.ClientStatusYearly,
	domain.ClientStatusInactive,
}

var eventTypePool = []string{
	"gala", "corporate", "street festival", "christmas market",
	"varieté", "private party", "trade fair",
}

func GenerateRandomClient() *domain.Client {
	contact := GenerateRandomName()
	return &domain.Client{
		Name:          GenerateRandomCompanyName(),
		ContactPerson: contact,
		Email:         GenerateRandomEmail("booking", "example.com"),
		Phone:         fmt.Sprintf("+49 %d %d", rand.Intn(900)+100, rand.Intn(9000000)+1000000),
		Status:        clientStatuses[rand.Intn(len(clientStatuses))],
		EventTypes:    []string{eventTypePool[rand.Intn(len(eventTypePool))]},
	}
}

var skillCategories = []domain.SkillCategory{
	domain.SkillAcrobatics,
	domain.SkillAerial,
	domain.SkillJuggling,
	domain.SkillFire,
	domain.SkillMagic,
	domain.SkillBalloon,
	domain.SkillLED,
	domain.SkillAmbient,
}

func GenerateRandomPerformer() *domain.Performer {
	name := GenerateRandomName()
	skillsNum := rand.Intn(3) + 1
	skills := make([]domain.Skill, skillsNum)
	for i := range skills {
		skills[i] = domain.Skill{
			Category:    skillCategories[rand.Intn(len(skillCategories))],
			Description: "act " + GenerateRandomID(4, 2),
		}
	}

	return &domain.Performer{
		Name:   name,
		Email:  GenerateRandomEmail("artist", "example.com"),
		Phone:  fmt.Sprintf("+49 %d %d", rand.Intn(900)+100, rand.Intn(9000000)+1000000),
		Skills: skills,
	}
}

var eventStatuses = []domain.EventStatus{
	domain.EventStatusInquiry,
	domain.EventStatusProposed,
	domain.EventStatusConfirmed,
	domain.EventStatusCompleted,
	domain.EventStatusCancelled,
}

var eventLocations = []string{
	"Hamburg", "Berlin", "Munich", "Cologne", "Leipzig", "Bremen", "Vienna",
}

func GenerateRandomEvent(clientID string, performerIDs []string) *domain.Event {
	assignments := make([]domain.Assignment, 0, len(performerIDs))
	for _, id := range performerIDs {
		assignments = append(assignments, domain.Assignment{
			Performer: id,
			Role:      eventTypePool[rand.Intn(len(eventTypePool))] + " act",
			Pay:       float64(rand.Intn(15)+5) * 50,
			Confirmed: rand.Intn(2) == 0,
		})
	}

	// spread dates over roughly half a year around today
	date := time.Now().AddDate(0, 0, rand.Intn(180)-60)

	return &domain.Event{
		Name:       "Show " + GenerateRandomID(3, 3),
		Date:       date,
		Location:   eventLocations[rand.Intn(len(eventLocations))],
		Status:     eventStatuses[rand.Intn(len(eventStatuses))],
		Client:     clientID,
		Performers: assignments,
	}
}

func GenerateRandomAgent() *domain.Agent {
	specNum := rand.Intn(2) + 1
	specs := make([]string, specNum)
	for i := range specs {
		specs[i] = eventTypePool[rand.Intn(len(eventTypePool))]
	}

	return &domain.Agent{
		Name:           GenerateRandomName(),
		Email:          GenerateRandomEmail("agent", "example.com"),
		Phone:          fmt.Sprintf("+49 %d %d", rand.Intn(900)+100, rand.Intn(9000000)+1000000),
		Specialization: specs,
	}
}

var taskPool = []string{
	"Send offer", "Call back", "Prepare contract", "Book travel",
	"Confirm lineup", "Invoice client", "Update rider",
}

func GenerateRandomTask(userID string) *domain.Task {
	return &domain.Task{
		Description: taskPool[rand.Intn(len(taskPool))],
		DueDate:     time.Now().AddDate(0, 0, rand.Intn(30)+1),
		Completed:   rand.Intn(4) == 0,
		AssignedTo:  userID,
	}
}
