package sandbox

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"enrolladmin/internal/domain/course"
	"enrolladmin/internal/domain/enrollment"
	"enrolladmin/internal/domain/group"
	"enrolladmin/internal/domain/invoice"
	"enrolladmin/internal/domain/participant"
	"enrolladmin/internal/domain/user"
	"enrolladmin/internal/resource"

	"github.com/shopspring/decimal"
)

const (
	seedCourses      = 24
	seedGroups       = 60
	seedParticipants = 150
	seedEnrollments  = 320
	seedUsers        = 8
	currency         = "EUR"
)

var (
	seedEpoch = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	firstNames = []string{"Ada", "Bruno", "Chiara", "Dmitri", "Elif", "Farah", "Goran", "Hana", "Ivo", "Jana", "Kofi", "Lena", "Mateo", "Nora", "Omar", "Petra"}
	lastNames  = []string{"Novak", "Horvat", "Kovac", "Rossi", "Schmidt", "Yilmaz", "Haddad", "Mensah", "Lindqvist", "Moreau", "Costa", "Weber"}
	companies  = []string{"Acme", "Blue Harbor", "Cedar Labs", "Delta Freight", "Evergreen", "Fjord Energy", ""}
	locations  = []string{"Room 101", "Room 204", "Lab A", "Online", "Harbour Centre"}
	topics     = map[string][]string{
		"management": {"Project Management", "Leading Teams", "Agile Delivery"},
		"finance":    {"Bookkeeping", "Financial Reporting", "Payroll Basics"},
		"it":         {"Go Programming", "Linux Administration", "SQL Fundamentals", "Cloud Networking"},
		"languages":  {"Business English", "German A2", "Spanish B1"},
		"safety":     {"First Aid", "Fire Safety", "Workplace Ergonomics"},
	}
)

// Generate returns the seeded rows of every resource as JSON documents
func Generate(seed int64) (map[resource.Type][]json.RawMessage, error) {
	out := make(map[resource.Type][]json.RawMessage, len(resource.Types))
	for t, rows := range generate(seed) {
		docs := make([]json.RawMessage, 0, len(rows))
		for _, row := range rows {
			raw, err := json.Marshal(row)
			if err != nil {
				return nil, fmt.Errorf("seed %s: %w", t, err)
			}
			docs = append(docs, raw)
		}
		out[t] = docs
	}
	return out, nil
}

// generate builds a consistent data set: groups reference courses,
// enrollments reference groups and participants, invoices reference
// enrollments.
func generate(seed int64) map[resource.Type][]any {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	pick := func(xs []string) string { return xs[rng.IntN(len(xs))] }
	day := func(offset int) string { return seedEpoch.AddDate(0, 0, offset).Format(time.DateOnly) }

	courses := make([]course.Course, seedCourses)
	for i := range courses {
		cat := course.Categories[i%len(course.Categories)]
		title := topics[cat][(i/len(course.Categories))%len(topics[cat])]
		if i >= len(course.Categories)*3 {
			title += " II"
		}
		courses[i] = course.Course{
			ID:        int64(i + 1),
			Code:      fmt.Sprintf("%s-%03d", strings.ToUpper(cat[:min(3, len(cat))]), 100+i),
			Title:     title,
			Category:  cat,
			Status:    course.Statuses[rng.IntN(len(course.Statuses))],
			Price:     decimal.NewFromInt(int64(150 + rng.IntN(40)*25)),
			Currency:  currency,
			Hours:     8 * (1 + rng.IntN(6)),
			StartsOn:  day(rng.IntN(180)),
			CreatedAt: seedEpoch.AddDate(0, 0, -rng.IntN(365)),
		}
	}

	users := make([]user.User, seedUsers)
	var instructors []string
	for i := range users {
		name := firstNames[(i*5)%len(firstNames)] + " " + lastNames[(i*7)%len(lastNames)]
		role := user.RoleInstructor
		switch {
		case i == 0:
			role = user.RoleAdmin
		case i%3 == 1:
			role = user.RoleStaff
		}
		u := user.User{
			ID:     int64(i + 1),
			Name:   name,
			Email:  strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@enroll.test",
			Role:   role,
			Status: user.StatusActive,
		}
		if i == seedUsers-1 {
			u.Status = user.StatusDisabled
		}
		if i%4 != 3 {
			at := seedEpoch.Add(-time.Duration(rng.IntN(30*24)) * time.Hour)
			u.LastLoginAt = &at
		}
		if role == user.RoleInstructor {
			instructors = append(instructors, name)
		}
		users[i] = u
	}

	groups := make([]group.Group, seedGroups)
	for i := range groups {
		c := courses[rng.IntN(len(courses))]
		start := rng.IntN(200) - 60
		groups[i] = group.Group{
			ID:         int64(i + 1),
			CourseID:   c.ID,
			Course:     c.Title,
			Name:       fmt.Sprintf("%s/%02d", c.Code, i+1),
			Instructor: pick(instructors),
			Location:   pick(locations),
			Capacity:   8 + rng.IntN(4)*4,
			StartsOn:   day(start),
			EndsOn:     day(start + 5 + rng.IntN(30)),
		}
	}

	participants := make([]participant.Participant, seedParticipants)
	for i := range participants {
		first, last := pick(firstNames), pick(lastNames)
		participants[i] = participant.Participant{
			ID:        int64(i + 1),
			FirstName: first,
			LastName:  last,
			Email:     fmt.Sprintf("%s.%s%d@mail.test", strings.ToLower(first), strings.ToLower(last), i+1),
			Phone:     fmt.Sprintf("+385 91 %03d %04d", rng.IntN(1000), rng.IntN(10000)),
			Company:   pick(companies),
			Status:    participant.StatusActive,
		}
		if rng.IntN(10) == 0 {
			participants[i].Status = participant.StatusInactive
		}
	}

	enrollments := make([]enrollment.Enrollment, seedEnrollments)
	for i := range enrollments {
		g := &groups[rng.IntN(len(groups))]
		p := participants[rng.IntN(len(participants))]
		e := enrollment.Enrollment{
			ID:            int64(i + 1),
			GroupID:       g.ID,
			Group:         g.Name,
			CourseID:      g.CourseID,
			Course:        g.Course,
			ParticipantID: p.ID,
			Participant:   p.FullName(),
			Status:        enrollment.Statuses[rng.IntN(len(enrollment.Statuses))],
			EnrolledOn:    day(-rng.IntN(120)),
		}
		if e.IsActive() {
			g.Enrolled++
		}
		enrollments[i] = e
	}
	for i := range groups {
		groups[i].Status = groupStatus(groups[i], rng)
	}

	var invoices []invoice.Invoice
	for _, e := range enrollments {
		if e.Status == enrollment.StatusPending {
			continue
		}
		c := courses[e.CourseID-1]
		inv := invoice.Invoice{
			ID:            int64(len(invoices) + 1),
			Number:        fmt.Sprintf("INV-2026-%04d", len(invoices)+1),
			EnrollmentID:  e.ID,
			ParticipantID: e.ParticipantID,
			Participant:   e.Participant,
			Amount:        c.Price,
			Currency:      currency,
			Status:        invoice.StatusUnpaid,
			IssuedOn:      e.EnrolledOn,
			DueOn:         day(-rng.IntN(120) + 30),
		}
		switch rng.IntN(4) {
		case 0:
			inv.Paid = decimal.Zero
		case 1:
			inv.Paid = c.Price.Div(decimal.NewFromInt(2)).Round(2)
		default:
			inv.Paid = c.Price
		}
		if e.Status == enrollment.StatusCancelled {
			inv.Status = invoice.StatusVoid
		}
		inv.Status = inv.SettlementStatus()
		invoices = append(invoices, inv)
	}

	return map[resource.Type][]any{
		resource.Courses:      toAny(courses),
		resource.Groups:       toAny(groups),
		resource.Enrollments:  toAny(enrollments),
		resource.Participants: toAny(participants),
		resource.Invoices:     toAny(invoices),
		resource.Users:        toAny(users),
	}
}

func groupStatus(g group.Group, rng *rand.Rand) group.Status {
	if rng.IntN(12) == 0 {
		return group.StatusCancelled
	}
	starts, _ := time.Parse(time.DateOnly, g.StartsOn)
	ends, _ := time.Parse(time.DateOnly, g.EndsOn)
	switch {
	case ends.Before(seedEpoch):
		return group.StatusCompleted
	case starts.Before(seedEpoch):
		return group.StatusRunning
	case g.SeatsLeft() == 0:
		return group.StatusFull
	case starts.After(seedEpoch.AddDate(0, 3, 0)):
		return group.StatusPlanned
	}
	return group.StatusOpen
}

func toAny[T any](xs []T) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}
