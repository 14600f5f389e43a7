package participant

import (
	"strconv"
	"strings"
)

// Participant is a person who can be enrolled into groups
type Participant struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Status    Status `json:"status"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var Statuses = []Status{StatusActive, StatusInactive}

// FullName joins first and last name, skipping blanks
func (p Participant) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Participant) Cell(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(p.ID, 10)
	case "name":
		return p.FullName()
	case "email":
		return p.Email
	case "phone":
		return p.Phone
	case "company":
		return p.Company
	case "status":
		return string(p.Status)
	}
	return ""
}
