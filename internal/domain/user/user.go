package user

import (
	"strconv"
	"time"
)

// User is a dashboard account
type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	Status      Status     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleInstructor Role = "instructor"
)

var Roles = []Role{RoleAdmin, RoleStaff, RoleInstructor}

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

var Statuses = []Status{StatusActive, StatusDisabled}

func (u User) Cell(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(u.ID, 10)
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "role":
		return string(u.Role)
	case "status":
		return string(u.Status)
	case "last_login_at":
		if u.LastLoginAt == nil {
			return "never"
		}
		return u.LastLoginAt.Format(time.DateTime)
	}
	return ""
}
