package group

import (
	"fmt"
	"strconv"
)

// Group is a scheduled run of a course
type Group struct {
	ID         int64  `json:"id"`
	CourseID   int64  `json:"course_id"`
	Course     string `json:"course"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
	Location   string `json:"location"`
	Status     Status `json:"status"`
	Capacity   int    `json:"capacity"`
	Enrolled   int    `json:"enrolled"`
	StartsOn   string `json:"starts_on"`
	EndsOn     string `json:"ends_on"`
}

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusOpen      Status = "open"
	StatusFull      Status = "full"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPlanned, StatusOpen, StatusFull, StatusRunning, StatusCompleted, StatusCancelled}

// SeatsLeft never goes below zero, overbooked groups report 0
func (g Group) SeatsLeft() int {
	return max(g.Capacity-g.Enrolled, 0)
}

func (g Group) Cell(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(g.ID, 10)
	case "course":
		return g.Course
	case "name":
		return g.Name
	case "instructor":
		return g.Instructor
	case "location":
		return g.Location
	case "status":
		return string(g.Status)
	case "seats":
		return fmt.Sprintf("%d/%d", g.Enrolled, g.Capacity)
	case "starts_on":
		return g.StartsOn
	case "ends_on":
		return g.EndsOn
	}
	return ""
}
