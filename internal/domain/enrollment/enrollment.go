package enrollment

import "strconv"

// Enrollment links a participant to a group
type Enrollment struct {
	ID            int64  `json:"id"`
	GroupID       int64  `json:"group_id"`
	Group         string `json:"group"`
	CourseID      int64  `json:"course_id"`
	Course        string `json:"course"`
	ParticipantID int64  `json:"participant_id"`
	Participant   string `json:"participant"`
	Status        Status `json:"status"`
	EnrolledOn    string `json:"enrolled_on"`
}

// Status represents where an enrollment is in its lifecycle
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// IsActive reports whether the enrollment still holds a seat
func (e Enrollment) IsActive() bool {
	return e.Status == StatusPending || e.Status == StatusConfirmed
}

func (e Enrollment) Cell(column string) string {
	switch column {
	case "id":
		return strconv.FormatInt(e.ID, 10)
	case "group":
		return e.Group
	case "course":
		return e.Course
	case "participant":
		return e.Participant
	case "status":
		return string(e.Status)
	case "enrolled_on":
		return e.EnrolledOn
	}
	return ""
}
