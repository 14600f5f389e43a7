package resource

import (
	"enrolladmin/internal/domain/course"
	"enrolladmin/internal/domain/enrollment"
	"enrolladmin/internal/domain/group"
	"enrolladmin/internal/domain/invoice"
	"enrolladmin/internal/domain/participant"
	"enrolladmin/internal/domain/user"
	"enrolladmin/internal/listing"
)

var (
	courseColumns = []Column{
		{Key: "id", Title: "ID", Sort: "id"},
		{Key: "code", Title: "Code", Sort: "code"},
		{Key: "title", Title: "Title", Sort: "title"},
		{Key: "category", Title: "Category", Sort: "category"},
		{Key: "status", Title: "Status", Sort: "status"},
		{Key: "price", Title: "Price", Sort: "price"},
		{Key: "hours", Title: "Hours", Sort: "hours"},
		{Key: "starts_on", Title: "Starts", Sort: "starts_on"},
	}
	courseFilters = []Filter{
		{Key: "status", Kind: FilterEnum, Values: strs(course.Statuses)},
		{Key: "category", Kind: FilterEnum, Values: course.Categories},
		{Key: "starts_from", Kind: FilterDate},
	}

	groupColumns = []Column{
		{Key: "id", Title: "ID", Sort: "id"},
		{Key: "name", Title: "Group", Sort: "name"},
		{Key: "course", Title: "Course", Sort: "course"},
		{Key: "instructor", Title: "Instructor", Sort: "instructor"},
		{Key: "status", Title: "Status", Sort: "status"},
		{Key: "seats", Title: "Seats", Sort: "enrolled"},
		{Key: "starts_on", Title: "Starts", Sort: "starts_on"},
	}
	groupFilters = []Filter{
		{Key: "course_id", Kind: FilterID},
		{Key: "status", Kind: FilterEnum, Values: strs(group.Statuses)},
		{Key: "starts_from", Kind: FilterDate},
	}

	enrollmentColumns = []Column{
		{Key: "id", Title: "ID", Sort: "id"},
		{Key: "participant", Title: "Participant", Sort: "participant"},
		{Key: "course", Title: "Course", Sort: "course"},
		{Key: "group", Title: "Group", Sort: "group"},
		{Key: "status", Title: "Status", Sort: "status"},
		{Key: "enrolled_on", Title: "Enrolled", Sort: "enrolled_on"},
	}
	enrollmentFilters = []Filter{
		{Key: "group_id", Kind: FilterID},
		{Key: "course_id", Kind: FilterID},
		{Key: "participant_id", Kind: FilterID},
		{Key: "status", Kind: FilterEnum, Values: strs(enrollment.Statuses)},
	}

	participantColumns = []Column{
		{Key: "id", Title: "ID", Sort: "id"},
		{Key: "name", Title: "Name", Sort: "last_name"},
		{Key: "email", Title: "Email", Sort: "email"},
		{Key: "phone", Title: "Phone"},
		{Key: "company", Title: "Company", Sort: "company"},
		{Key: "status", Title: "Status", Sort: "status"},
	}
	participantFilters = []Filter{
		{Key: "status", Kind: FilterEnum, Values: strs(participant.Statuses)},
		{Key: "company", Kind: FilterText},
	}

	invoiceColumns = []Column{
		{Key: "id", Title: "ID", Sort: "id"},
		{Key: "number", Title: "Number", Sort: "number"},
		{Key: "participant", Title: "Participant", Sort: "participant"},
		{Key: "amount", Title: "Amount", Sort: "amount"},
		{Key: "balance", Title: "Balance"},
		{Key: "status", Title: "Status", Sort: "status"},
		{Key: "due_on", Title: "Due", Sort: "due_on"},
	}
	invoiceFilters = []Filter{
		{Key: "participant_id", Kind: FilterID},
		{Key: "enrollment_id", Kind: FilterID},
		{Key: "status", Kind: FilterEnum, Values: strs(invoice.Statuses)},
		{Key: "due_before", Kind: FilterDate},
	}

	userColumns = []Column{
		{Key: "id", Title: "ID", Sort: "id"},
		{Key: "name", Title: "Name", Sort: "name"},
		{Key: "email", Title: "Email", Sort: "email"},
		{Key: "role", Title: "Role", Sort: "role"},
		{Key: "status", Title: "Status", Sort: "status"},
		{Key: "last_login_at", Title: "Last login", Sort: "last_login_at"},
	}
	userFilters = []Filter{
		{Key: "role", Kind: FilterEnum, Values: strs(user.Roles)},
		{Key: "status", Kind: FilterEnum, Values: strs(user.Statuses)},
	}
)

// DefaultScreens returns every list screen of the dashboard
func DefaultScreens() []Screen {
	return []Screen{
		{Name: "courses", Type: Courses, Title: "Courses", Endpoint: "courses", Columns: courseColumns, Filters: courseFilters},
		{Name: "courses-published", Type: Courses, Title: "Published courses", Endpoint: "courses", Columns: courseColumns, Filters: courseFilters,
			Defaults: listing.Filters{"status": string(course.StatusPublished)}},

		{Name: "groups", Type: Groups, Title: "Groups", Endpoint: "groups", Columns: groupColumns, Filters: groupFilters},
		{Name: "groups-open", Type: Groups, Title: "Open groups", Endpoint: "groups", Columns: groupColumns, Filters: groupFilters,
			Defaults: listing.Filters{"status": string(group.StatusOpen)}},
		{Name: "course-groups", Type: Groups, Title: "Groups of a course", Endpoint: "groups", Columns: groupColumns, Filters: groupFilters,
			Required: []string{"course_id"}},

		{Name: "enrollments", Type: Enrollments, Title: "Enrollments", Endpoint: "enrollments", Columns: enrollmentColumns, Filters: enrollmentFilters},
		{Name: "enrollments-pending", Type: Enrollments, Title: "Pending enrollments", Endpoint: "enrollments", Columns: enrollmentColumns, Filters: enrollmentFilters,
			Defaults: listing.Filters{"status": string(enrollment.StatusPending)}},
		{Name: "group-enrollments", Type: Enrollments, Title: "Enrollments of a group", Endpoint: "enrollments", Columns: enrollmentColumns, Filters: enrollmentFilters,
			Required: []string{"group_id"}},
		{Name: "participant-enrollments", Type: Enrollments, Title: "Enrollments of a participant", Endpoint: "enrollments", Columns: enrollmentColumns, Filters: enrollmentFilters,
			Required: []string{"participant_id"}},

		{Name: "participants", Type: Participants, Title: "Participants", Endpoint: "participants", Columns: participantColumns, Filters: participantFilters},

		{Name: "invoices", Type: Invoices, Title: "Invoices", Endpoint: "invoices", Columns: invoiceColumns, Filters: invoiceFilters},
		{Name: "invoices-unpaid", Type: Invoices, Title: "Unpaid invoices", Endpoint: "invoices", Columns: invoiceColumns, Filters: invoiceFilters,
			Defaults: listing.Filters{"status": string(invoice.StatusUnpaid)}},
		{Name: "participant-invoices", Type: Invoices, Title: "Invoices of a participant", Endpoint: "invoices", Columns: invoiceColumns, Filters: invoiceFilters,
			Required: []string{"participant_id"}},

		{Name: "users", Type: Users, Title: "Users", Endpoint: "users", Columns: userColumns, Filters: userFilters},
		{Name: "instructors", Type: Users, Title: "Instructors", Endpoint: "users", Columns: userColumns, Filters: userFilters,
			Defaults: listing.Filters{"role": string(user.RoleInstructor)}},
	}
}

func strs[S ~string](xs []S) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = string(x)
	}
	return out
}
