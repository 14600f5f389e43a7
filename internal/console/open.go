package console

import (
	"fmt"

	"enrolladmin/internal/domain/course"
	"enrolladmin/internal/domain/enrollment"
	"enrolladmin/internal/domain/group"
	"enrolladmin/internal/domain/invoice"
	"enrolladmin/internal/domain/participant"
	"enrolladmin/internal/domain/user"
	"enrolladmin/internal/listing"
	"enrolladmin/internal/resource"
)

// Open creates the screen for def with the row type of its resource
func Open(def resource.Screen, lister Lister, filters listing.Filters, opts listing.Options) (Runner, error) {
	switch def.Type {
	case resource.Courses:
		return open[course.Course](def, lister, filters, opts)
	case resource.Groups:
		return open[group.Group](def, lister, filters, opts)
	case resource.Enrollments:
		return open[enrollment.Enrollment](def, lister, filters, opts)
	case resource.Participants:
		return open[participant.Participant](def, lister, filters, opts)
	case resource.Invoices:
		return open[invoice.Invoice](def, lister, filters, opts)
	case resource.Users:
		return open[user.User](def, lister, filters, opts)
	}
	return nil, fmt.Errorf("no row type for resource %q", def.Type)
}

func open[T Row](def resource.Screen, lister Lister, filters listing.Filters, opts listing.Options) (Runner, error) {
	s, err := NewScreen[T](def, lister, filters, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}
