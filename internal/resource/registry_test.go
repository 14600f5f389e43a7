package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	screens := r.List()
	assert.Len(t, screens, 15)
	for i := 1; i < len(screens); i++ {
		assert.Less(t, screens[i-1].Name, screens[i].Name)
	}
	for _, typ := range Types {
		assert.NotEmpty(t, r.ByType(typ), "no screen for %s", typ)
	}

	s, err := r.Get("group-enrollments")
	require.NoError(t, err)
	assert.Equal(t, Enrollments, s.Type)
	assert.Equal(t, "enrollments", s.Endpoint)
	assert.Equal(t, []string{"group_id"}, s.Required)
	assert.True(t, r.Has("instructors"))
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("courses")
	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrScreenNotFound, rerr.Code)

	s := Screen{Name: "courses", Type: Courses, Endpoint: "courses", Columns: []Column{{Key: "id"}}}
	require.NoError(t, r.Register(s))

	err = r.Register(s)
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrDuplicateScreen, rerr.Code)

	bad := []Screen{
		{Type: Courses, Endpoint: "courses", Columns: s.Columns},
		{Name: "x", Type: "rooms", Endpoint: "rooms", Columns: s.Columns},
		{Name: "x", Type: Courses, Columns: s.Columns},
		{Name: "x", Type: Courses, Endpoint: "courses"},
		{Name: "x", Type: Courses, Endpoint: "courses", Columns: s.Columns, Required: []string{"course_id"}},
	}
	for _, b := range bad {
		err := r.Register(b)
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, ErrInvalidScreen, rerr.Code)
	}
}

func TestScreen_SortField(t *testing.T) {
	s, err := NewDefaultRegistry().Get("participants")
	require.NoError(t, err)

	field, err := s.SortField("name")
	require.NoError(t, err)
	assert.Equal(t, "last_name", field)

	var rerr *Error
	_, err = s.SortField("phone")
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrNotSortable, rerr.Code)

	_, err = s.SortField("shoe_size")
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, ErrUnknownColumn, rerr.Code)
}
