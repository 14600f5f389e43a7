package sandbox

import (
	"testing"

	"enrolladmin/internal/domain/course"
	"enrolladmin/internal/listing"
	"enrolladmin/internal/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_NormalizesToSamePage(t *testing.T) {
	res := list(t, NewStore(42), resource.Courses, "page=2&per_page=10")

	for _, env := range []Envelope{Paged, Wrapped} {
		t.Run(string(env), func(t *testing.T) {
			body, err := Render(env, res)
			require.NoError(t, err)

			got, err := listing.Normalize[course.Course](body, 10)
			require.NoError(t, err)
			assert.Len(t, got.Items, 10)
			assert.Equal(t, seedCourses, got.Total)
			assert.Equal(t, 2, got.CurrentPage)
			assert.Equal(t, 3, got.LastPage)
			assert.Equal(t, int64(11), got.Items[0].ID)
		})
	}

	t.Run("bare", func(t *testing.T) {
		body, err := Render(Bare, res)
		require.NoError(t, err)

		got, err := listing.Normalize[course.Course](body, 100)
		require.NoError(t, err)
		assert.Len(t, got.Items, seedCourses)
		assert.Equal(t, seedCourses, got.Total)
		assert.Equal(t, 1, got.LastPage)
	})
}

func TestRender_EmptyResult(t *testing.T) {
	body, err := Render(Paged, ListResult{Page: 1, PerPage: 10, LastPage: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"current_page":1,"last_page":1,"per_page":10}`, string(body))

	body, err = Render(Bare, ListResult{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(body))
}

func TestRenderFailure(t *testing.T) {
	_, err := listing.Normalize[course.Course](RenderFailure("per_page: must be at most 100"), 10)
	var rejected *listing.RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "per_page: must be at most 100", rejected.Message)
}

func TestParseEnvelope(t *testing.T) {
	e, err := ParseEnvelope("wrapped")
	require.NoError(t, err)
	assert.Equal(t, Wrapped, e)

	_, err = ParseEnvelope("xml")
	assert.Error(t, err)
}
