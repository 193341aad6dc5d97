package coursesdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePayload(t *testing.T) {
	t.Parallel()

	t.Run("valid classroom passes", func(t *testing.T) {
		err := validatePayload(Classroom{
			Name:       "Evening intake",
			CourseID:   "course-1",
			LecturerID: "lect-1",
			StartDate:  "2026-09-01",
			EndDate:    "2026-10-01",
			Place:      "Room 204",
			Capacity:   30,
		})
		require.NoError(t, err)
	})

	t.Run("missing fields are reported per field", func(t *testing.T) {
		err := validatePayload(Classroom{Name: "Evening intake"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "CourseID")
		require.Contains(t, verr.Fields, "LecturerID")
		require.Contains(t, verr.Fields, "Place")
		require.NotContains(t, verr.Fields, "Name")
	})

	t.Run("end date must not precede start date", func(t *testing.T) {
		err := validatePayload(Classroom{
			Name:       "Evening intake",
			CourseID:   "course-1",
			LecturerID: "lect-1",
			StartDate:  "2026-10-01",
			EndDate:    "2026-09-01",
			Place:      "Room 204",
			Capacity:   30,
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "EndDate")
	})

	t.Run("lecturer email format is checked", func(t *testing.T) {
		err := validatePayload(Lecturer{
			Email:       "not-an-email",
			DisplayName: "Dr. Chen",
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Fields, "Email")
	})
}

func TestListQueryValues(t *testing.T) {
	t.Parallel()

	t.Run("zero query produces no parameters", func(t *testing.T) {
		require.Empty(t, ListQuery{}.values())
	})

	t.Run("set fields are encoded", func(t *testing.T) {
		v := ListQuery{
			Page:       2,
			Size:       10,
			Keyword:    "golang",
			CategoryID: "cat-1",
		}.values()

		require.Equal(t, "2", v.Get("page"))
		require.Equal(t, "10", v.Get("size"))
		require.Equal(t, "golang", v.Get("keyword"))
		require.Equal(t, "cat-1", v.Get("categoryId"))
		require.NotContains(t, v, "courseId")
	})
}
