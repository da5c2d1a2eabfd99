package absence

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "2025-06-10", "2025-06-12", "2025-06-10", "2025-06-12", true},
		{"touching end", "2025-06-10", "2025-06-12", "2025-06-12", "2025-06-14", true},
		{"touching start", "2025-06-10", "2025-06-12", "2025-06-08", "2025-06-10", true},
		{"contained", "2025-06-01", "2025-06-30", "2025-06-10", "2025-06-11", true},
		{"containing", "2025-06-10", "2025-06-11", "2025-06-01", "2025-06-30", true},
		{"single days equal", "2025-06-10", "2025-06-10", "2025-06-10", "2025-06-10", true},
		{"adjacent after", "2025-06-10", "2025-06-12", "2025-06-13", "2025-06-15", false},
		{"adjacent before", "2025-06-10", "2025-06-12", "2025-06-05", "2025-06-09", false},
		{"far apart", "2025-01-01", "2025-01-02", "2025-12-01", "2025-12-02", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := RangesOverlap(day(c.s1), day(c.e1), day(c.s2), day(c.e2))
			assert.Equal(t, c.want, got)
			// symmetric
			assert.Equal(t, c.want, RangesOverlap(day(c.s2), day(c.e2), day(c.s1), day(c.e1)))
		})
	}
}

func TestRangesOverlap_IgnoresClock(t *testing.T) {
	late := time.Date(2025, 6, 12, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, 6, 12, 0, 1, 0, 0, time.UTC)
	assert.True(t, RangesOverlap(day("2025-06-10"), late, early, day("2025-06-14")))
}

func TestDurationInDays(t *testing.T) {
	r := AbsenceRequest{StartDate: day("2025-06-10"), EndDate: day("2025-06-12")}
	assert.Equal(t, 3, r.DurationInDays())

	r = AbsenceRequest{StartDate: day("2025-06-10"), EndDate: day("2025-06-10")}
	assert.Equal(t, 1, r.DurationInDays())

	r = AbsenceRequest{StartDate: day("2024-02-28"), EndDate: day("2024-03-01")}
	assert.Equal(t, 3, r.DurationInDays())
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusApproved.IsActive())
	assert.False(t, StatusRejected.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	assert.False(t, StatusPending.IsTerminal())
	for _, s := range []Status{StatusApproved, StatusRejected, StatusCancelled} {
		assert.True(t, s.IsTerminal())
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("waiting")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTypeMapping(t *testing.T) {
	for _, token := range ActiveTypes() {
		parsed, err := ParseType(token)
		require.NoError(t, err)
		assert.Equal(t, token, string(parsed))
		assert.False(t, parsed.IsRetired())
		assert.NotEmpty(t, parsed.Label())
	}

	retired, err := ParseType("Bereavement")
	require.NoError(t, err)
	assert.Equal(t, TypeBereavement, retired)
	assert.True(t, retired.IsRetired())
	assert.NotContains(t, ActiveTypes(), string(TypeBereavement))

	_, err = ParseType("holiday")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestCreateAbsenceRequest_Validate(t *testing.T) {
	valid := CreateAbsenceRequest{Type: "vacation", StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: "Family trip to the coast"}
	require.NoError(t, valid.Validate())

	typ, start, end, err := valid.Parsed()
	require.NoError(t, err)
	assert.Equal(t, TypeVacation, typ)
	assert.Equal(t, day("2025-06-10"), start)
	assert.Equal(t, day("2025-06-12"), end)

	cases := []struct {
		name  string
		req   CreateAbsenceRequest
		field string
	}{
		{"short reason", CreateAbsenceRequest{Type: "vacation", StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: "trip"}, "reason"},
		{"bad date", CreateAbsenceRequest{Type: "vacation", StartDate: "10/06/2025", EndDate: "2025-06-12", Reason: "Family trip to the coast"}, "start_date"},
		{"unknown type", CreateAbsenceRequest{Type: "holiday", StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: "Family trip to the coast"}, "type"},
		{"retired type", CreateAbsenceRequest{Type: "bereavement", StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: "Family trip to the coast"}, "type"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs), "got %v", err)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}

func TestNewAbsenceResponse_RedactsReason(t *testing.T) {
	r := AbsenceRequest{ID: 1, Type: TypeSickLeave, StartDate: day("2025-06-10"), EndDate: day("2025-06-10"), Reason: "Doctor appointment", Status: StatusApproved}

	full := NewAbsenceResponse(r, false)
	require.NotNil(t, full.Reason)
	assert.Equal(t, "Doctor appointment", *full.Reason)
	assert.Equal(t, "2025-06-10", full.StartDate)
	assert.Equal(t, 1, full.DurationInDays)
	assert.Equal(t, "Sick Leave", full.TypeLabel)

	redacted := NewAbsenceResponse(r, true)
	assert.Nil(t, redacted.Reason)
}
