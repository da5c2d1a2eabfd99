package absence

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeVacation      Type = "vacation"
	TypeSickLeave     Type = "sick_leave"
	TypePersonalLeave Type = "personal_leave"
	TypeOther         Type = "other"

	// TypeBereavement is retired. Existing rows keep it; new requests may not use it.
	TypeBereavement Type = "bereavement"
)

type typeInfo struct {
	label   string
	retired bool
}

// types is the single mapping between wire tokens and absence types. Tokens are
// assigned once and never reused.
var types = map[Type]typeInfo{
	TypeVacation:      {label: "Vacation"},
	TypeSickLeave:     {label: "Sick Leave"},
	TypePersonalLeave: {label: "Personal Leave"},
	TypeOther:         {label: "Other"},
	TypeBereavement:   {label: "Bereavement", retired: true},
}

// ParseType maps a wire token to a Type, including retired ones.
func ParseType(token string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(token)))
	if _, ok := types[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, token)
	}
	return t, nil
}

func (t Type) Label() string {
	return types[t].label
}

func (t Type) IsRetired() bool {
	return types[t].retired
}

// ActiveTypes lists the tokens accepted for new requests.
func ActiveTypes() []string {
	return []string{string(TypeVacation), string(TypeSickLeave), string(TypePersonalLeave), string(TypeOther)}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var statuses = map[string]Status{
	"pending":   StatusPending,
	"approved":  StatusApproved,
	"rejected":  StatusRejected,
	"cancelled": StatusCancelled,
}

func ParseStatus(token string) (Status, error) {
	s, ok := statuses[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, token)
	}
	return s, nil
}

// IsActive reports whether a request in this status counts toward the overlap rule.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

func (s Status) IsTerminal() bool {
	return s != StatusPending
}

type AbsenceRequest struct {
	ID            int64
	EmployeeID    int64
	Type          Type
	StartDate     time.Time
	EndDate       time.Time
	Reason        string
	Status        Status
	ApprovedByID  *int64
	ApprovedAt    *time.Time
	ApprovalNotes *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships (for responses)
	EmployeeName  string
	EmployeeEmail string
	ApproverName  *string
}

// DurationInDays counts both ends of the range.
func (r AbsenceRequest) DurationInDays() int {
	return DaysBetween(r.StartDate, r.EndDate) + 1
}

func (r AbsenceRequest) Overlaps(start, end time.Time) bool {
	return RangesOverlap(r.StartDate, r.EndDate, start, end)
}

// RangesOverlap treats both ranges as inclusive calendar-day ranges.
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	s1, e1, s2, e2 = DateOf(s1), DateOf(e1), DateOf(s2), DateOf(e2)
	return !s1.After(e2) && !s2.After(e1)
}

// DateOf drops the clock part of t, keeping its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DaysBetween(start, end time.Time) int {
	return int(DateOf(end).Sub(DateOf(start)).Hours() / 24)
}
