package feedback

import (
	"fmt"
	"strings"
	"time"
)

// AnonymousSender replaces the giver's name on anonymous feedback at display time.
const AnonymousSender = "Anonymous"

const DefaultRating = 5

type Type string

const (
	TypeGeneral       Type = "general"
	TypePerformance   Type = "performance"
	TypeCollaboration Type = "collaboration"
	TypeCommunication Type = "communication"
	TypeLeadership    Type = "leadership"
	TypeTechnical     Type = "technical"
)

var typeTokens = map[string]Type{
	"general":       TypeGeneral,
	"performance":   TypePerformance,
	"collaboration": TypeCollaboration,
	"communication": TypeCommunication,
	"leadership":    TypeLeadership,
	"technical":     TypeTechnical,
}

func ParseType(token string) (Type, error) {
	t, ok := typeTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, token)
	}
	return t, nil
}

func Types() []string {
	return []string{
		string(TypeGeneral), string(TypePerformance), string(TypeCollaboration),
		string(TypeCommunication), string(TypeLeadership), string(TypeTechnical),
	}
}

// Feedback always stores the real giver, anonymous or not.
type Feedback struct {
	ID              int64
	FromEmployeeID  int64
	ToEmployeeID    int64
	Content         string
	PolishedContent *string
	Type            Type
	Rating          int
	IsAnonymous     bool
	IsPolished      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships (for responses)
	FromEmployeeName string
	ToEmployeeName   string
}

// DisplaySenderName is the giver's name as shown to readers.
func (f Feedback) DisplaySenderName() string {
	if f.IsAnonymous {
		return AnonymousSender
	}
	return f.FromEmployeeName
}
