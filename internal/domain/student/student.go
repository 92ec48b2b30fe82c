package student

import (
	"database/sql"
	"strings"
	"time"
)

// Student represents an enrolled student. A student belongs to at most one group.
type Student struct {
	ID            string // UUID
	Name          string
	Phone         sql.NullString
	GuardianPhone sql.NullString
	GroupID       sql.NullString
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ContactPhone is the number absence notices go to: the guardian's when set,
// otherwise the student's own. Empty when neither is known.
func (s *Student) ContactPhone() string {
	if s.GuardianPhone.Valid && strings.TrimSpace(s.GuardianPhone.String) != "" {
		return strings.TrimSpace(s.GuardianPhone.String)
	}
	if s.Phone.Valid && strings.TrimSpace(s.Phone.String) != "" {
		return strings.TrimSpace(s.Phone.String)
	}
	return ""
}
