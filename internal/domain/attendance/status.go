// internal/domain/attendance/status.go
package attendance

// Status is the recorded state of a student on a given date.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

// Attended reports whether the status counts as having been at the session.
// Late arrivals were there; excused students were not.
func (s Status) Attended() bool {
	return s == StatusPresent || s == StatusLate
}

// Mark is the tri-state outcome for one student on one session date.
type Mark string

const (
	MarkPresent    Mark = "PRESENT"
	MarkAbsent     Mark = "ABSENT"
	MarkUnrecorded Mark = "UNRECORDED" // no attendance row for the date
)
