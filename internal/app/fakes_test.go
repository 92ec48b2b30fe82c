package app

import (
	"context"
	"database/sql"
	"io"
	"sync"

	"absentee_notification_bot/internal/domain/attendance"
	"absentee_notification_bot/internal/domain/calendar"
	"absentee_notification_bot/internal/domain/group"
	"absentee_notification_bot/internal/domain/student"
	idb "absentee_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

type fakeGroupRepo struct {
	groups  map[string]*group.Group
	order   []string
	listErr error
}

func newFakeGroupRepo(groups ...*group.Group) *fakeGroupRepo {
	r := &fakeGroupRepo{groups: map[string]*group.Group{}}
	for _, g := range groups {
		r.groups[g.ID] = g
		r.order = append(r.order, g.ID)
	}
	return r
}

func (r *fakeGroupRepo) GetByID(_ context.Context, id string) (*group.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, idb.ErrGroupNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) ListActive(_ context.Context) ([]*group.Group, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*group.Group, 0, len(r.order))
	for _, id := range r.order {
		if g := r.groups[id]; g.IsActive {
			out = append(out, g)
		}
	}
	return out, nil
}

// fakeStudentRepo returns every student whose group matches, active or not,
// so the services' own roster filtering is exercised.
type fakeStudentRepo struct {
	students []*student.Student
	err      error
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id string) (*student.Student, error) {
	for _, s := range r.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, idb.ErrStudentNotFound
}

func (r *fakeStudentRepo) ListActiveByGroup(_ context.Context, groupID string) ([]*student.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []*student.Student{}
	for _, s := range r.students {
		if s.GroupID.String == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []*attendance.Record
	err     error
}

func (r *fakeAttendanceRepo) ListByStudentBetween(_ context.Context, studentID string, from, to calendar.Date) ([]*attendance.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := []*attendance.Record{}
	for _, rec := range r.records {
		if rec.StudentID == studentID && !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListByStudentsOnDate(_ context.Context, ids []string, date calendar.Date) ([]*attendance.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := []*attendance.Record{}
	for _, rec := range r.records {
		if wanted[rec.StudentID] && rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

type sentMessage struct {
	chatID  int64
	text    string
	options *telebot.SendOptions
}

type fakeTelegramClient struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (c *fakeTelegramClient) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text, options: options})
	return nil
}
