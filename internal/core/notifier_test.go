package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"nexta-backend-go/internal/db"
	"nexta-backend-go/internal/models"
	"nexta-backend-go/pkg/database"
	"nexta-backend-go/pkg/mailer"
)

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestNotifierHandle(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemoryStore()
	users := db.NewUserRepository(store)
	for _, u := range []*models.User{
		{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: models.RoleUser},
		{ID: "c1", Name: "Acme", Email: "jobs@acme.test", Role: models.RoleCompany},
		{ID: "mute", Name: "Mute", Role: models.RoleUser},
	} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("Create %s: %v", u.ID, err)
		}
	}
	encode := func(e models.Event) []byte {
		b, err := json.Marshal(e)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		return b
	}

	m := &fakeMailer{}
	n := NewNotifier(users, m, zap.NewNop())

	err := n.Handle(ctx, encode(models.Event{Type: models.EventApplicationDecided, ActorID: "c1", RecipientID: "u1", Status: "Approved"}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(m.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(m.sent))
	}
	if got := m.sent[0]; got.To != "ada@example.com" || got.Subject != "Your application was approved" ||
		got.Body != "Acme marked your application as approved." {
		t.Errorf("message = %+v", got)
	}

	for name, body := range map[string][]byte{
		"unknown recipient": encode(models.Event{Type: models.EventBookingRequested, RecipientID: "ghost"}),
		"no email":          encode(models.Event{Type: models.EventBookingRequested, RecipientID: "mute"}),
		"unknown type":      encode(models.Event{Type: "job.viewed", RecipientID: "u1"}),
	} {
		if err := n.Handle(ctx, body); err != nil {
			t.Errorf("%s: got %v, want nil", name, err)
		}
	}
	if len(m.sent) != 1 {
		t.Errorf("undeliverable events sent mail: %d messages", len(m.sent))
	}

	if err := n.Handle(ctx, []byte("{")); err == nil {
		t.Error("malformed body: want error")
	}
	m.err = errors.New("smtp down")
	if err := n.Handle(ctx, encode(models.Event{Type: models.EventApplicationSubmitted, ActorID: "u1", RecipientID: "c1"})); !errors.Is(err, m.err) {
		t.Errorf("mail failure: got %v, want %v", err, m.err)
	}
}
