package dialog

import (
	"context"
	"strings"
	"testing"

	contractx "github.com/avelichko/shkolabot/bot/contract"
	statex "github.com/avelichko/shkolabot/bot/state"
)

func newTestRouter(t *testing.T, store *fakeStore) (*Router, *statex.Manager) {
	t.Helper()

	c, sessions := newTestController(t, store, &fakeBreeds{}, &fakeSpace{})
	r, err := NewRouter(c)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	return r, sessions
}

func TestDispatchFullFormThroughRouter(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r, _ := newTestRouter(t, store)
	ctx := context.Background()
	const userID int64 = 10

	steps := []struct {
		ev   contractx.Event
		want string
	}{
		{contractx.Event{UserID: userID, Kind: contractx.KindCommand, Command: CmdStart}, msgAskName},
		{contractx.Event{UserID: userID, Kind: contractx.KindText, Payload: "Alice"}, msgAskAge},
		{contractx.Event{UserID: userID, Kind: contractx.KindText, Payload: "13"}, msgAskGrade},
	}
	for _, step := range steps {
		reply, err := r.Dispatch(ctx, step.ev)
		if err != nil {
			t.Fatalf("Dispatch(%+v) error = %v", step.ev, err)
		}
		if reply.Text != step.want {
			t.Fatalf("Dispatch(%+v) = %q, want %q", step.ev, reply.Text, step.want)
		}
	}

	reply, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindText, Payload: "7th grade"})
	if err != nil {
		t.Fatalf("Dispatch(grade) error = %v", err)
	}
	if !strings.Contains(reply.Text, "Alice") {
		t.Fatalf("confirmation %q does not echo the name", reply.Text)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected one insert, got %d", len(store.inserted))
	}
}

func TestDispatchCommandWinsOverActiveSession(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r, sessions := newTestRouter(t, store)
	ctx := context.Background()
	const userID int64 = 11

	if _, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindCommand, Command: CmdStart}); err != nil {
		t.Fatalf("Dispatch(/start) error = %v", err)
	}
	if _, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindText, Payload: "Алиса"}); err != nil {
		t.Fatalf("Dispatch(name) error = %v", err)
	}

	// /students mid-form goes straight to the store and leaves the form
	// where it was.
	reply, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindCommand, Command: CmdStudents})
	if err != nil {
		t.Fatalf("Dispatch(/students) error = %v", err)
	}
	if reply.Text != msgListEmpty {
		t.Fatalf("expected listing, got %q", reply.Text)
	}

	s := sessions.Get(userID)
	if s.Stage != statex.StageAge || s.Partial[statex.FieldName] != "Алиса" {
		t.Fatalf("sessionless command disturbed the form: %+v", s)
	}
}

func TestDispatchNumericTextIsFormAnswerNotID(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r, sessions := newTestRouter(t, store)
	ctx := context.Background()
	const userID int64 = 12

	if _, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindCommand, Command: CmdStart}); err != nil {
		t.Fatalf("Dispatch(/start) error = %v", err)
	}
	if _, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindText, Payload: "Боб"}); err != nil {
		t.Fatalf("Dispatch(name) error = %v", err)
	}

	// Bare "13" answers the age stage; it is never treated as a command
	// argument.
	reply, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindText, Payload: "13"})
	if err != nil {
		t.Fatalf("Dispatch(age) error = %v", err)
	}
	if reply.Text != msgAskGrade {
		t.Fatalf("expected grade prompt, got %q", reply.Text)
	}
	if sessions.Get(userID).Partial[statex.FieldAge] != "13" {
		t.Fatal("age answer was not recorded")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, &fakeStore{})

	reply, err := r.Dispatch(context.Background(), contractx.Event{UserID: 1, Kind: contractx.KindCommand, Command: "/export"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if reply.Text != msgUnknownCmd {
		t.Fatalf("expected unknown-command notice, got %q", reply.Text)
	}
}

func TestDispatchButtonAnswersPendingStage(t *testing.T) {
	t.Parallel()

	r, sessions := newTestRouter(t, &fakeStore{})
	ctx := context.Background()
	const userID int64 = 13

	if _, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindCommand, Command: CmdStart}); err != nil {
		t.Fatalf("Dispatch(/start) error = %v", err)
	}

	// A tapped choice is just the answer to the pending stage.
	reply, err := r.Dispatch(ctx, contractx.Event{UserID: userID, Kind: contractx.KindButton, Payload: "Алиса"})
	if err != nil {
		t.Fatalf("Dispatch(button) error = %v", err)
	}
	if reply.Text != msgAskAge {
		t.Fatalf("expected age prompt, got %q", reply.Text)
	}
	if sessions.Get(userID).Partial[statex.FieldName] != "Алиса" {
		t.Fatal("button payload was not recorded as the name")
	}
}

func TestDispatchUnknownKind(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t, &fakeStore{})

	if _, err := r.Dispatch(context.Background(), contractx.Event{UserID: 1, Kind: "sticker"}); err == nil {
		t.Fatal("expected error for unrouted event kind")
	}
}

func TestDispatchDeleteArguments(t *testing.T) {
	t.Parallel()

	store := &fakeStore{deleteOK: true}
	r, _ := newTestRouter(t, store)

	reply, err := r.Dispatch(context.Background(), contractx.Event{
		UserID:  1,
		Kind:    contractx.KindCommand,
		Command: CmdDelete,
		Payload: "7",
	})
	if err != nil {
		t.Fatalf("Dispatch(/delete 7) error = %v", err)
	}
	if !strings.Contains(reply.Text, "7") {
		t.Fatalf("delete confirmation %q does not name the id", reply.Text)
	}
	if store.deletedID != 7 {
		t.Fatalf("expected delete of id 7, got %d", store.deletedID)
	}
}
