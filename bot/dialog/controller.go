package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/avelichko/shkolabot/bot/contract"
	statex "github.com/avelichko/shkolabot/bot/state"
	storagex "github.com/avelichko/shkolabot/bot/storage"
	"github.com/avelichko/shkolabot/pkg/catapi"
	"github.com/avelichko/shkolabot/pkg/nasa"
)

// BreedLookup answers cat-breed queries. Satisfied by *catapi.Client.
type BreedLookup interface {
	Search(ctx context.Context, query string) (catapi.Breed, error)
}

// SpaceLookup fetches the astronomy picture of the day. Satisfied by
// *nasa.Client.
type SpaceLookup interface {
	PictureOfTheDay(ctx context.Context) (nasa.Picture, error)
}

// Controller drives the per-user form state machine and the sessionless
// commands. It holds no per-request state of its own; everything mutable
// lives in the session manager or the store.
type Controller struct {
	store    storagex.Store
	sessions *statex.Manager
	breeds   BreedLookup
	space    SpaceLookup
}

func NewController(store storagex.Store, sessions *statex.Manager, breeds BreedLookup, space SpaceLookup) (*Controller, error) {
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if sessions == nil {
		return nil, errors.New("session manager is required")
	}
	if breeds == nil {
		return nil, errors.New("breed lookup is required")
	}
	if space == nil {
		return nil, errors.New("space lookup is required")
	}

	return &Controller{
		store:    store,
		sessions: sessions,
		breeds:   breeds,
		space:    space,
	}, nil
}

// StartStudentForm begins the three-stage student form, abandoning any form
// already in progress for this user.
func (c *Controller) StartStudentForm(ctx context.Context, userID int64) (contractx.Reply, error) {
	if err := c.sessions.Start(userID, statex.FormStudent); err != nil {
		return contractx.Reply{}, err
	}
	return contractx.Reply{Text: msgAskName}, nil
}

// StartBreedForm begins the single-stage breed lookup form.
func (c *Controller) StartBreedForm(ctx context.Context, userID int64) (contractx.Reply, error) {
	if err := c.sessions.Start(userID, statex.FormBreed); err != nil {
		return contractx.Reply{}, err
	}
	return contractx.Reply{Text: msgAskBreed}, nil
}

// HandleText interprets free text as the answer to the pending form stage.
// Without an active session it answers with a hint instead.
func (c *Controller) HandleText(ctx context.Context, userID int64, text string) (contractx.Reply, error) {
	session := c.sessions.Get(userID)

	switch session.Stage {
	case statex.StageNone:
		return contractx.Reply{Text: msgNoSessionHint}, nil

	case statex.StageName:
		if _, err := c.sessions.Advance(userID, statex.FieldName, text); err != nil {
			return contractx.Reply{}, fmt.Errorf("advance name: %w", err)
		}
		return contractx.Reply{Text: msgAskAge}, nil

	case statex.StageAge:
		// Atoi also rejects digit strings too long for int, which would
		// otherwise wedge the commit later.
		if _, err := strconv.Atoi(text); !isDigits(text) || err != nil {
			// Invalid input never advances the stage nor touches partial.
			return contractx.Reply{Text: msgAgeNotNumber}, nil
		}
		if _, err := c.sessions.Advance(userID, statex.FieldAge, text); err != nil {
			return contractx.Reply{}, fmt.Errorf("advance age: %w", err)
		}
		return contractx.Reply{Text: msgAskGrade}, nil

	case statex.StageGrade:
		return c.commitStudent(ctx, session, text)

	case statex.StageBreed:
		return c.answerBreed(ctx, userID, text)

	default:
		return contractx.Reply{}, fmt.Errorf("%w: %s", contractx.ErrUnknownStage, session.Stage)
	}
}

// commitStudent is the single terminal transition that touches the store.
// The session is cleared only after a successful insert; on failure the user
// stays at the grade stage and can retry.
func (c *Controller) commitStudent(ctx context.Context, session statex.Session, grade string) (contractx.Reply, error) {
	name := session.Partial[statex.FieldName]
	age, err := strconv.Atoi(session.Partial[statex.FieldAge])
	if err != nil {
		return contractx.Reply{}, fmt.Errorf("corrupt session for user=%d: age=%q: %w", session.UserID, session.Partial[statex.FieldAge], err)
	}

	id, err := c.store.Insert(ctx, name, age, grade)
	if err != nil {
		log.Error().Err(err).Int64("user_id", session.UserID).Msg("insert student failed")
		return contractx.Reply{Text: msgSaveFailed}, nil
	}

	c.sessions.Clear(session.UserID)
	log.Info().Int64("user_id", session.UserID).Int64("student_id", id).Msg("student saved")

	return contractx.Reply{
		Text: fmt.Sprintf("✅ Данные сохранены:\nИмя: %s\nВозраст: %d\nКласс: %s", name, age, grade),
	}, nil
}

// answerBreed resolves the breed form. The form is one-shot: whatever the
// lookup returns, the session ends here.
func (c *Controller) answerBreed(ctx context.Context, userID int64, query string) (contractx.Reply, error) {
	defer c.sessions.Clear(userID)

	breed, err := c.breeds.Search(ctx, query)
	if err != nil {
		if errors.Is(err, catapi.ErrBreedNotFound) {
			return contractx.Reply{Text: msgBreedNotFound}, nil
		}
		log.Error().Err(err).Int64("user_id", userID).Str("query", query).Msg("breed lookup failed")
		return contractx.Reply{Text: msgLookupFailed}, nil
	}

	return contractx.Reply{Text: formatBreed(breed)}, nil
}

// ListStudents renders every stored record, or an explicit empty notice.
func (c *Controller) ListStudents(ctx context.Context) (contractx.Reply, error) {
	students, err := c.store.ListAll(ctx)
	if err != nil {
		return contractx.Reply{}, fmt.Errorf("list students: %w", err)
	}
	if len(students) == 0 {
		return contractx.Reply{Text: msgListEmpty}, nil
	}

	var b strings.Builder
	b.WriteString(msgListHeader)
	for _, s := range students {
		fmt.Fprintf(&b, "%d. %s, возраст: %d, класс: %s\n", s.ID, s.Name, s.Age, s.Grade)
	}
	return contractx.Reply{Text: b.String()}, nil
}

// DeleteStudent parses exactly one numeric argument and removes that record.
// A malformed argument or a missing row is a user-visible message, not an
// error.
func (c *Controller) DeleteStudent(ctx context.Context, payload string) (contractx.Reply, error) {
	args := strings.Fields(payload)
	if len(args) != 1 || !isDigits(args[0]) {
		return contractx.Reply{Text: msgDeleteUsage}, nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return contractx.Reply{Text: msgDeleteUsage}, nil
	}

	deleted, err := c.store.Delete(ctx, id)
	if err != nil {
		return contractx.Reply{}, fmt.Errorf("delete student: %w", err)
	}
	if !deleted {
		return contractx.Reply{Text: fmt.Sprintf("❌ Ученик с ID %d не найден.", id)}, nil
	}
	return contractx.Reply{Text: fmt.Sprintf("✅ Ученик с ID %d удалён.", id)}, nil
}

// SpacePicture relays the picture of the day.
func (c *Controller) SpacePicture(ctx context.Context) (contractx.Reply, error) {
	picture, err := c.space.PictureOfTheDay(ctx)
	if err != nil {
		log.Error().Err(err).Msg("apod lookup failed")
		return contractx.Reply{Text: msgLookupFailed}, nil
	}
	return contractx.Reply{Text: formatPicture(picture)}, nil
}

func formatBreed(b catapi.Breed) string {
	var out strings.Builder
	fmt.Fprintf(&out, "🐱 %s", b.Name)
	if b.Origin != "" {
		fmt.Fprintf(&out, " (%s)", b.Origin)
	}
	if b.Temperament != "" {
		fmt.Fprintf(&out, "\nХарактер: %s", b.Temperament)
	}
	if b.Description != "" {
		fmt.Fprintf(&out, "\n\n%s", b.Description)
	}
	return out.String()
}

func formatPicture(p nasa.Picture) string {
	var out strings.Builder
	fmt.Fprintf(&out, "🛰 %s", p.Title)
	if p.Date != "" {
		fmt.Fprintf(&out, " (%s)", p.Date)
	}
	if p.URL != "" {
		fmt.Fprintf(&out, "\n%s", p.URL)
	}
	if p.Explanation != "" {
		fmt.Fprintf(&out, "\n\n%s", p.Explanation)
	}
	return out.String()
}

// isDigits mirrors the classic isdigit check: non-empty, decimal digits only,
// no sign. "thirteen" and "-5" both fail.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
