package dialog

import (
	"context"
	"fmt"

	contractx "github.com/avelichko/shkolabot/bot/contract"
)

// Command tokens recognized by the router.
const (
	CmdStart    = "/start"
	CmdBreed    = "/breed"
	CmdStudents = "/students"
	CmdDelete   = "/delete"
	CmdSpace    = "/space"
)

type handlerFunc func(ctx context.Context, ev contractx.Event) (contractx.Reply, error)

// Router maps command tokens to controller entry points. The table is built
// once at construction and never patched afterwards.
type Router struct {
	controller *Controller
	commands   map[string]handlerFunc
}

func NewRouter(controller *Controller) (*Router, error) {
	if controller == nil {
		return nil, fmt.Errorf("controller is required")
	}

	r := &Router{controller: controller}
	r.commands = map[string]handlerFunc{
		CmdStart: func(ctx context.Context, ev contractx.Event) (contractx.Reply, error) {
			return controller.StartStudentForm(ctx, ev.UserID)
		},
		CmdBreed: func(ctx context.Context, ev contractx.Event) (contractx.Reply, error) {
			return controller.StartBreedForm(ctx, ev.UserID)
		},
		CmdStudents: func(ctx context.Context, ev contractx.Event) (contractx.Reply, error) {
			return controller.ListStudents(ctx)
		},
		CmdDelete: func(ctx context.Context, ev contractx.Event) (contractx.Reply, error) {
			return controller.DeleteStudent(ctx, ev.Payload)
		},
		CmdSpace: func(ctx context.Context, ev contractx.Event) (contractx.Reply, error) {
			return controller.SpacePicture(ctx)
		},
	}
	return r, nil
}

// Dispatch routes one inbound event. Explicit commands win over an active
// session; bare text is always the pending form's answer when one exists.
func (r *Router) Dispatch(ctx context.Context, ev contractx.Event) (contractx.Reply, error) {
	switch ev.Kind {
	case contractx.KindCommand:
		handler, ok := r.commands[ev.Command]
		if !ok {
			return contractx.Reply{Text: msgUnknownCmd}, nil
		}
		return handler(ctx, ev)
	case contractx.KindText, contractx.KindButton:
		// A button tap delivers its payload the same way a typed answer
		// does; the controller does not care which one it was.
		return r.controller.HandleText(ctx, ev.UserID, ev.Payload)
	default:
		return contractx.Reply{}, fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}
