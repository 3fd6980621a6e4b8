package gesture

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphedit/pkg/editor"
	"github.com/matzehuels/graphedit/pkg/errors"
	"github.com/matzehuels/graphedit/pkg/events"
)

// Rejection is a step the editor refused.
type Rejection struct {
	Step   int
	Action string
	Err    error
}

// Result summarises a replay.
type Result struct {
	// Steps is the number of steps executed.
	Steps    int
	Rejected []Rejection
	// Version is the model version after the last step.
	Version uint64
}

// Option configures Replay.
type Option func(*player)

// WithLogger logs each step at debug level.
func WithLogger(l *log.Logger) Option {
	return func(p *player) {
		if l != nil {
			p.logger = l
		}
	}
}

type player struct {
	ed     *editor.Editor
	logger *log.Logger
}

// Replay feeds the script into ed step by step. It stops early when ctx is
// done or a step with on_fail = "stop" is rejected; in both cases the partial
// result is returned with the error.
func Replay(ctx context.Context, ed *editor.Editor, s *Script, opts ...Option) (Result, error) {
	p := &player{ed: ed, logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(p)
	}

	var res Result
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			res.Version = ed.Model().Version()
			return res, err
		}
		p.logger.Debugf("step %d: %s", i+1, step.Action)
		err := p.run(step)
		res.Steps++
		if err == nil {
			continue
		}
		res.Rejected = append(res.Rejected, Rejection{Step: i + 1, Action: step.Action, Err: err})
		if step.OnFail == OnFailStop {
			res.Version = ed.Model().Version()
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return res, errors.Wrap(code, err, "step %d (%s)", i+1, step.Action)
		}
		p.logger.Infof("step %d (%s) rejected: %s", i+1, step.Action, errors.UserMessage(err))
	}
	res.Version = ed.Model().Version()
	return res, nil
}

func (p *player) run(s Step) error {
	switch s.Action {
	case ActionDown:
		p.ed.PointerDown(s.pointer(s.At, s.buttons(events.ButtonPrimary)))
	case ActionMove:
		held := 0
		if p.ed.Pressing() {
			held = events.ButtonPrimary
		}
		p.ed.PointerMove(s.pointer(s.At, s.buttons(held)))
	case ActionUp:
		p.ed.PointerUp(s.pointer(s.At, 0))
	case ActionClick:
		p.ed.PointerDown(s.pointer(s.At, s.buttons(events.ButtonPrimary)))
		p.ed.PointerUp(s.pointer(s.At, 0))
	case ActionDrag:
		p.drag(s)
	case ActionKey:
		key, mods := editor.ParseKey(s.Key)
		mods.Ctrl = mods.Ctrl || s.Ctrl
		mods.Shift = mods.Shift || s.Shift
		mods.Alt = mods.Alt || s.Alt
		mods.Meta = mods.Meta || s.Meta
		return p.ed.KeyDown(key, mods)
	case ActionCancel:
		p.ed.Cancel()
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown action %q", s.Action)
	}
	return nil
}

// drag presses at At, moves to To in evenly spaced samples and releases.
func (p *player) drag(s Step) {
	buttons := s.buttons(events.ButtonPrimary)
	p.ed.PointerDown(s.pointer(s.At, buttons))
	n := max(s.Samples, 1)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		at := [2]float64{
			s.At[0] + (s.To[0]-s.At[0])*t,
			s.At[1] + (s.To[1]-s.At[1])*t,
		}
		p.ed.PointerMove(s.pointer(at, buttons))
	}
	p.ed.PointerUp(s.pointer(s.To, 0))
}

func (s Step) buttons(def int) int {
	if s.Buttons != 0 {
		return s.Buttons
	}
	return def
}

func (s Step) pointer(at [2]float64, buttons int) events.PointerEvent {
	return events.PointerEvent{
		X:       at[0],
		Y:       at[1],
		Buttons: buttons,
		Shift:   s.Shift,
		Ctrl:    s.Ctrl,
		Alt:     s.Alt,
		Meta:    s.Meta,
	}
}
