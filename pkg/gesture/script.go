// Package gesture replays scripted pointer and keyboard input against an
// editor.
//
// Scripts are TOML documents holding an ordered list of steps:
//
//	name = "connect"
//
//	[[steps]]
//	action = "drag"
//	at = [0, 300]
//	to = [300, 0]
//	shift = true
//
//	[[steps]]
//	action = "key"
//	key = "ctrl+c"
//
// Pointer steps address the canvas in graph coordinates. A step the editor
// rejects is recorded and replay continues, unless the step sets
// on_fail = "stop".
package gesture

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/graphedit/pkg/errors"
)

// Step actions.
const (
	ActionDown   = "down"
	ActionMove   = "move"
	ActionUp     = "up"
	ActionClick  = "click"
	ActionDrag   = "drag"
	ActionKey    = "key"
	ActionCancel = "cancel"
)

// Failure policies.
const (
	OnFailContinue = "continue"
	OnFailStop     = "stop"
)

// Script is a named sequence of input steps.
type Script struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Steps       []Step `toml:"steps" validate:"dive"`
}

// Step is one input action.
type Step struct {
	Action string `toml:"action" validate:"required,oneof=down move up click drag key cancel"`

	// At is the pointer position, To the drag destination.
	At [2]float64 `toml:"at"`
	To [2]float64 `toml:"to"`

	// Samples is the number of move events a drag is split into.
	Samples int `toml:"samples" validate:"gte=0,lte=1000"`

	// Buttons overrides the button mask of down and move steps. A move step
	// holds the primary button while a press is open.
	Buttons int `toml:"buttons" validate:"gte=0"`

	Shift bool `toml:"shift"`
	Ctrl  bool `toml:"ctrl"`
	Alt   bool `toml:"alt"`
	Meta  bool `toml:"meta"`

	// Key is a chord such as "delete" or "ctrl+v".
	Key string `toml:"key" validate:"required_if=Action key"`

	OnFail string `toml:"on_fail" validate:"omitempty,oneof=continue stop"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read script %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown script keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		})
		validate = v
	})
	return validate
}

// Validate checks every step.
func (s *Script) Validate() error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "validate script")
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(errors.ErrCodeInvalidInput, "%s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s is out of range", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
