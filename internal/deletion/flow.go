// Package deletion implements the staged confirmation every console delete
// goes through: a dependency check, then typing the resource name by hand.
//
//	Idle -> Warning -> NameConfirm -> Deleting -> Idle
//	Idle -> Blocked -> Idle
//
// The flow owns no storage. The caller supplies the delete callback in the
// Target and runs it wherever it likes; Finish reports how it went.
package deletion

import (
	"context"
	"errors"
	"fmt"

	"tasnim.dev/cloud-console/internal/model"
)

var (
	ErrBlocked       = errors.New("deletion blocked by dependent resources")
	ErrPasteRejected = errors.New("pasting is disabled, type the name to confirm")
	ErrNotConfirming = errors.New("not awaiting name confirmation")
	ErrBusy          = errors.New("deletion in progress")
	ErrNoTarget      = errors.New("no deletion in progress")
)

type State int

const (
	StateIdle State = iota
	StateWarning
	StateBlocked
	StateNameConfirm
	StateDeleting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWarning:
		return "warning"
	case StateBlocked:
		return "blocked"
	case StateNameConfirm:
		return "name-confirm"
	case StateDeleting:
		return "deleting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DeleteFunc performs the actual removal.
type DeleteFunc func(ctx context.Context) error

// Dependent is one entry in the dependency list shown to the user.
type Dependent struct {
	Type  string
	Name  string
	Count int
}

// Target describes the resource being deleted and whether it may be.
type Target struct {
	Kind       model.Kind
	ID         string
	Name       string
	Dependents []Dependent
	Blocked    bool
	Reason     string
	Delete     DeleteFunc
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeMismatch
	OutcomeDeleted
	OutcomeFailed
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	}
	return "none"
}

// Result is how a flow ended.
type Result struct {
	Outcome Outcome
	Kind    model.Kind
	ID      string
	Name    string
	Err     error
}

// Message is the notification text for the result.
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeDeleted:
		return fmt.Sprintf("%s %s deleted", r.Kind.Label(), r.Name)
	case OutcomeMismatch:
		return fmt.Sprintf("deletion of %s canceled: name does not match", r.Name)
	case OutcomeFailed:
		return fmt.Sprintf("failed to delete %s: %v", r.Name, r.Err)
	case OutcomeCanceled:
		return fmt.Sprintf("deletion of %s canceled", r.Name)
	}
	return ""
}

// Flow is the state machine. The zero value is idle and ready to use. It is
// not safe for concurrent use; drive it from one goroutine.
type Flow struct {
	state  State
	target Target
	input  string
}

func (f *Flow) State() State   { return f.state }
func (f *Flow) Target() Target { return f.target }
func (f *Flow) Input() string  { return f.input }

// Active reports whether a dialog should be shown.
func (f *Flow) Active() bool { return f.state != StateIdle }

// Begin runs the dependency check for t.
func (f *Flow) Begin(t Target) error {
	if f.state == StateDeleting {
		return ErrBusy
	}
	f.target = t
	f.input = ""
	if t.Blocked {
		f.state = StateBlocked
	} else {
		f.state = StateWarning
	}
	return nil
}

// Proceed moves from the warning to name confirmation.
func (f *Flow) Proceed() error {
	switch f.state {
	case StateWarning:
		f.state = StateNameConfirm
		return nil
	case StateBlocked:
		return ErrBlocked
	case StateIdle:
		return ErrNoTarget
	case StateDeleting:
		return ErrBusy
	}
	return nil
}

// SetInput records what the user has typed so far.
func (f *Flow) SetInput(s string) error {
	if f.state != StateNameConfirm {
		return ErrNotConfirming
	}
	f.input = s
	return nil
}

// Paste always fails and leaves the input untouched.
func (f *Flow) Paste(string) error {
	return ErrPasteRejected
}

// Submit compares the input to the target name byte for byte. A mismatch
// ends the flow. A match moves to Deleting and hands back the callback to
// run; call Finish with its error.
func (f *Flow) Submit() (DeleteFunc, Result, error) {
	if f.state != StateNameConfirm {
		return nil, Result{}, ErrNotConfirming
	}
	if f.input != f.target.Name {
		res := f.result(OutcomeMismatch, nil)
		f.reset()
		return nil, res, nil
	}
	f.state = StateDeleting
	del := f.target.Delete
	if del == nil {
		del = func(context.Context) error { return nil }
	}
	return del, Result{}, nil
}

// Finish ends a deletion started by Submit.
func (f *Flow) Finish(err error) (Result, error) {
	if f.state != StateDeleting {
		return Result{}, ErrNoTarget
	}
	outcome := OutcomeDeleted
	if err != nil {
		outcome = OutcomeFailed
	}
	res := f.result(outcome, err)
	f.reset()
	return res, nil
}

// Cancel discards the target and typed name from any state but Deleting.
func (f *Flow) Cancel() (Result, error) {
	switch f.state {
	case StateDeleting:
		return Result{}, ErrBusy
	case StateIdle:
		return Result{}, nil
	}
	res := f.result(OutcomeCanceled, nil)
	f.reset()
	return res, nil
}

func (f *Flow) result(o Outcome, err error) Result {
	return Result{Outcome: o, Kind: f.target.Kind, ID: f.target.ID, Name: f.target.Name, Err: err}
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.target = Target{}
	f.input = ""
}
