package launcher

import (
	"fmt"
	"time"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

// WindowSpec is one window declared by a template.
type WindowSpec struct {
	Kind        Kind
	Title       string
	Command     string
	WindowClass string
	Monitor     string
	Position    string
	// Desktop is a 0-based virtual desktop index, nil to leave it unchanged.
	Desktop *int
}

func (s WindowSpec) String() string {
	label := s.Title
	if label == "" {
		label = s.Command
	}
	return fmt.Sprintf("%s %q on %s at %q", s.Kind, label, s.Monitor, s.Position)
}

// State is a job's lifecycle position.
type State int

const (
	StatePending State = iota
	StateLaunched
	StatePositioned
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLaunched:
		return "launched"
	case StatePositioned:
		return "positioned"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StatePositioned || s == StateFailed
}

var transitions = map[State][]State{
	StatePending:  {StateLaunched, StateFailed},
	StateLaunched: {StatePositioned, StateFailed},
}

// Job tracks one WindowSpec through a run. It is owned by a single lane.
type Job struct {
	Index int
	Spec  WindowSpec
	Rect  platform.Rect
	State State
	Err   error

	Window     platform.WindowID
	PID        int
	SpawnedAt  time.Time
	FinishedAt time.Time
}

func newJob(index int, spec WindowSpec) *Job {
	return &Job{Index: index, Spec: spec, State: StatePending}
}

func (j *Job) advance(to State) error {
	for _, next := range transitions[j.State] {
		if next == to {
			j.State = to
			return nil
		}
	}
	return fmt.Errorf("job %d: invalid transition %s -> %s", j.Index, j.State, to)
}

func (j *Job) launched(pid int, at time.Time) error {
	if err := j.advance(StateLaunched); err != nil {
		return err
	}
	j.PID = pid
	j.SpawnedAt = at
	return nil
}

func (j *Job) positioned(win platform.WindowID, at time.Time) error {
	if err := j.advance(StatePositioned); err != nil {
		return err
	}
	j.Window = win
	j.FinishedAt = at
	return nil
}

func (j *Job) fail(cause error, at time.Time) error {
	if err := j.advance(StateFailed); err != nil {
		return err
	}
	j.Err = cause
	j.FinishedAt = at
	return nil
}
