package executor

import (
	"sync"

	"github.com/teslashibe/go-gaze/pkg/kinematics"
	"github.com/teslashibe/go-gaze/pkg/pipeline"
)

// Recorder is an Executor that remembers every command it receives.
// Useful in tests and when running without a robot attached.
type Recorder struct {
	mu       sync.Mutex
	commands []kinematics.Command

	// Err, when set, is returned from every Apply call.
	Err error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Apply records the command.
func (r *Recorder) Apply(cmd kinematics.Command, _ *pipeline.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []kinematics.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]kinematics.Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Last returns the most recent command, if any.
func (r *Recorder) Last() (kinematics.Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commands) == 0 {
		return kinematics.Command{}, false
	}
	return r.commands[len(r.commands)-1], true
}
