package interp

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/opsem-dev/br/syntax"
	"github.com/opsem-dev/br/vm"
	"github.com/shamaton/msgpack/v2"
)

// Configuration is the complete machine state between two steps.
type Configuration struct {
	Stack ControlStack
	Store *vm.Store
}

// NewConfiguration starts a run of prog with an empty store.
func NewConfiguration(prog syntax.Stmt) *Configuration {
	return &Configuration{
		Stack: ControlStack{ExecFrame{Stmt: prog}},
		Store: vm.NewStore(),
	}
}

func (c *Configuration) Clone() *Configuration {
	stack := make(ControlStack, len(c.Stack))
	copy(stack, c.Stack)
	return &Configuration{
		Stack: stack,
		Store: c.Store.Clone(),
	}
}

func (c *Configuration) Done() bool {
	return len(c.Stack) == 0
}

func (c *Configuration) Snapshot(step int) Snapshot {
	return Snapshot{
		Step:   step,
		Frames: c.Stack.Frames(),
		Store:  c.Store.Snapshot(),
	}
}

// Snapshot is the printable record of a configuration after a given step.
// Frames are listed top first.
type Snapshot struct {
	Step   int
	Frames []string
	Store  []vm.Binding
}

// String renders the trace line: "<step>: Top [f1]->[f2]" or "<step>: Top (empty)".
func (s Snapshot) String() string {
	return fmt.Sprintf("%d: %s", s.Step, RenderStack(s.Frames))
}

// RenderStack renders frames (top first) as a single line.
func RenderStack(frames []string) string {
	if len(frames) == 0 {
		return "Top (empty)"
	}
	var b strings.Builder
	b.WriteString("Top ")
	for i, f := range frames {
		if i > 0 {
			b.WriteString("->")
		}
		b.WriteString("[")
		b.WriteString(f)
		b.WriteString("]")
	}
	return b.String()
}

// SameConfiguration reports whether s and o describe the same machine state,
// ignoring the step number.
func (s Snapshot) SameConfiguration(o Snapshot) bool {
	return slices.Equal(s.Frames, o.Frames) && slices.Equal(s.Store, o.Store)
}

// configKey is the step-independent part of a snapshot. Two snapshots with
// equal keys have identical futures.
type configKey struct {
	Frames []string
	Store  []vm.Binding
}

func (s *Snapshot) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, configKey{Frames: s.Frames, Store: s.Store})
}

func (s *Snapshot) Deserialize(r io.Reader) error {
	var k configKey
	if err := msgpack.UnmarshalRead(r, &k); err != nil {
		return err
	}
	s.Frames = k.Frames
	s.Store = k.Store
	return nil
}
