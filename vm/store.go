package vm

import (
	"fmt"
	"strings"
)

// RedeclarationError is returned when a name is declared twice.
type RedeclarationError struct {
	Name string
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("variable %q is already declared", e.Name)
}

// UnboundVariableError is returned when a name is read or assigned before it is declared.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("variable %q is not declared", e.Name)
}

// Binding is one entry of the store.
type Binding struct {
	Name  string
	Value IntValue
}

// Store maps declared names to values, remembering declaration order.
type Store struct {
	index    map[string]int
	bindings []Binding
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

func (s *Store) Declare(name string, v IntValue) error {
	if _, ok := s.index[name]; ok {
		return &RedeclarationError{Name: name}
	}
	s.index[name] = len(s.bindings)
	s.bindings = append(s.bindings, Binding{Name: name, Value: v})
	return nil
}

func (s *Store) Assign(name string, v IntValue) error {
	i, ok := s.index[name]
	if !ok {
		return &UnboundVariableError{Name: name}
	}
	s.bindings[i].Value = v
	return nil
}

func (s *Store) Lookup(name string) (IntValue, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, &UnboundVariableError{Name: name}
	}
	return s.bindings[i].Value, nil
}

func (s *Store) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *Store) Len() int {
	return len(s.bindings)
}

// Snapshot returns a copy of the bindings in declaration order.
func (s *Store) Snapshot() []Binding {
	out := make([]Binding, len(s.bindings))
	copy(out, s.bindings)
	return out
}

func (s *Store) Clone() *Store {
	out := &Store{
		index:    make(map[string]int, len(s.index)),
		bindings: s.Snapshot(),
	}
	for k, v := range s.index {
		out.index[k] = v
	}
	return out
}

// FormatStore renders bindings as the final binding table line, e.g.
// "S = {x |-> 8, y |-> 1}".
func FormatStore(bindings []Binding) string {
	var b strings.Builder
	b.WriteString("S = {")
	for i, bind := range bindings {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s |-> %d", bind.Name, bind.Value)
	}
	b.WriteString("}")
	return b.String()
}
