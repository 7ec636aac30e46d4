package shell

import (
	"fmt"
)

// Builtin is a command that runs inside the shell process.
type Builtin interface {
	Main(s *Shell, args []string) Status
}

type BuiltinFunc func(s *Shell, args []string) Status

func (f BuiltinFunc) Main(s *Shell, args []string) Status {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// NamedBuiltin is an entry in a BuiltinTable.
type NamedBuiltin struct {
	Name    string
	Builtin Builtin
}

// BuiltinTable is an ordered, read-only set of builtins.
type BuiltinTable struct {
	entries []NamedBuiltin
}

// NewBuiltinTable creates a table holding a copy of entries in order.
func NewBuiltinTable(entries ...NamedBuiltin) *BuiltinTable {
	return &BuiltinTable{entries: append([]NamedBuiltin(nil), entries...)}
}

// Lookup returns the first builtin with exactly the given name.
func (t *BuiltinTable) Lookup(name string) (Builtin, bool) {
	for _, entry := range t.entries {
		if entry.Name == name {
			return entry.Builtin, true
		}
	}
	return nil, false
}

// Names lists the builtin names in table order.
func (t *BuiltinTable) Names() []string {
	var out []string
	for _, entry := range t.entries {
		out = append(out, entry.Name)
	}
	return out
}

// DefaultBuiltins returns the table of cd, help and exit.
func DefaultBuiltins() *BuiltinTable {
	return NewBuiltinTable(
		NamedBuiltin{Name: "cd", Builtin: BuiltinFunc(Cd)},
		NamedBuiltin{Name: "help", Builtin: BuiltinFunc(Help)},
		NamedBuiltin{Name: "exit", Builtin: BuiltinFunc(Exit)},
	)
}

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) Status {
	if len(args) < 2 {
		s.errorf("expected argument to %q", args[0])
		return Continue
	}

	if err := s.Chdir(args[1]); err != nil {
		s.errorf("%v", err)
	}
	return Continue
}

func Help(s *Shell, args []string) Status {
	w := s.Stdout
	fmt.Fprintln(w, "Rushil's RSH")
	fmt.Fprintln(w, "Type program names and arguments, and hit enter.")
	fmt.Fprintln(w, "The following are built in:")

	for _, name := range s.Builtins.Names() {
		fmt.Fprintf(w, "  %s\n", name)
	}

	fmt.Fprintln(w, "Use the man command for information on other programs.")
	return Continue
}

// Exit quits the shell
func Exit(s *Shell, args []string) Status {
	return Terminate
}
