package command

import "sort"

const (
	Run         = "run"
	Interpreter = "interpreter"
	Cases       = "cases"
	Show        = "show"
	Help        = "help"
	Exit        = "exit"
	Quit        = "quit"
)

// Registry returns all REPL commands keyed by name.
func Registry() map[string]Command {
	commands := []Command{
		{
			Name:    Run,
			Args:    []Arg{{Name: "n", Optional: true}},
			Summary: "run every case, or only case n",
		},
		{
			Name:    Interpreter,
			Args:    []Arg{{Name: "name", Choices: []string{"cpython", "pypy"}}},
			Summary: "switch the interpreter and save the setting",
		},
		{
			Name:    Cases,
			Summary: "list the stored cases of the current problem",
		},
		{
			Name:    Show,
			Args:    []Arg{{Name: "what", Choices: []string{"problem", "config"}}},
			Summary: "print the current problem or the active settings",
		},
		{
			Name:    Help,
			Summary: "print this help",
		},
		{
			Name:    Exit,
			Summary: "leave acrunner",
		},
	}

	registry := make(map[string]Command, len(commands)+1)
	for _, cmd := range commands {
		registry[cmd.Name] = cmd
	}
	registry[Quit] = registry[Exit]
	return registry
}

// Sorted returns the registry entries ordered by name, skipping aliases.
func Sorted(registry map[string]Command) []Command {
	out := make([]Command, 0, len(registry))
	for name, cmd := range registry {
		if name != cmd.Name {
			continue
		}
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
