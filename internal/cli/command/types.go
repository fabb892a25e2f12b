package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Arg describes one positional argument.
type Arg struct {
	Name     string
	Choices  []string
	Optional bool
}

// Command defines a REPL command.
type Command struct {
	Name    string
	Args    []Arg
	Summary string
}

// Usage renders the command with its arguments.
func (c Command) Usage() string {
	parts := []string{c.Name}
	for _, arg := range c.Args {
		label := arg.Name
		if len(arg.Choices) > 0 {
			label = strings.Join(arg.Choices, "|")
		}
		if arg.Optional {
			parts = append(parts, "["+label+"]")
		} else {
			parts = append(parts, label)
		}
	}
	return strings.Join(parts, " ")
}

// CheckArgs validates the argument count and any fixed choices.
func (c Command) CheckArgs(args []string) error {
	required := 0
	for _, arg := range c.Args {
		if !arg.Optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(c.Args) {
		return fmt.Errorf("usage: %s", c.Usage())
	}
	for i, value := range args {
		choices := c.Args[i].Choices
		if len(choices) == 0 {
			continue
		}
		if !contains(choices, value) {
			return fmt.Errorf("usage: %s", c.Usage())
		}
	}
	return nil
}

// ParseIndex parses a positive case index.
func ParseIndex(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid case index %q", value)
	}
	return n, nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
