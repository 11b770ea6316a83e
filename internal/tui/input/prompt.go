// Package input parses the command prompt.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for input that names no prompt command.
var ErrUnknownCommand = errors.New("unknown command")

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Commands is the prompt's command set.
var Commands = []PromptCommand{
	{Name: "/goto", Description: "Jump to a date (2025-03-01, next friday)"},
	{Name: "/today", Description: "Show the current month"},
	{Name: "/next", Description: "Show the next month"},
	{Name: "/prev", Description: "Show the previous month"},
	{Name: "/add", Description: "Add a one-day task on a date"},
	{Name: "/export", Description: "Write the month as a PNG"},
	{Name: "/save", Description: "Write tasks to the task file"},
	{Name: "/help", Description: "Show key bindings"},
}

// Command is a parsed prompt line.
type Command struct {
	Name string
	Arg  string
}

// Parse splits a prompt line into a command and its argument. Bare text
// without a leading slash is treated as /goto.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}
	if !strings.HasPrefix(line, "/") {
		return Command{Name: "/goto", Arg: line}, nil
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	for _, cmd := range Commands {
		if cmd.Name == name {
			return Command{Name: name, Arg: strings.TrimSpace(arg)}, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

// PromptMatchingCommands returns commands that match the current input prefix.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}
