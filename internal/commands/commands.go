// Package commands handles slash command parsing for the htmljudge TUI.
package commands

import (
	"strings"
)

// Command interface for all command types
type Command interface {
	Type() string
}

// Help returns help text
type Help struct{}

func (Help) Type() string { return "help" }

// Evaluate submits the editor document for a fresh evaluation
type Evaluate struct{}

func (Evaluate) Type() string { return "evaluate" }

// Apply replaces the editor document with the current preview candidate
type Apply struct{}

func (Apply) Type() string { return "apply" }

// Export writes the session report to disk
type Export struct{}

func (Export) Type() string { return "export" }

// Reset clears the conversation and analysis
type Reset struct{}

func (Reset) Type() string { return "reset" }

// Tab switches the active view tab
type Tab struct {
	Name string
}

func (Tab) Type() string { return "tab" }

// Quit exits the program
type Quit struct{}

func (Quit) Type() string { return "quit" }

// ParseError represents a command parsing error
type ParseError struct {
	Message string
}

func (ParseError) Type() string { return "error" }

// Parse parses user input and returns the appropriate Command.
// Returns nil if the input is not a slash command.
func Parse(input string) Command {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return nil
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "/help":
		return Help{}

	case "/evaluate", "/eval":
		return Evaluate{}

	case "/apply":
		return Apply{}

	case "/export":
		return Export{}

	case "/reset":
		return Reset{}

	case "/tab":
		if len(args) == 0 {
			return ParseError{Message: "/tab requires a tab name: analysis, chat, preview, or logs"}
		}
		return Tab{Name: strings.ToLower(args[0])}

	case "/quit", "/q":
		return Quit{}

	default:
		return ParseError{Message: "unknown command: " + cmd}
	}
}

// HelpText returns the help text for all available commands.
func HelpText() string {
	return `Available commands:
  /help              - Show this help
  /evaluate          - Submit the editor document for a fresh evaluation
  /apply             - Copy the current preview candidate into the editor
  /export            - Export the session report to markdown
  /reset             - Clear the conversation and analysis
  /tab <name>        - Switch tab: analysis, chat, preview, logs
  /quit              - Exit

Anything that is not a command is sent as a follow-up chat message.`
}
