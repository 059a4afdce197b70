// Package models defines data models for commands, executions, sessions, and events.
package models

import "time"

// CommandDefinition is a named, reusable recipe for an external program
// and its default invocation arguments.
type CommandDefinition struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Executable     string    `json:"executable"`
	Args           []string  `json:"args"`
	Description    string    `json:"description,omitempty"`
	Tags           []string  `json:"tags"`
	AllowArguments bool      `json:"allowArguments"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CommandMutation carries the fields for creating or updating a command.
// A nil AllowArguments means "not specified" and defaults to true.
type CommandMutation struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Executable     string   `json:"executable"`
	Args           []string `json:"args"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	AllowArguments *bool    `json:"allowArguments"`
}
