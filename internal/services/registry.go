// Package services implements the command registry, execution engine, and
// session management on top of process-lifetime in-memory state.
package services

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"commandcenter/internal/events"
	"commandcenter/internal/models"
	"commandcenter/internal/validation"
)

var (
	ErrCommandNotFound    = errors.New("command not found")
	ErrNameRequired       = errors.New("command name is required")
	ErrExecutableRequired = errors.New("executable path is required")
)

// RegistryService owns the in-memory set of command definitions.
type RegistryService struct {
	bus *events.Bus

	mu       sync.RWMutex
	commands map[string]models.CommandDefinition
}

func NewRegistryService(bus *events.Bus) *RegistryService {
	return &RegistryService{
		bus:      bus,
		commands: make(map[string]models.CommandDefinition),
	}
}

// List returns all commands sorted case-insensitively by name.
func (s *RegistryService) List() []models.CommandDefinition {
	s.mu.RLock()
	list := make([]models.CommandDefinition, 0, len(s.commands))
	for _, cmd := range s.commands {
		list = append(list, cmd)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	return list
}

// Get returns the command with the given id.
func (s *RegistryService) Get(id string) (models.CommandDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cmd, ok := s.commands[id]
	if !ok {
		return models.CommandDefinition{}, ErrCommandNotFound
	}
	return cmd, nil
}

// Save creates or updates a command. A mutation without an id, or with an id
// that matches no existing entry, creates a new command; otherwise the entry
// is updated in place with its creation timestamp preserved. The matching
// command_created or command_updated event is published after the write
// completes and before Save returns.
func (s *RegistryService) Save(mutation models.CommandMutation) (models.CommandDefinition, error) {
	if validation.IsBlank(mutation.Name) {
		return models.CommandDefinition{}, ErrNameRequired
	}
	if validation.IsBlank(mutation.Executable) {
		return models.CommandDefinition{}, ErrExecutableRequired
	}

	allowArguments := true
	if mutation.AllowArguments != nil {
		allowArguments = *mutation.AllowArguments
	}

	now := time.Now()

	s.mu.Lock()
	existing, exists := s.commands[mutation.ID]

	// An absent or unknown id means create; the new entry always gets a
	// fresh id of its own.
	id := mutation.ID
	if !exists {
		id = uuid.New().String()
	}

	cmd := models.CommandDefinition{
		ID:             id,
		Name:           mutation.Name,
		Executable:     mutation.Executable,
		Args:           validation.CleanList(mutation.Args),
		Description:    validation.CleanText(mutation.Description),
		Tags:           validation.CleanList(mutation.Tags),
		AllowArguments: allowArguments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if exists {
		cmd.CreatedAt = existing.CreatedAt
	}
	s.commands[id] = cmd
	s.mu.Unlock()

	if exists {
		s.bus.Publish(models.CommandUpdated(cmd))
	} else {
		s.bus.Publish(models.CommandCreated(cmd))
	}

	return cmd, nil
}

// Delete removes a command and publishes command_deleted. It fails with
// ErrCommandNotFound without emitting anything when the id is unknown.
func (s *RegistryService) Delete(id string) error {
	s.mu.Lock()
	_, ok := s.commands[id]
	if ok {
		delete(s.commands, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrCommandNotFound
	}

	s.bus.Publish(models.CommandDeleted(id))
	return nil
}

// Count returns the number of registered commands.
func (s *RegistryService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.commands)
}
