package services

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"commandcenter/internal/events"
	"commandcenter/internal/models"
	"commandcenter/internal/validation"
)

const (
	// HistoryCapacity bounds the execution history ring; the oldest entry is
	// evicted when a new execution pushes the ring past this size.
	HistoryCapacity = 200
	// DefaultHistoryLimit is used when History is called without a limit.
	DefaultHistoryLimit = 50
)

// ErrArgumentsNotAllowed is the policy error for runtime parameters supplied
// to a command whose allowArguments flag is off.
var ErrArgumentsNotAllowed = errors.New("command does not allow runtime parameters")

// ExecutorService runs commands asynchronously and owns the bounded
// execution-history ring, newest entry first.
type ExecutorService struct {
	registry *RegistryService
	bus      *events.Bus

	mu      sync.RWMutex
	history []models.ExecutionLog
}

func NewExecutorService(registry *RegistryService, bus *events.Bus) *ExecutorService {
	return &ExecutorService{registry: registry, bus: bus}
}

// Execute resolves the command, records a Pending execution log, publishes
// execution_started, and returns the Pending snapshot immediately. The
// process itself runs on a detached goroutine; callers observe the Running
// and terminal transitions through the event bus or by polling History.
//
// A nil overrideArgs means "use the command's stored default arguments". A
// non-nil override on a command with allowArguments=false fails with
// ErrArgumentsNotAllowed and records nothing.
func (s *ExecutorService) Execute(commandID string, overrideArgs []string, requestedBy string) (models.ExecutionLog, error) {
	command, err := s.registry.Get(commandID)
	if err != nil {
		return models.ExecutionLog{}, err
	}

	if overrideArgs != nil && !command.AllowArguments {
		return models.ExecutionLog{}, fmt.Errorf("%w: %q", ErrArgumentsNotAllowed, command.Name)
	}

	parameters := command.Args
	if overrideArgs != nil {
		parameters = overrideArgs
	}
	parameters = validation.CleanList(parameters)

	record := models.ExecutionLog{
		ID:          uuid.New().String(),
		CommandID:   command.ID,
		CommandName: command.Name,
		RequestedBy: requestedBy,
		Status:      models.StatusPending,
		Parameters:  parameters,
		StartedAt:   time.Now(),
	}

	s.pushHistory(record)
	s.bus.Publish(models.ExecutionStarted(record))

	go s.run(record, command)

	return record, nil
}

// run drives one execution from Running to a terminal state. Every failure
// path resolves the log; no lock is held while the process runs.
func (s *ExecutorService) run(record models.ExecutionLog, command models.CommandDefinition) {
	record.Status = models.StatusRunning
	s.updateHistory(record)
	s.bus.Publish(models.ExecutionUpdated(record))

	log.Printf("[Executor] Running %q as %s (execution %s)", command.Name, record.RequestedBy, record.ID)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(command.Executable, record.Parameters...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		record.Status = models.StatusSuccess
		record.Output = pickOutput(stdout.String(), stderr.String())
	case errors.As(err, &exitErr):
		record.Status = models.StatusError
		record.Error = exitMessage(exitErr.ExitCode(), stderr.String())
		record.Output = pickOutput(stdout.String(), stderr.String())
	default:
		// The process never launched; there is no output to capture.
		record.Status = models.StatusError
		record.Error = err.Error()
	}

	finished := time.Now()
	record.FinishedAt = &finished

	s.updateHistory(record)
	s.bus.Publish(models.ExecutionFinished(record))

	log.Printf("[Executor] Finished execution %s with status=%s", record.ID, record.Status)
}

// History returns the most recent executions, newest first, truncated to
// limit (DefaultHistoryLimit when limit is not positive).
func (s *ExecutorService) History(limit int) []models.ExecutionLog {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.history) {
		limit = len(s.history)
	}
	out := make([]models.ExecutionLog, limit)
	copy(out, s.history[:limit])
	return out
}

func (s *ExecutorService) pushHistory(record models.ExecutionLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prependLocked(record)
}

// updateHistory replaces the stored entry by id. An entry the ring has
// already evicted stays evicted; its transitions still reach subscribers
// through the event stream.
func (s *ExecutorService) updateHistory(record models.ExecutionLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.history {
		if s.history[i].ID == record.ID {
			s.history[i] = record
			return
		}
	}
}

func (s *ExecutorService) prependLocked(record models.ExecutionLog) {
	s.history = append([]models.ExecutionLog{record}, s.history...)
	if len(s.history) > HistoryCapacity {
		s.history = s.history[:HistoryCapacity]
	}
}

func pickOutput(stdout, stderr string) string {
	if stdout != "" {
		return stdout
	}
	return stderr
}

func exitMessage(code int, stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Sprintf("Process exited with status %d", code)
	}
	return fmt.Sprintf("Process exited with status %d: %s", code, stderr)
}
