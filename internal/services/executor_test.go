package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"commandcenter/internal/events"
	"commandcenter/internal/models"
	"commandcenter/internal/services"
)

func newExecutor(t *testing.T) (*services.RegistryService, *services.ExecutorService, *events.Bus) {
	t.Helper()
	bus := events.NewBus(1024)
	registry := services.NewRegistryService(bus)
	return registry, services.NewExecutorService(registry, bus), bus
}

func registerCommand(t *testing.T, registry *services.RegistryService, mutation models.CommandMutation) models.CommandDefinition {
	t.Helper()
	cmd, err := registry.Save(mutation)
	if err != nil {
		t.Fatalf("failed to register command: %v", err)
	}
	return cmd
}

// waitForFinished drains the subscription until the execution with the given
// id reaches a terminal state, returning every event seen for that id on the
// way.
func waitForFinished(t *testing.T, sub *events.Subscription, executionID string) []models.ServerEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var seen []models.ServerEvent
	for {
		event, _, err := sub.Next(ctx)
		if err != nil {
			t.Fatalf("waiting for terminal event of %s: %v", executionID, err)
		}
		record, ok := event.Payload.(models.ExecutionLog)
		if !ok || record.ID != executionID {
			continue
		}
		seen = append(seen, event)
		if event.Type == models.EventExecutionFinished {
			return seen
		}
	}
}

func TestExecutorService_EchoLifecycle(t *testing.T) {
	registry, executor, bus := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:       "Echo",
		Executable: "/bin/echo",
		Args:       []string{"hi"},
	})

	sub := bus.Subscribe()
	defer sub.Close()

	record, err := executor.Execute(cmd.ID, nil, "tester")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if record.Status != models.StatusPending {
		t.Errorf("expected Pending snapshot, got %s", record.Status)
	}
	if record.FinishedAt != nil {
		t.Error("pending snapshot must not have a finish timestamp")
	}
	if record.CommandName != "Echo" {
		t.Errorf("expected denormalized command name, got %q", record.CommandName)
	}
	if len(record.Parameters) != 1 || record.Parameters[0] != "hi" {
		t.Errorf("expected default parameters [hi], got %v", record.Parameters)
	}

	seen := waitForFinished(t, sub, record.ID)

	wantOrder := []models.EventType{
		models.EventExecutionStarted,
		models.EventExecutionUpdated,
		models.EventExecutionFinished,
	}
	if len(seen) != len(wantOrder) {
		t.Fatalf("expected %d events for the execution, got %d", len(wantOrder), len(seen))
	}
	for i, want := range wantOrder {
		if seen[i].Type != want {
			t.Errorf("event %d: expected %s, got %s", i, want, seen[i].Type)
		}
	}

	statuses := []models.ExecutionStatus{models.StatusPending, models.StatusRunning, models.StatusSuccess}
	for i, want := range statuses {
		record := seen[i].Payload.(models.ExecutionLog)
		if record.Status != want {
			t.Errorf("event %d: expected status %s, got %s", i, want, record.Status)
		}
		if got := record.FinishedAt != nil; got != want.Terminal() {
			t.Errorf("event %d: finishedAt set=%v for status %s", i, got, want)
		}
	}

	final := seen[len(seen)-1].Payload.(models.ExecutionLog)
	if final.Output != "hi\n" {
		t.Errorf("expected output %q, got %q", "hi\n", final.Output)
	}
	if final.Error != "" {
		t.Errorf("expected no error, got %q", final.Error)
	}
	if final.RequestedBy != "tester" {
		t.Errorf("expected requester preserved, got %q", final.RequestedBy)
	}
}

func TestExecutorService_OverrideArguments(t *testing.T) {
	registry, executor, bus := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:       "Echo",
		Executable: "/bin/echo",
		Args:       []string{"hi"},
	})

	sub := bus.Subscribe()
	defer sub.Close()

	record, err := executor.Execute(cmd.ID, []string{"bye"}, "tester")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(record.Parameters) != 1 || record.Parameters[0] != "bye" {
		t.Errorf("expected override parameters [bye], got %v", record.Parameters)
	}

	seen := waitForFinished(t, sub, record.ID)
	final := seen[len(seen)-1].Payload.(models.ExecutionLog)
	if final.Output != "bye\n" {
		t.Errorf("expected output %q, got %q", "bye\n", final.Output)
	}
	if len(final.Parameters) != 1 || final.Parameters[0] != "bye" {
		t.Errorf("expected final parameters [bye], got %v", final.Parameters)
	}
}

func TestExecutorService_OverrideDisallowed(t *testing.T) {
	registry, executor, _ := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:           "Locked",
		Executable:     "/bin/echo",
		Args:           []string{"fixed"},
		AllowArguments: boolPtr(false),
	})

	_, err := executor.Execute(cmd.ID, []string{"injected"}, "tester")
	if !errors.Is(err, services.ErrArgumentsNotAllowed) {
		t.Fatalf("expected ErrArgumentsNotAllowed, got %v", err)
	}
	if !strings.Contains(err.Error(), "Locked") {
		t.Errorf("expected policy error to name the command, got %q", err)
	}

	if got := len(executor.History(0)); got != 0 {
		t.Errorf("expected no execution log after policy rejection, got %d", got)
	}
}

func TestExecutorService_UnknownCommand(t *testing.T) {
	_, executor, _ := newExecutor(t)

	if _, err := executor.Execute("missing", nil, "tester"); !errors.Is(err, services.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
}

func TestExecutorService_LaunchFailure(t *testing.T) {
	registry, executor, bus := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:       "Broken",
		Executable: "/does/not/exist",
	})

	sub := bus.Subscribe()
	defer sub.Close()

	record, err := executor.Execute(cmd.ID, nil, "tester")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	seen := waitForFinished(t, sub, record.ID)
	final := seen[len(seen)-1].Payload.(models.ExecutionLog)

	if final.Status != models.StatusError {
		t.Fatalf("expected Error status, got %s", final.Status)
	}
	if final.Error == "" {
		t.Error("expected launch error text in the log")
	}
	if final.Output != "" {
		t.Errorf("expected no captured output, got %q", final.Output)
	}
	if final.FinishedAt == nil {
		t.Error("expected finish timestamp on terminal state")
	}
}

func TestExecutorService_NonZeroExit(t *testing.T) {
	registry, executor, bus := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:       "Fail",
		Executable: "/bin/sh",
		Args:       []string{"-c", "echo oops >&2; exit 3"},
	})

	sub := bus.Subscribe()
	defer sub.Close()

	record, err := executor.Execute(cmd.ID, nil, "tester")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	seen := waitForFinished(t, sub, record.ID)
	final := seen[len(seen)-1].Payload.(models.ExecutionLog)

	if final.Status != models.StatusError {
		t.Fatalf("expected Error status, got %s", final.Status)
	}
	if !strings.Contains(final.Error, "status 3") {
		t.Errorf("expected exit code in error message, got %q", final.Error)
	}
	if !strings.Contains(final.Error, "oops") {
		t.Errorf("expected trimmed stderr in error message, got %q", final.Error)
	}
	// Stdout was empty, so the captured output falls back to stderr.
	if !strings.Contains(final.Output, "oops") {
		t.Errorf("expected stderr as output fallback, got %q", final.Output)
	}
}

func TestExecutorService_HistoryBoundedAndOrdered(t *testing.T) {
	registry, executor, _ := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:       "Broken",
		Executable: "/does/not/exist",
	})

	total := services.HistoryCapacity + 10
	ids := make([]string, 0, total)
	for i := 0; i < total; i++ {
		record, err := executor.Execute(cmd.ID, nil, fmt.Sprintf("caller-%d", i))
		if err != nil {
			t.Fatalf("Execute %d failed: %v", i, err)
		}
		ids = append(ids, record.ID)
	}

	history := executor.History(total)
	if len(history) != services.HistoryCapacity {
		t.Fatalf("expected history capped at %d, got %d", services.HistoryCapacity, len(history))
	}

	// Most-recent-first: the newest execution leads, the oldest ten are gone.
	if history[0].ID != ids[total-1] {
		t.Errorf("expected newest execution first")
	}
	evicted := map[string]bool{}
	for _, id := range ids[:10] {
		evicted[id] = true
	}
	for _, record := range history {
		if evicted[record.ID] {
			t.Errorf("expected oldest executions evicted, found %s", record.ID)
		}
	}

	limited := executor.History(5)
	if len(limited) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(limited))
	}
	for i, record := range limited {
		if want := ids[total-1-i]; record.ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, record.ID)
		}
	}
}

func TestExecutorService_HistoryDefaultLimit(t *testing.T) {
	registry, executor, _ := newExecutor(t)
	cmd := registerCommand(t, registry, models.CommandMutation{
		Name:       "Broken",
		Executable: "/does/not/exist",
	})

	for i := 0; i < services.DefaultHistoryLimit+20; i++ {
		if _, err := executor.Execute(cmd.ID, nil, "tester"); err != nil {
			t.Fatalf("Execute failed: %v", err)
		}
	}

	if got := len(executor.History(0)); got != services.DefaultHistoryLimit {
		t.Errorf("expected default limit %d, got %d", services.DefaultHistoryLimit, got)
	}
}
