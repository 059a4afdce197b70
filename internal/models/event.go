package models

// EventType classifies server events pushed to subscribers.
type EventType string

const (
	EventCommandCreated    EventType = "command_created"
	EventCommandUpdated    EventType = "command_updated"
	EventCommandDeleted    EventType = "command_deleted"
	EventExecutionStarted  EventType = "execution_started"
	EventExecutionUpdated  EventType = "execution_updated"
	EventExecutionFinished EventType = "execution_finished"
)

// ServerEvent is an immutable snapshot of a state change. Payload is the
// affected entity: a CommandDefinition, an ExecutionLog, or a DeletedRef for
// command_deleted.
type ServerEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// DeletedRef carries the id of a removed entity.
type DeletedRef struct {
	ID string `json:"id"`
}

// CommandCreated builds a command_created event.
func CommandCreated(cmd CommandDefinition) ServerEvent {
	return ServerEvent{Type: EventCommandCreated, Payload: cmd}
}

// CommandUpdated builds a command_updated event.
func CommandUpdated(cmd CommandDefinition) ServerEvent {
	return ServerEvent{Type: EventCommandUpdated, Payload: cmd}
}

// CommandDeleted builds a command_deleted event.
func CommandDeleted(id string) ServerEvent {
	return ServerEvent{Type: EventCommandDeleted, Payload: DeletedRef{ID: id}}
}

// ExecutionStarted builds an execution_started event.
func ExecutionStarted(log ExecutionLog) ServerEvent {
	return ServerEvent{Type: EventExecutionStarted, Payload: log}
}

// ExecutionUpdated builds an execution_updated event.
func ExecutionUpdated(log ExecutionLog) ServerEvent {
	return ServerEvent{Type: EventExecutionUpdated, Payload: log}
}

// ExecutionFinished builds an execution_finished event.
func ExecutionFinished(log ExecutionLog) ServerEvent {
	return ServerEvent{Type: EventExecutionFinished, Payload: log}
}
