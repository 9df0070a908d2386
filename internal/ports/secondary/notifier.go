package secondary

// Notifier surfaces remote failures to the user after an optimistic apply
// has been reverted. Implementations must not block: they are invoked from
// the engine's worker goroutine.
type Notifier interface {
	// OperationFailed reports a reverted mutation, e.g. ("create board", err).
	OperationFailed(operation string, err error)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) OperationFailed(string, error) {}
