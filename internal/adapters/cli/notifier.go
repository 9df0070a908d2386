package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Notifier reports rejected mutations on the terminal. The engine calls it
// from its worker goroutine, so writes are serialized with a mutex.
type Notifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewNotifier creates a notifier writing to out (normally stderr).
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

// OperationFailed reports that an optimistic mutation was reverted.
func (n *Notifier) OperationFailed(op string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	warn := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(n.out, "%s %s: %v (change reverted)\n", warn("✗"), op, err)
}
