package usecase

import (
	"context"
	"sync"

	"github.com/carousell/ct-go/pkg/logger"
)

// Alerter surfaces blocking user notifications, the way the client pops an
// alert dialog. Implementations must never fail the calling operation.
type Alerter interface {
	Alert(ctx context.Context, text string)
	LastAlert() string
}

type logAlerter struct {
	mu   sync.Mutex
	last string
	log  *logger.Logger
}

func NewAlerter() Alerter {
	return &logAlerter{log: logger.MustNamed("alert")}
}

func (a *logAlerter) Alert(_ context.Context, text string) {
	a.mu.Lock()
	a.last = text
	a.mu.Unlock()
	a.log.Warnw("user alert", "text", text)
}

// LastAlert reports the most recent alert text, for the debug snapshot.
func (a *logAlerter) LastAlert() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
