package cli

import (
	"fmt"

	"github.com/valter-silva-au/primo/internal/core"
	"github.com/valter-silva-au/primo/internal/observability"
	"github.com/valter-silva-au/primo/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath  string
	AppConfig *models.Config
	Session   *core.Session
	// LoadErr is the non-fatal error from loading the task file, if any.
	LoadErr error
	// OpenSession loads the task file into Session. Only commands that work
	// on tasks call it, through openSession.
	OpenSession func() error
)

// Observability service instances. Both are nil when event logging is
// disabled.
var (
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)

// openSession returns Session after loading the task file. A load failure is
// left in LoadErr for the caller to report.
func openSession() (*core.Session, error) {
	if Session == nil {
		return nil, fmt.Errorf("task session not initialized")
	}
	if OpenSession != nil {
		_ = OpenSession() // Non-fatal: recorded in LoadErr.
	}
	return Session, nil
}
