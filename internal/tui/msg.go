package tui

import (
	"time"

	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/infra/watch"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgDayLoaded is sent when the activities of the shown day are loaded.
// Fields are ordered to minimize memory padding.
type MsgDayLoaded struct {
	Day        time.Time
	Current    *domain.Activity
	Activities []domain.Activity
	Total      time.Duration
}

func (MsgDayLoaded) sealed() {}

// MsgQuickActionsLoaded is sent when the quick action list is loaded.
type MsgQuickActionsLoaded struct {
	Actions []domain.QuickAction
}

func (MsgQuickActionsLoaded) sealed() {}

// MsgActivityStarted is sent when an activity is started from a quick action.
type MsgActivityStarted struct {
	Started *domain.Activity
	Stopped *domain.Activity
}

func (MsgActivityStarted) sealed() {}

// MsgActivityStopped is sent when the running activity is stopped.
// Stopped is nil when nothing was running.
type MsgActivityStopped struct {
	Stopped *domain.Activity
	Auto    bool // Stopped by the auto-stop setting
}

func (MsgActivityStopped) sealed() {}

// MsgStoreChanged is sent when another process wrote to the data directory.
type MsgStoreChanged struct {
	Change watch.Change
}

func (MsgStoreChanged) sealed() {}

// MsgReloaded is sent after the stores were re-read from the backend.
type MsgReloaded struct{}

func (MsgReloaded) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgTick is sent every second to refresh the elapsed time.
type MsgTick struct {
	Time time.Time
}

func (MsgTick) sealed() {}
