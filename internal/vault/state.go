package vault

import "time"

// State is the lifecycle state of a vault.
type State int

const (
	Locked State = iota
	Unlocking
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocking:
		return "unlocking"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Reason explains a state transition.
type Reason string

const (
	ReasonUnlockStarted Reason = "unlock_started"
	ReasonUnlocked      Reason = "unlocked"
	ReasonUnlockFailed  Reason = "unlock_failed"
	ReasonManual        Reason = "manual"
	ReasonIdleTimeout   Reason = "idle_timeout"
	ReasonSystemSleep   Reason = "system_sleep"
	ReasonScreenLock    Reason = "screen_lock"
	ReasonWindowBlur    Reason = "window_blur"
	ReasonAppMinimize   Reason = "app_minimize"
	ReasonShutdown      Reason = "shutdown"
)

// EventType distinguishes lifecycle notifications.
type EventType string

const (
	EventStateChanged EventType = "state_changed"
	// EventIdleTimeout follows the state change of an idle auto-lock.
	EventIdleTimeout EventType = "idle_timeout"
)

// Event is published to observers. It never carries key material.
type Event struct {
	Type          EventType
	PreviousState State
	NewState      State
	Reason        Reason
	Timestamp     time.Time
}
