package models

// StatusState 状态机的三个可见状态
type StatusState string

const (
	StatusReady         StatusState = "ready"
	StatusTransitioning StatusState = "transitioning"
	StatusBlocked       StatusState = "blocked"
)

/**
 * Externally visible unit status
 * @property {StatusState} state - Current state: ready/transitioning/blocked
 * @property {string} message - Short operator-facing message, empty when nothing to report
 */
type UnitStatus struct {
	State   StatusState `json:"state"`
	Message string      `json:"message,omitempty"`
}

func Ready() UnitStatus {
	return UnitStatus{State: StatusReady}
}

func ReadyWithMessage(msg string) UnitStatus {
	return UnitStatus{State: StatusReady, Message: msg}
}

func Transitioning(msg string) UnitStatus {
	return UnitStatus{State: StatusTransitioning, Message: msg}
}

func Blocked(msg string) UnitStatus {
	return UnitStatus{State: StatusBlocked, Message: msg}
}

// LifecycleEvent 宿主平台下发的生命周期事件
type LifecycleEvent string

const (
	EventInstall       LifecycleEvent = "install"
	EventUpgrade       LifecycleEvent = "upgrade"
	EventStart         LifecycleEvent = "start"
	EventConfigChanged LifecycleEvent = "config-changed"
	EventRefresh       LifecycleEvent = "refresh"
)

// LifecycleEvents lists every event the reconciler accepts, in dispatch order.
var LifecycleEvents = []LifecycleEvent{
	EventInstall,
	EventUpgrade,
	EventStart,
	EventConfigChanged,
	EventRefresh,
}

func ValidEvent(name string) (LifecycleEvent, bool) {
	for _, ev := range LifecycleEvents {
		if string(ev) == name {
			return ev, true
		}
	}
	return "", false
}
