// Package notify posts desktop notifications through
// org.freedesktop.Notifications on the session bus.
package notify

import (
	"fmt"
	"log/slog"
	"sync"

	godbus "github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = "/org/freedesktop/Notifications"
	notifyCall = busName + ".Notify"

	appName = "workspace-launcher"
	appIcon = "preferences-desktop-display"
	// Milliseconds; -1 lets the server decide.
	defaultTimeout int32 = -1
)

// caller is the subset of godbus.BusObject used here.
type caller interface {
	Call(method string, flags godbus.Flags, args ...interface{}) *godbus.Call
}

// Notifier sends notifications. A disabled Notifier is a no-op. Failures are
// logged and never returned to callers that use Send.
type Notifier struct {
	enabled bool
	logger  *slog.Logger

	mu  sync.Mutex
	obj caller
}

// New creates a Notifier. The bus connection is opened lazily on first use.
func New(enabled bool, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{enabled: enabled, logger: logger}
}

func newWithCaller(obj caller) *Notifier {
	return &Notifier{enabled: true, logger: slog.Default(), obj: obj}
}

// Notify posts a notification and returns its server-assigned id.
func (n *Notifier) Notify(summary, body string) (uint32, error) {
	if !n.enabled {
		return 0, nil
	}
	obj, err := n.object()
	if err != nil {
		return 0, err
	}

	hints := map[string]godbus.Variant{
		"category":      godbus.MakeVariant("presence"),
		"transient":     godbus.MakeVariant(true),
		"desktop-entry": godbus.MakeVariant(appName),
	}
	call := obj.Call(notifyCall, 0,
		appName,
		uint32(0),
		appIcon,
		summary,
		body,
		[]string{},
		hints,
		defaultTimeout,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: decoding reply: %w", err)
	}
	return id, nil
}

// Send is Notify for fire-and-forget callers.
func (n *Notifier) Send(summary, body string) {
	if _, err := n.Notify(summary, body); err != nil {
		n.logger.Debug("desktop notification failed", "error", err)
	}
}

func (n *Notifier) object() (caller, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.obj != nil {
		return n.obj, nil
	}
	conn, err := godbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("notify: connecting to session bus: %w", err)
	}
	n.obj = conn.Object(busName, godbus.ObjectPath(objectPath))
	return n.obj, nil
}
