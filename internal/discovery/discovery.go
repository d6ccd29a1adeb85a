// Package discovery locates the window a freshly spawned process opened by
// diffing the window list against a snapshot taken just before the spawn.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultTimeout      = 10 * time.Second
)

// WindowNotFoundError reports that no matching window appeared in time.
type WindowNotFoundError struct {
	Matcher string
	Timeout time.Duration
	Polls   int
}

func (e *WindowNotFoundError) Error() string {
	return fmt.Sprintf("no new window matching %s appeared within %s (%d polls)", e.Matcher, e.Timeout, e.Polls)
}

// Snapshot is the set of window handles open at one instant.
type Snapshot map[platform.WindowID]struct{}

// Capture records the currently open windows.
func Capture(lister platform.WindowLister) (Snapshot, error) {
	windows, err := lister.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot windows: %w", err)
	}
	snap := make(Snapshot, len(windows))
	for _, w := range windows {
		snap[w.ID] = struct{}{}
	}
	return snap, nil
}

// Contains reports whether id was open when the snapshot was taken.
func (s Snapshot) Contains(id platform.WindowID) bool {
	_, ok := s[id]
	return ok
}

// Discoverer polls a window lister at a fixed interval.
type Discoverer struct {
	lister   platform.WindowLister
	interval time.Duration
	logger   *slog.Logger
}

// NewDiscoverer creates a Discoverer. A non-positive interval selects
// DefaultPollInterval.
func NewDiscoverer(lister platform.WindowLister, interval time.Duration, logger *slog.Logger) *Discoverer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{lister: lister, interval: interval, logger: logger}
}

// Discover polls until a window absent from before satisfies m, returning
// the first such window in list order. It returns *WindowNotFoundError once
// timeout elapses, or the context error if ctx ends first.
func (d *Discoverer) Discover(ctx context.Context, before Snapshot, m Matcher, timeout time.Duration) (platform.Window, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(d.interval), 1)
	polls := 0
	for {
		if err := limiter.Wait(pollCtx); err != nil {
			// Wait fails early when the next tick would land past the deadline.
			if ctx.Err() != nil {
				return platform.Window{}, ctx.Err()
			}
			return platform.Window{}, &WindowNotFoundError{Matcher: m.String(), Timeout: timeout, Polls: polls}
		}
		polls++

		windows, err := d.lister.ListWindows()
		if err != nil {
			d.logger.Debug("window list poll failed", "poll", polls, "error", err)
			continue
		}
		for _, w := range windows {
			if before.Contains(w.ID) {
				continue
			}
			if m.Match(w) {
				d.logger.Debug("window discovered",
					"window", fmt.Sprintf("0x%x", uint32(w.ID)),
					"class", w.Class,
					"title", w.Title,
					"polls", polls,
				)
				return w, nil
			}
		}
	}
}

// IsNotFound reports whether err is a discovery timeout.
func IsNotFound(err error) bool {
	var nf *WindowNotFoundError
	return errors.As(err, &nf)
}
