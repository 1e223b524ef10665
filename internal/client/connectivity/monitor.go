// Package connectivity tracks whether the gateway is reachable and signals transitions.
package connectivity

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultInterval = 15 * time.Second
	DefaultTimeout  = 5 * time.Second
)

//go:generate moq -out checker_mock.go . HealthChecker

// HealthChecker проверяет доступность шлюза (api.Client.Health)
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Monitor holds the last known connectivity state.
// The state starts as online so that the first live call decides; Check corrects it.
type Monitor struct {
	checker  HealthChecker
	logger   *slog.Logger
	interval time.Duration
	timeout  time.Duration

	mu        sync.RWMutex
	online    bool
	nextID    uint64
	listeners []listener
}

type listener struct {
	fn func(online bool)
	id uint64
}

// NewMonitor creates a monitor. Non-positive interval or timeout fall back to the defaults.
func NewMonitor(checker HealthChecker, interval, timeout time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Monitor{
		checker:  checker,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
		online:   true,
	}
}

// Online reports the last known state
func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// OnChange registers fn to be called on every state transition.
// The returned func removes the registration; calling it more than once is a no-op.
func (m *Monitor) OnChange(fn func(online bool)) (unregister func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// Check queries the gateway health once and returns the new state.
func (m *Monitor) Check(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.checker.Health(checkCtx)
	if err != nil {
		m.logger.Debug("Gateway health check failed", "error", err)
	}
	m.Set(err == nil)
	return err == nil
}

// Set records the state and notifies listeners if it changed.
func (m *Monitor) Set(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	listeners := append([]listener(nil), m.listeners...)
	m.mu.Unlock()

	if !changed {
		return
	}

	if online {
		m.logger.Info("Gateway is reachable")
	} else {
		m.logger.Warn("Gateway is unreachable, working offline")
	}
	for _, l := range listeners {
		l.fn(online)
	}
}

// Run checks the gateway until ctx is done.
// trigger is called once after the first check and then on every offline to online transition.
func (m *Monitor) Run(ctx context.Context, trigger func(ctx context.Context)) error {
	reconnected := make(chan struct{}, 1)
	unregister := m.OnChange(func(online bool) {
		if !online {
			return
		}
		select {
		case reconnected <- struct{}{}:
		default:
			// повторный сигнал уже ожидает обработки
		}
	})
	defer unregister()

	m.Check(ctx)
	// Первый проход запускается независимо от результата проверки
	drain(reconnected)
	trigger(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Check(ctx)
		case <-reconnected:
			trigger(ctx)
		}
	}
}

func drain(ch chan struct{}) {
	select {
	case <-ch:
	default:
	}
}
