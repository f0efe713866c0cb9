package timer

import (
	"fmt"
	"time"

	"pomodoro/focus/internal/model"
)

type EventType string

const (
	EventTick      EventType = "tick"
	EventCompleted EventType = "completed"
	EventState     EventType = "state"
)

// Event is delivered to subscribers after every state change.
type Event struct {
	Type  EventType   `json:"type"`
	Phase model.Phase `json:"completedPhase,omitempty"`
	State State       `json:"state"`
	At    time.Time   `json:"at"`
}

// Notification is the pending decision point after a completion.
type Notification struct {
	Visible        bool        `json:"visible"`
	CompletedPhase model.Phase `json:"completedPhase,omitempty"`
}

// State is the read-only view exposed to presentation layers.
type State struct {
	Phase                model.Phase  `json:"phase"`
	TimeLeftSeconds      int          `json:"timeLeftSeconds"`
	Display              string       `json:"display"`
	Running              bool         `json:"running"`
	WorkDurationMinutes  int          `json:"workDurationMinutes"`
	BreakDurationMinutes int          `json:"breakDurationMinutes"`
	DateKey              string       `json:"dateKey"`
	SessionCount         int          `json:"sessionCount"`
	TodayWorkMinutes     int          `json:"todayWorkMinutes"`
	TodayBreakMinutes    int          `json:"todayBreakMinutes"`
	ProgressPercentage   float64      `json:"progressPercentage"`
	Notification         Notification `json:"notification"`
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Progress is the elapsed share of total, in percent.
func Progress(total, remaining int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(total-remaining) / float64(total) * 100
}

// Subscribe registers an observer. Events are dropped for a subscriber whose
// buffer is full. The returned func unregisters and closes the channel.
func (e *Engine) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	e.subscribers = append(e.subscribers, ch)
	e.mu.Unlock()

	return ch, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, sub := range e.subscribers {
			if sub == ch {
				e.subscribers = append(e.subscribers[:i], e.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
}

func (e *Engine) emitLocked(eventType EventType, completed model.Phase) {
	if len(e.subscribers) == 0 {
		return
	}
	event := Event{
		Type:  eventType,
		Phase: completed,
		State: e.stateLocked(),
		At:    e.options.Now(),
	}
	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (e *Engine) closeSubscribersLocked() {
	for _, ch := range e.subscribers {
		close(ch)
	}
	e.subscribers = nil
}
