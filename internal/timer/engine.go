// Package timer implements the work/break state machine, the daily session
// accounting and the notification gate between phases.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"sync"
	"time"

	"pomodoro/focus/internal/model"
	"pomodoro/focus/internal/storage"
	"pomodoro/focus/internal/tone"
)

// Options contains runtime options for the Engine.
type Options struct {
	// TickInterval is the pulse period. Defaults to one second.
	TickInterval time.Duration
	// Defaults are used for settings that are absent or invalid in the store.
	Defaults model.Settings
	Now      func() time.Time
	Tone     tone.Player
	Logger   *log.Logger
	// Strict panics on invariant violations instead of clamping.
	Strict bool
}

// Engine owns one timer session. All commands are serialized by a single
// mutex and return immediately.
type Engine struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	options Options
	store   storage.Store

	settings     model.Settings
	phase        model.Phase
	timeLeft     int
	running      bool
	notification Notification
	accountant   *Accountant

	pulse       *pulse
	pulses      sync.WaitGroup
	subscribers []chan Event
	closed      bool
}

// effects are side effects collected under the lock and run after it is
// released.
type effects struct {
	playTone bool
}

// New builds an Engine from persisted settings and today's history. Read
// failures are logged and fall back to defaults.
func New(store storage.Store, history storage.HistoryStore, options Options) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if !options.Defaults.Valid() {
		options.Defaults = options.Defaults.Sanitize(model.DefaultSettings())
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Tone == nil {
		options.Tone = tone.Nop{}
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	engine := &Engine{
		ctx:     ctx,
		cancel:  cancel,
		options: options,
		store:   store,
		phase:   model.PhaseWork,
	}

	engine.settings = engine.loadSettings()
	engine.timeLeft = engine.settings.DurationSeconds(model.PhaseWork)

	engine.accountant = NewAccountant(history, model.DailyAccumulator{})
	if err := engine.accountant.Restore(ctx, options.Now()); err != nil {
		engine.logf("%v", err)
	}
	return engine
}

// Snapshot returns the current state. It also applies the day-boundary check
// so an idle timer left overnight reports fresh counters.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accountant.Rollover(e.options.Now())
	return e.stateLocked()
}

func (e *Engine) Settings() model.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Toggle flips between running and paused. Resuming continues from the exact
// remaining time.
func (e *Engine) Toggle() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.stateLocked()
	}
	e.running = !e.running
	if e.running {
		e.startPulseLocked()
	} else {
		e.stopPulseLocked()
	}
	e.emitLocked(EventState, "")
	return e.stateLocked()
}

// Reset stops the timer, returns to a full work phase and discards any
// unconfirmed completion.
func (e *Engine) Reset() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.running = false
	e.stopPulseLocked()
	e.phase = model.PhaseWork
	e.timeLeft = e.settings.DurationSeconds(model.PhaseWork)
	e.notification = Notification{}
	e.emitLocked(EventState, "")
	return e.stateLocked()
}

// Tick advances the countdown by one second. It does nothing unless the
// timer is running with time left.
func (e *Engine) Tick() State {
	fx, state := e.tick()
	e.apply(fx)
	return state
}

func (e *Engine) tick() (effects, State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fx := e.tickLocked()
	return fx, e.stateLocked()
}

// UpdateSettings stores new durations and snaps the remaining time to the
// full duration of the current phase. Zero leaves a field unchanged and
// out-of-range values keep their previous setting.
func (e *Engine) UpdateSettings(workMinutes, breakMinutes int) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	requested := model.Settings{WorkMinutes: workMinutes, BreakMinutes: breakMinutes}
	next := requested.Sanitize(e.settings)
	if rejected(workMinutes, next.WorkMinutes) || rejected(breakMinutes, next.BreakMinutes) {
		e.logf("settings %d/%d out of range, keeping %d/%d",
			workMinutes, breakMinutes, next.WorkMinutes, next.BreakMinutes)
	}

	e.settings = next
	e.timeLeft = next.DurationSeconds(e.phase)
	e.saveSettingsLocked()
	e.emitLocked(EventState, "")
	return e.stateLocked()
}

// ConfirmNotification hides a pending notification and starts the already
// loaded next phase.
func (e *Engine) ConfirmNotification() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.notification.Visible || e.closed {
		return e.stateLocked()
	}
	e.notification = Notification{}
	e.running = true
	e.startPulseLocked()
	e.emitLocked(EventState, "")
	return e.stateLocked()
}

// DismissNotification hides a pending notification and leaves the timer
// paused.
func (e *Engine) DismissNotification() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.notification.Visible {
		return e.stateLocked()
	}
	e.notification = Notification{}
	e.emitLocked(EventState, "")
	return e.stateLocked()
}

// Close stops the pulse, waits for every pulse goroutine to exit and closes
// subscriber channels. The engine rejects further starts afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.running = false
	e.stopPulseLocked()
	e.closeSubscribersLocked()
	e.mu.Unlock()

	e.pulses.Wait()
	e.cancel()

	if closer, ok := e.options.Tone.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func rejected(requested, applied int) bool {
	return requested != 0 && requested != applied
}

func (e *Engine) tickLocked() effects {
	e.checkInvariantLocked()
	if !e.running || e.timeLeft <= 0 {
		return effects{}
	}

	e.timeLeft--
	if e.timeLeft > 0 {
		e.emitLocked(EventTick, "")
		return effects{}
	}
	return e.completeLocked()
}

// completeLocked finishes the current phase: accounting runs against the
// ending phase before the flip, then the gate opens with the next phase
// loaded but paused.
func (e *Engine) completeLocked() effects {
	ended := e.phase
	e.running = false
	e.stopPulseLocked()

	if err := e.accountant.Record(e.ctx, ended, e.settings, e.options.Now()); err != nil {
		e.logf("%v", err)
	}

	e.phase = ended.Other()
	e.timeLeft = e.settings.DurationSeconds(e.phase)
	e.notification = Notification{Visible: true, CompletedPhase: ended}
	e.emitLocked(EventCompleted, ended)
	return effects{playTone: true}
}

func (e *Engine) checkInvariantLocked() {
	if e.timeLeft >= 0 {
		return
	}
	if e.options.Strict {
		panic(fmt.Sprintf("timer: negative time left %d", e.timeLeft))
	}
	e.logf("timer: negative time left %d, clamping to 0", e.timeLeft)
	e.timeLeft = 0
}

func (e *Engine) apply(fx effects) {
	if fx.playTone {
		e.playTone()
	}
}

func (e *Engine) playTone() {
	defer func() {
		if r := recover(); r != nil {
			e.logf("notification tone panicked: %v", r)
		}
	}()
	if err := e.options.Tone.Play(); err != nil {
		e.logf("play notification tone: %v", err)
	}
}

func (e *Engine) stateLocked() State {
	acc := e.accountant.Snapshot()
	return State{
		Phase:                e.phase,
		TimeLeftSeconds:      e.timeLeft,
		Display:              FormatClock(e.timeLeft),
		Running:              e.running,
		WorkDurationMinutes:  e.settings.WorkMinutes,
		BreakDurationMinutes: e.settings.BreakMinutes,
		DateKey:              acc.DateKey,
		SessionCount:         acc.SessionCount,
		TodayWorkMinutes:     acc.WorkMinutes,
		TodayBreakMinutes:    acc.BreakMinutes,
		ProgressPercentage:   Progress(e.settings.DurationSeconds(e.phase), e.timeLeft),
		Notification:         e.notification,
	}
}

func (e *Engine) loadSettings() model.Settings {
	settings := e.options.Defaults
	if e.store == nil {
		return settings
	}
	if minutes, ok := e.loadMinutes(model.SettingsWorkKey); ok {
		settings.WorkMinutes = minutes
	}
	if minutes, ok := e.loadMinutes(model.SettingsBreakKey); ok {
		settings.BreakMinutes = minutes
	}
	return settings.Sanitize(e.options.Defaults)
}

func (e *Engine) loadMinutes(key string) (int, bool) {
	raw, err := e.store.Load(e.ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, false
	}
	if err != nil {
		e.logf("load %s: %v", key, err)
		return 0, false
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		e.logf("ignoring stored %s=%q: %v", key, raw, err)
		return 0, false
	}
	return minutes, true
}

func (e *Engine) saveSettingsLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.ctx, model.SettingsWorkKey, strconv.Itoa(e.settings.WorkMinutes)); err != nil {
		e.logf("save %s: %v", model.SettingsWorkKey, err)
	}
	if err := e.store.Save(e.ctx, model.SettingsBreakKey, strconv.Itoa(e.settings.BreakMinutes)); err != nil {
		e.logf("save %s: %v", model.SettingsBreakKey, err)
	}
}

func (e *Engine) logf(format string, args ...interface{}) {
	e.options.Logger.Printf(format, args...)
}
