package service

import (
	"pomodoro/focus/internal/timer"
)

type TimerService struct {
	engine *timer.Engine
}

type UpdateSettingsInput struct {
	WorkDurationMinutes  int
	BreakDurationMinutes int
}

func NewTimerService(engine *timer.Engine) *TimerService {
	return &TimerService{engine: engine}
}

func (s *TimerService) State() timer.State {
	return s.engine.Snapshot()
}

func (s *TimerService) Toggle() timer.State {
	return s.engine.Toggle()
}

func (s *TimerService) Reset() timer.State {
	return s.engine.Reset()
}

// UpdateSettings applies new durations in one engine step. A zero field
// keeps the current value, as does any out-of-range field.
func (s *TimerService) UpdateSettings(input UpdateSettingsInput) timer.State {
	return s.engine.UpdateSettings(input.WorkDurationMinutes, input.BreakDurationMinutes)
}

func (s *TimerService) ConfirmNotification() timer.State {
	return s.engine.ConfirmNotification()
}

func (s *TimerService) DismissNotification() timer.State {
	return s.engine.DismissNotification()
}

func (s *TimerService) Subscribe(buffer int) (<-chan timer.Event, func()) {
	return s.engine.Subscribe(buffer)
}
