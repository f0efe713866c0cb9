package model

type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Other returns the phase that follows p.
func (p Phase) Other() Phase {
	if p == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

func (p Phase) Valid() bool {
	return p == PhaseWork || p == PhaseBreak
}

const (
	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5

	MinWorkMinutes  = 1
	MaxWorkMinutes  = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60
)

const (
	SettingsWorkKey  = "settings.workDuration"
	SettingsBreakKey = "settings.breakDuration"
)

type Settings struct {
	WorkMinutes  int `json:"workDurationMinutes" yaml:"work_duration_minutes"`
	BreakMinutes int `json:"breakDurationMinutes" yaml:"break_duration_minutes"`
}

func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
	}
}

// Sanitize replaces every out-of-range field with the matching field of
// fallback. The fallback itself is expected to be valid.
func (s Settings) Sanitize(fallback Settings) Settings {
	out := s
	if !ValidWorkMinutes(out.WorkMinutes) {
		out.WorkMinutes = fallback.WorkMinutes
	}
	if !ValidBreakMinutes(out.BreakMinutes) {
		out.BreakMinutes = fallback.BreakMinutes
	}
	return out
}

func (s Settings) Valid() bool {
	return ValidWorkMinutes(s.WorkMinutes) && ValidBreakMinutes(s.BreakMinutes)
}

// DurationSeconds is the full length of the given phase.
func (s Settings) DurationSeconds(p Phase) int {
	return s.MinutesFor(p) * 60
}

// MinutesFor is the number of minutes credited when p completes.
func (s Settings) MinutesFor(p Phase) int {
	if p == PhaseBreak {
		return s.BreakMinutes
	}
	return s.WorkMinutes
}

func ValidWorkMinutes(minutes int) bool {
	return minutes >= MinWorkMinutes && minutes <= MaxWorkMinutes
}

func ValidBreakMinutes(minutes int) bool {
	return minutes >= MinBreakMinutes && minutes <= MaxBreakMinutes
}
