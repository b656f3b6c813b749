package model

import "time"

const (
	SystemOwner     = "system"
	DefaultConfigID = "default"
)

// User is the stored account record. The username doubles as the storage
// partition key, so it never appears twice.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	CreatedAt    int64  `json:"createdAt"`
}

// Config is a named set of timer durations. All timestamps on the wire are
// epoch milliseconds.
type Config struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	FocusMinutes         int    `json:"focusMinutes"`
	ShortBreakMinutes    int    `json:"shortBreakMinutes"`
	LongBreakMinutes     int    `json:"longBreakMinutes"`
	SessionsPerLongBreak int    `json:"sessionsPerLongBreak"`
	Owner                string `json:"owner"`
	CreatedAt            int64  `json:"createdAt,omitempty"`
}

// DefaultConfig returns the immutable system-owned configuration that every
// user sees first in their config list.
func DefaultConfig() Config {
	return Config{
		ID:                   DefaultConfigID,
		Name:                 "Default Pomodoro",
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		SessionsPerLongBreak: 4,
		Owner:                SystemOwner,
	}
}

// Distraction is one logged interruption during a session.
type Distraction struct {
	Text string `json:"text"`
	At   int64  `json:"at"`
}

// Session is one timed run against a config. ConfigID is not checked against
// existing configs; a dangling reference is tolerated.
type Session struct {
	ID           string        `json:"id"`
	ConfigID     string        `json:"configId"`
	StartedAt    int64         `json:"startedAt"`
	Distractions []Distraction `json:"distractions"`
	FocusInput   string        `json:"focusInput"`
}

// NowMillis is the timestamp used in ids and records.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
