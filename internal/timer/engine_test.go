package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zen/internal/model"
)

type countingNotifier struct {
	calls int32
	last  atomic.Value
}

func (n *countingNotifier) Notify(tone Tone) {
	atomic.AddInt32(&n.calls, 1)
	n.last.Store(tone)
}

func (n *countingNotifier) count() int32 {
	return atomic.LoadInt32(&n.calls)
}

func testConfig() model.Config {
	return model.Config{
		ID:                   "default",
		Name:                 "Default Pomodoro",
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		SessionsPerLongBreak: 4,
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "2:05", FormatTime(125))
	assert.Equal(t, "0:59", FormatTime(59))
	assert.Equal(t, "0:00", FormatTime(0))
	assert.Equal(t, "1:05", FormatTime(65))
	assert.Equal(t, "25:00", FormatTime(25*60))
	assert.Equal(t, "0:00", FormatTime(-3))
}

func TestInitialize(t *testing.T) {
	engine := New(nil)
	engine.Initialize(testConfig())

	snap := engine.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, PhaseFocus, snap.Phase)
	assert.Equal(t, 25*60, snap.Remaining)
}

func TestStartIsIdempotent(t *testing.T) {
	engine := New(nil, WithTickInterval(5*time.Millisecond))
	engine.Initialize(testConfig())

	engine.Start()
	engine.Start()
	assert.Equal(t, StateRunning, engine.Snapshot().State)

	require.Eventually(t, func() bool {
		return engine.Snapshot().Remaining < 25*60
	}, 2*time.Second, time.Millisecond)

	// A single Stop must halt everything a double Start set in motion. If a
	// second countdown existed it would keep decrementing below.
	engine.Stop()
	assert.Equal(t, StateStopped, engine.Snapshot().State)

	frozen := engine.Snapshot().Remaining
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, frozen, engine.Snapshot().Remaining)
}

func TestStopPreservesRemainingAndResumes(t *testing.T) {
	engine := New(nil, WithTickInterval(5*time.Millisecond))
	engine.Initialize(testConfig())

	engine.Start()
	require.Eventually(t, func() bool {
		return engine.Snapshot().Remaining < 25*60
	}, 2*time.Second, time.Millisecond)

	engine.Stop()
	snap := engine.Snapshot()
	assert.Equal(t, StateStopped, snap.State)
	assert.Greater(t, snap.Remaining, 0)

	// Resume from the preserved remaining time, not from a full duration.
	engine.Start()
	require.Eventually(t, func() bool {
		return engine.Snapshot().Remaining < snap.Remaining
	}, 2*time.Second, time.Millisecond)
}

func TestExpiryNotifiesOncePerPhase(t *testing.T) {
	notifier := &countingNotifier{}
	var expiredPhase atomic.Value

	cfg := testConfig()
	cfg.FocusMinutes = 1 // 60 ticks at the test interval

	engine := New(notifier,
		WithTickInterval(time.Millisecond),
		WithOnExpire(func(phase Phase) { expiredPhase.Store(phase) }),
	)
	engine.Initialize(cfg)
	engine.Start()

	require.Eventually(t, func() bool {
		return engine.Snapshot().State == StateExpired
	}, 5*time.Second, time.Millisecond)

	assert.Equal(t, 0, engine.Snapshot().Remaining)
	assert.Equal(t, PhaseFocus, expiredPhase.Load())

	// No countdown survives expiry, so no further tone can fire.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), notifier.count())
	assert.Equal(t, Tone{Waveform: "sine", FrequencyHz: 880}, notifier.last.Load())

	// Expired engines do not restart; the host resets or switches phase.
	engine.Start()
	assert.Equal(t, StateExpired, engine.Snapshot().State)
}

func TestResetReturnsToFocusIdle(t *testing.T) {
	engine := New(nil, WithTickInterval(5*time.Millisecond))
	engine.Initialize(testConfig())

	require.True(t, engine.SetPhase(PhaseShortBreak))
	engine.Start()
	require.Eventually(t, func() bool {
		return engine.Snapshot().Remaining < 5*60
	}, 2*time.Second, time.Millisecond)

	engine.Reset()
	snap := engine.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, PhaseFocus, snap.Phase)
	assert.Equal(t, 25*60, snap.Remaining)
}

func TestSetPhase(t *testing.T) {
	engine := New(nil, WithTickInterval(time.Hour))
	engine.Initialize(testConfig())

	require.True(t, engine.SetPhase(PhaseLongBreak))
	snap := engine.Snapshot()
	assert.Equal(t, PhaseLongBreak, snap.Phase)
	assert.Equal(t, 15*60, snap.Remaining)

	engine.Start()
	assert.False(t, engine.SetPhase(PhaseFocus), "phase switch must be refused while running")
	engine.Stop()
}

func TestToneFor(t *testing.T) {
	assert.Equal(t, Tone{Waveform: "sine", FrequencyHz: 880}, ToneFor(PhaseFocus))
	assert.Equal(t, Tone{Waveform: "triangle", FrequencyHz: 660}, ToneFor(PhaseShortBreak))
	assert.Equal(t, Tone{Waveform: "square", FrequencyHz: 440}, ToneFor(PhaseLongBreak))
}
