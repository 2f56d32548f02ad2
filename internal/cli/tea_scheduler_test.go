package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/pomotodo/internal/timer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaScheduler_EveryArmsOneTick(t *testing.T) {
	s := newTeaScheduler()
	s.Every(time.Second, func() {})

	assert.NotNil(t, s.Cmds())
	assert.Nil(t, s.Cmds(), "pending ticks are handed out once")
	assert.Equal(t, []schedFireMsg{{id: 1, seq: 1}}, s.Armed())
}

func TestTeaScheduler_FireRunsAndRearms(t *testing.T) {
	s := newTeaScheduler()
	fired := 0
	s.Every(time.Second, func() { fired++ })
	_ = s.Cmds()

	msg := s.Armed()[0]
	assert.True(t, s.Fire(msg))
	assert.Equal(t, 1, fired)
	assert.NotNil(t, s.Cmds())
	assert.Equal(t, []schedFireMsg{{id: 1, seq: 2}}, s.Armed())

	assert.False(t, s.Fire(msg), "the first arming is spent")
	assert.Equal(t, 1, fired)
}

func TestTeaScheduler_CancelDropsInFlightTick(t *testing.T) {
	s := newTeaScheduler()
	fired := 0
	h := s.Every(time.Second, func() { fired++ })
	msg := s.Armed()[0]

	h.Cancel()
	h.Cancel()
	assert.False(t, s.Fire(msg))
	assert.Zero(t, fired)
	assert.Empty(t, s.Armed())
}

func TestTeaScheduler_CancelInsideCallbackStopsRearm(t *testing.T) {
	s := newTeaScheduler()
	var h timer.Handle
	h = s.Every(time.Second, func() { h.Cancel() })
	_ = s.Cmds()

	assert.True(t, s.Fire(s.Armed()[0]))
	assert.Nil(t, s.Cmds())
	assert.Empty(t, s.Armed())
}

func TestTeaScheduler_ArmedInRegistrationOrder(t *testing.T) {
	s := newTeaScheduler()
	for i := 0; i < 4; i++ {
		s.Every(time.Second, func() {})
	}
	armed := s.Armed()
	require.Len(t, armed, 4)
	for i, msg := range armed {
		assert.Equal(t, i+1, msg.id)
	}
}

func TestTeaScheduler_DrivesTaskTimer(t *testing.T) {
	s := newTeaScheduler()
	completed := false
	tt, err := timer.New(2, s, timer.WithOnComplete(func() { completed = true }))
	require.NoError(t, err)
	require.NoError(t, tt.Start())

	s.Fire(s.Armed()[0])
	assert.Equal(t, 1, tt.Remaining())
	s.Fire(s.Armed()[0])
	assert.True(t, completed)
	assert.Equal(t, timer.Completed, tt.State())
	assert.Empty(t, s.Armed(), "completion cancels the handle")
}

func TestTeaScheduler_ResetRestartUsesFreshHandle(t *testing.T) {
	s := newTeaScheduler()
	tt, err := timer.New(10, s)
	require.NoError(t, err)
	require.NoError(t, tt.Start())
	stale := s.Armed()[0]

	tt.Reset()
	require.NoError(t, tt.Start())
	assert.False(t, s.Fire(stale))
	assert.Equal(t, 10, tt.Remaining())

	s.Fire(s.Armed()[0])
	assert.Equal(t, 9, tt.Remaining())
}
