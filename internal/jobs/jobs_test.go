package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/domain/services"
	"tracker/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweepHandler struct {
	mock.Mock
}

func (m *MockSweepHandler) Handle(ctx context.Context, cmd commands.SweepStatusChangesCommand) (commands.SweepResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type fakeEvicter struct {
	calls int
}

func (f *fakeEvicter) EvictExpired() int {
	f.calls++
	return 2
}

func TestStatusSweepJob_Run(t *testing.T) {
	handler := &MockSweepHandler{}
	want := commands.SweepResult{
		RunID:   "run-1",
		Changes: []services.StatusChange{{OrderID: "CN-1"}},
	}
	handler.On("Handle", mock.Anything, mock.AnythingOfType("commands.SweepStatusChangesCommand")).
		Return(want, nil).Once()

	job := jobs.NewStatusSweepJob(handler, time.Minute, time.Second, nil)
	got, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
	handler.AssertExpectations(t)
}

func TestStatusSweepJob_RunBoundsContext(t *testing.T) {
	handler := &MockSweepHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, ok := ctx.Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
		}).
		Return(commands.SweepResult{}, nil).Once()

	job := jobs.NewStatusSweepJob(handler, time.Minute, 0, nil)
	_, err := job.Run(context.Background())
	require.NoError(t, err)
}

func TestStatusSweepJob_RunReturnsError(t *testing.T) {
	handler := &MockSweepHandler{}
	boom := errors.New("backend down")
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.SweepResult{RunID: "run-2"}, boom)

	job := jobs.NewStatusSweepJob(handler, time.Minute, 0, nil)
	_, err := job.Run(context.Background())

	require.ErrorIs(t, err, boom)
}

func TestStatusSweepJob_StartRejectsZeroInterval(t *testing.T) {
	job := jobs.NewStatusSweepJob(&MockSweepHandler{}, 0, 0, nil)
	require.Error(t, job.Start())
}

func TestStatusSweepJob_StartStop(t *testing.T) {
	job := jobs.NewStatusSweepJob(&MockSweepHandler{}, time.Hour, 0, nil)
	require.NoError(t, job.Start())
	job.Stop()
}

func TestSessionEvictionJob_Run(t *testing.T) {
	ev := &fakeEvicter{}
	job := jobs.NewSessionEvictionJob(ev, time.Minute, nil)

	assert.Equal(t, 2, job.Run())
	assert.Equal(t, 1, ev.calls)
}

type recordingJob struct {
	name    string
	fail    bool
	journal *[]string
}

func (j *recordingJob) Start() error {
	if j.fail {
		return errors.New("cannot start")
	}
	*j.journal = append(*j.journal, "start "+j.name)
	return nil
}

func (j *recordingJob) Stop() {
	*j.journal = append(*j.journal, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var journal []string
		jm := jobs.NewJobManager(
			&recordingJob{name: "a", journal: &journal},
			nil,
			&recordingJob{name: "b", journal: &journal},
		)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, journal)
	})

	t.Run("failed start stops what already runs", func(t *testing.T) {
		var journal []string
		jm := jobs.NewJobManager(
			&recordingJob{name: "a", journal: &journal},
			&recordingJob{name: "b", fail: true, journal: &journal},
		)

		require.Error(t, jm.StartAll())
		assert.Equal(t, []string{"start a", "stop a"}, journal)
	})

	t.Run("typed nil jobs are skipped", func(t *testing.T) {
		var eviction *jobs.SessionEvictionJob
		jm := jobs.NewJobManager(eviction)
		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})
}
