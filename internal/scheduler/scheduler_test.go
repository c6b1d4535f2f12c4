package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdd_InvalidSpec(t *testing.T) {
	s := New(zap.NewNop())

	err := s.Add(context.Background(), "report", "not a spec", func(ctx context.Context) error { return nil })

	assert.Error(t, err)
	assert.Empty(t, s.cron.Entries())
}

func TestAdd_RegistersEntries(t *testing.T) {
	s := New(zap.NewNop())

	require.NoError(t, s.Add(context.Background(), "heartbeat", "*/5 * * * *", func(ctx context.Context) error { return nil }))
	require.NoError(t, s.Add(context.Background(), "report", "0 6 * * 1", func(ctx context.Context) error { return nil }))

	assert.Len(t, s.cron.Entries(), 2)
}

func TestJob_ErrorsAreLoggedNotPropagated(t *testing.T) {
	s := New(zap.NewNop())
	var calls int32
	require.NoError(t, s.Add(context.Background(), "report", "@hourly", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("db down")
	}))

	s.cron.Entries()[0].WrappedJob.Run()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestJob_PanicIsRecovered(t *testing.T) {
	s := New(zap.NewNop())
	require.NoError(t, s.Add(context.Background(), "heartbeat", "@hourly", func(ctx context.Context) error {
		panic("boom")
	}))

	assert.NotPanics(t, func() { s.cron.Entries()[0].WrappedJob.Run() })
}

func TestJob_SkipsWhileStillRunning(t *testing.T) {
	s := New(zap.NewNop())
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	require.NoError(t, s.Add(context.Background(), "heartbeat", "@hourly", func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		return nil
	}))
	job := s.cron.Entries()[0].WrappedJob

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		job.Run()
	}()
	<-started

	job.Run()
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := New(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestStart_DoneWaitsForRunningJob(t *testing.T) {
	s := New(zap.NewNop())
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	require.NoError(t, s.Add(context.Background(), "report", "@every 1s", func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := s.Start(ctx)

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started")
	}
	cancel()

	select {
	case <-done:
		t.Fatal("done closed while a job was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after the job returned")
	}
}
