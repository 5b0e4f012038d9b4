package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingCleanupDatabase struct {
	mu    sync.Mutex
	calls []int
}

func (r *recordingCleanupDatabase) CleanupOldRecords(ctx context.Context, retentionDays int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, retentionDays)
	return nil
}

func (r *recordingCleanupDatabase) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSchedulerRunsCleanupImmediately(t *testing.T) {
	db := &recordingCleanupDatabase{}
	scheduler := NewScheduler(db, 30, 24, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Start(ctx)
	}()

	assert.Eventually(t, func() bool {
		return db.callCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after context cancel")
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	assert.Equal(t, []int{30}, db.calls)
}

func TestSchedulerStop(t *testing.T) {
	db := &recordingCleanupDatabase{}
	scheduler := NewScheduler(db, 30, 24, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Start(context.Background())
	}()

	assert.Eventually(t, func() bool {
		return db.callCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	scheduler.Stop()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after Stop")
	}
}

func TestSchedulerDefaultsInterval(t *testing.T) {
	scheduler := NewScheduler(&recordingCleanupDatabase{}, 30, 0, testLogger())
	assert.Equal(t, 24, scheduler.intervalHours)
}
