package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeReconciler struct {
	calls atomic.Int32
	err   error
}

func (f *fakeReconciler) ReconcileAll(context.Context) (int, error) {
	f.calls.Add(1)
	return 1, f.err
}

func TestReconcileWorker_RunsUntilCancelled(t *testing.T) {
	rec := &fakeReconciler{}
	w := NewReconcileWorker(rec, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rec.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestReconcileWorker_DisabledReturnsImmediately(t *testing.T) {
	rec := &fakeReconciler{}
	w := NewReconcileWorker(rec, 0, zerolog.Nop())

	w.Start(context.Background())

	assert.Zero(t, rec.calls.Load())
}

func TestReconcileWorker_SurvivesFailedPass(t *testing.T) {
	rec := &fakeReconciler{err: errors.New("store unavailable")}
	w := NewReconcileWorker(rec, 5*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rec.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
