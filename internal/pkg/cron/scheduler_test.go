package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobOnStartAndStopsCleanly(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{}, 1)
	s := NewScheduler()
	s.AddJob("test_job", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

func TestScheduler_StopCancelsJobContext(t *testing.T) {
	t.Parallel()

	var jobCtx context.Context
	got := make(chan struct{}, 1)
	s := NewScheduler()
	s.AddJob("ctx_job", time.Hour, func(ctx context.Context) error {
		jobCtx = ctx
		select {
		case got <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	require.NotNil(t, jobCtx)
	assert.Error(t, jobCtx.Err())
}
