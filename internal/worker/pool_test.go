package worker_test

import (
	"sync/atomic"
	"testing"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/worker"
	"github.com/stretchr/testify/assert"
)

func TestPool_RunsAllJobs(t *testing.T) {
	p := worker.NewPool(4)

	var counter int64
	for i := 0; i < 100; i++ {
		p.Submit(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	p.Stop()

	assert.Equal(t, int64(100), atomic.LoadInt64(&counter))
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	p := worker.NewPool(0)

	done := make(chan struct{})
	p.Submit(func() { close(done) })
	p.Stop()

	select {
	case <-done:
	default:
		t.Fatal("job was not executed")
	}
}
