package coinbase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockNonce_Microseconds(t *testing.T) {
	at := time.Date(2014, 5, 13, 16, 53, 20, 123456000, time.UTC)
	n := &ClockNonce{now: func() time.Time { return at }}

	got, err := n.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, at.UnixMicro(), got)
}

func TestClockNonce_StrictlyIncreasingWhenClockStalls(t *testing.T) {
	at := time.Unix(1400000000, 0)
	n := &ClockNonce{now: func() time.Time { return at }}

	first, _ := n.Next(context.Background())
	second, _ := n.Next(context.Background())
	assert.Equal(t, first+1, second)
}

func TestClockNonce_ClockStepsBack(t *testing.T) {
	times := []time.Time{time.Unix(1400000010, 0), time.Unix(1400000000, 0)}
	i := 0
	n := &ClockNonce{now: func() time.Time { t := times[i]; i++; return t }}

	first, _ := n.Next(context.Background())
	second, _ := n.Next(context.Background())
	assert.Greater(t, second, first)
}

func TestClockNonce_Concurrent(t *testing.T) {
	n := NewClockNonce()
	const workers, per = 8, 200

	var mu sync.Mutex
	seen := make(map[int64]struct{}, workers*per)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				v, err := n.Next(context.Background())
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				seen[v] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, workers*per)
}
