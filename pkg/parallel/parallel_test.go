package parallel

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMapPreservesOrder(t *testing.T) {
	for _, workers := range []int{1, 2, 8} {
		for _, chunk := range []int{1, 3, 16, 1000} {
			got, err := Map(context.Background(), 100, func(_ context.Context, i int) (int64, error) {
				return int64(i * i), nil
			}, WithWorkers(workers), WithChunkSize(chunk))
			require.NoError(t, err)
			require.Len(t, got, 100)
			for i, v := range got {
				assert.Equal(t, int64(i*i), v, "workers=%d chunk=%d slot=%d", workers, chunk, i)
			}
		}
	}
}

func TestMapVisitsEachIndexOnce(t *testing.T) {
	const n = 517
	var visits [n]int32

	_, err := Map(context.Background(), n, func(_ context.Context, i int) (int64, error) {
		atomic.AddInt32(&visits[i], 1)
		return 0, nil
	}, WithWorkers(4), WithChunkSize(7))
	require.NoError(t, err)

	for i := range visits {
		assert.Equal(t, int32(1), visits[i], "index %d", i)
	}
}

func TestMapEmpty(t *testing.T) {
	got, err := Map(context.Background(), 0, func(context.Context, int) (int64, error) {
		t.Fatal("fn must not be called")
		return 0, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMapFirstErrorAborts(t *testing.T) {
	boom := stderrors.New("boom")
	var calls int32

	got, err := Map(context.Background(), 1000, func(_ context.Context, i int) (int64, error) {
		atomic.AddInt32(&calls, 1)
		if i == 5 {
			return 0, boom
		}
		return 1, nil
	}, WithWorkers(1), WithChunkSize(1))

	require.ErrorIs(t, err, boom)
	assert.Nil(t, got, "no partial results on failure")
	assert.Less(t, atomic.LoadInt32(&calls), int32(1000))
}

func TestMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Map(ctx, 10, func(context.Context, int) (int64, error) {
		return 1, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMapCancelledMidway(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Map(ctx, 1<<20, func(ctx context.Context, _ int) (int64, error) {
		time.Sleep(time.Millisecond)
		return 1, nil
	}, WithWorkers(2))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSum(t *testing.T) {
	assert.Equal(t, int64(0), Sum(nil))
	assert.Equal(t, int64(6), Sum([]int64{1, 2, 3}))
}

func TestMapSum(t *testing.T) {
	total, err := MapSum(context.Background(), 10, func(_ context.Context, i int) (int64, error) {
		return int64(i), nil
	}, WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, int64(45), total)
}

func BenchmarkMap(b *testing.B) {
	fn := func(_ context.Context, i int) (int64, error) { return int64(i), nil }
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Map(context.Background(), 10000, fn)
	}
}
