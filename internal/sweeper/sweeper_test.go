package sweeper

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"go-content-cache/internal/cache/memory"
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/interfaces/mock"
)

const testInterval = 30 * time.Second

func newTestSweeper(t *testing.T, development, optIn bool, storage interfaces.StorageArea) (*AutoClear, *memory.Cache, *clock.Mock) {
	logger := zaptest.NewLogger(t)
	clk := clock.NewMock()
	store := memory.NewCacheWithClock(time.Hour, clk, logger)

	s := New(Options{
		Development: development,
		OptIn:       optIn,
		Interval:    testInterval,
		Markers:     []string{"cache", "sanity"},
	}, store, storage, clk, logger)
	t.Cleanup(s.Stop)

	return s, store, clk
}

func TestAutoClear_Gating(t *testing.T) {
	tests := []struct {
		name        string
		development bool
		optIn       bool
		wantRunning bool
	}{
		{"development and opt-in", true, true, true},
		{"development only", true, false, false},
		{"opt-in only", false, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, clk := newTestSweeper(t, tt.development, tt.optIn, nil)
			store.Set("all-cakes:published", []byte(`[]`))

			assert.Equal(t, tt.wantRunning, s.Start())
			clk.Add(testInterval + time.Second)

			if tt.wantRunning {
				assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
			} else {
				assert.Equal(t, 1, store.Len())
				assert.False(t, s.Status().Running)
			}
		})
	}
}

func TestAutoClear_ClearsOnEveryTick(t *testing.T) {
	s, store, clk := newTestSweeper(t, true, true, nil)
	require.True(t, s.Start())

	for i := 0; i < 3; i++ {
		store.Set("featured-cakes:published", []byte(`[]`))
		clk.Add(testInterval)
		assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	}
}

func TestAutoClear_StartTwiceStopOnce(t *testing.T) {
	s, store, clk := newTestSweeper(t, true, true, nil)

	assert.True(t, s.Start())
	assert.True(t, s.Start())
	s.Stop()

	assert.False(t, s.Status().Running)

	store.Set("all-cakes:published", []byte(`[]`))
	clk.Add(3 * testInterval)

	assert.Equal(t, 1, store.Len())
}

func TestAutoClear_StopWhenIdle(t *testing.T) {
	s, _, _ := newTestSweeper(t, true, true, nil)

	// Must not panic or block
	s.Stop()
	s.Stop()

	assert.False(t, s.Status().Running)
}

func TestAutoClear_NonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		clk := clock.NewMock()
		store := memory.NewCacheWithClock(time.Hour, clk, zaptest.NewLogger(t))
		s := New(Options{Development: true, OptIn: true, Interval: interval}, store, nil, clk, zaptest.NewLogger(t))

		assert.NotPanics(t, func() { assert.False(t, s.Start()) }, "interval %v", interval)
		assert.False(t, s.Status().Running)
		s.Stop()
	}
}

func TestAutoClear_RestartAfterStop(t *testing.T) {
	s, store, clk := newTestSweeper(t, true, true, nil)

	require.True(t, s.Start())
	s.Stop()
	require.True(t, s.Start())

	store.Set("all-cakes:published", []byte(`[]`))
	clk.Add(testInterval)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestAutoClear_Status(t *testing.T) {
	s, _, _ := newTestSweeper(t, true, true, nil)

	idle := s.Status()
	assert.False(t, idle.Running)
	assert.Nil(t, idle.IntervalMillis)

	require.True(t, s.Start())

	running := s.Status()
	assert.True(t, running.Running)
	require.NotNil(t, running.IntervalMillis)
	assert.Equal(t, int64(30000), *running.IntervalMillis)
}

func TestAutoClear_ClearAll_RemovesMarkedStorageKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorageArea(ctrl)

	s, store, _ := newTestSweeper(t, false, false, storage)
	store.Set("all-cakes:published", []byte(`[]`))
	store.Set("cake-by-slug:published:lemon", []byte(`{}`))

	storage.EXPECT().Keys(gomock.Any()).Return([]string{"sanity-preview-token", "theme", "page-cache:home", "Cache-upper"}, nil)
	storage.EXPECT().Remove(gomock.Any(), "sanity-preview-token").Return(nil)
	storage.EXPECT().Remove(gomock.Any(), "page-cache:home").Return(errors.New("gone"))

	s.ClearAll()

	assert.Equal(t, 0, store.Len())
}

func TestAutoClear_ClearAll_StorageUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mock.NewMockStorageArea(ctrl)

	s, store, _ := newTestSweeper(t, false, false, storage)
	store.Set("all-cakes:published", []byte(`[]`))

	storage.EXPECT().Keys(gomock.Any()).Return(nil, errors.New("connection refused"))

	assert.NotPanics(t, s.ClearAll)
	assert.Equal(t, 0, store.Len())
}

func TestAutoClear_ClearAll_NoStorage(t *testing.T) {
	s, store, _ := newTestSweeper(t, false, false, nil)
	store.Set("all-cakes:published", []byte(`[]`))

	assert.NotPanics(t, s.ClearAll)
	assert.Equal(t, 0, store.Len())
}

func TestAutoClear_ClearPattern(t *testing.T) {
	s, store, _ := newTestSweeper(t, false, false, nil)
	store.Set("cake-by-slug:published:lemon", []byte(`{}`))
	store.Set("cake-by-slug:published:carrot", []byte(`{}`))
	store.Set("all-cakes:published", []byte(`[]`))

	s.ClearPattern("cake-by-slug")

	assert.Equal(t, 1, store.Len())
	_, found := store.Get("all-cakes:published")
	assert.True(t, found)
}
