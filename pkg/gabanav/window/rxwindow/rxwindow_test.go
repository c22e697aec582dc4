package rxwindow_test

import (
	"context"
	"testing"
	"time"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/layout"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/rxwindow"
	"github.com/reactivex/rxgo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockRepository is a mock implementation of layout.WindowInfoRepository.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CurrentWindowMetrics(ctx context.Context) <-chan layout.WindowMetrics {
	args := m.Called(ctx)
	return args.Get(0).(<-chan layout.WindowMetrics)
}

func (m *mockRepository) WindowLayoutInfo(ctx context.Context) <-chan layout.WindowLayoutInfo {
	args := m.Called(ctx)
	return args.Get(0).(<-chan layout.WindowLayoutInfo)
}

func flowOf[T any](values ...T) <-chan T {
	ch := make(chan T, len(values))
	for _, v := range values {
		ch <- v
	}
	close(ch)
	return ch
}

func hingeLayout() layout.WindowLayoutInfo {
	feature := layout.MustFoldingFeature(
		layout.Rect{Left: 0, Top: 100, Right: 100, Bottom: 100},
		layout.FoldTypeHinge,
		layout.FoldStateHalfOpened,
	)
	return layout.NewWindowLayoutInfo(feature)
}

func TestCurrentWindowMetricsObservable(t *testing.T) {
	expected := layout.WindowMetrics{Bounds: layout.Rect{Left: 0, Top: 1, Right: 2, Bottom: 3}}
	repo := &mockRepository{}
	repo.On("CurrentWindowMetrics", mock.Anything).Return(flowOf(expected))

	obs := rxwindow.CurrentWindowMetricsObservable(repo)

	rxgo.Assert(context.Background(), t, obs, rxgo.HasItems(expected), rxgo.HasNoError())
	repo.AssertExpectations(t)
}

func TestCurrentWindowMetricsFlowable(t *testing.T) {
	expected := layout.WindowMetrics{Bounds: layout.Rect{Left: 0, Top: 1, Right: 2, Bottom: 3}}
	repo := &mockRepository{}
	repo.On("CurrentWindowMetrics", mock.Anything).Return(flowOf(expected))

	obs := rxwindow.CurrentWindowMetricsFlowable(repo)

	rxgo.Assert(context.Background(), t, obs, rxgo.HasItems(expected), rxgo.HasNoError())
	repo.AssertExpectations(t)
}

func TestWindowLayoutInfoObservable(t *testing.T) {
	expected := hingeLayout()
	repo := &mockRepository{}
	repo.On("WindowLayoutInfo", mock.Anything).Return(flowOf(expected))

	obs := rxwindow.WindowLayoutInfoObservable(repo)

	rxgo.Assert(context.Background(), t, obs, rxgo.HasItems(expected), rxgo.HasNoError())
	repo.AssertExpectations(t)
}

func TestWindowLayoutInfoFlowable(t *testing.T) {
	expected := hingeLayout()
	repo := &mockRepository{}
	repo.On("WindowLayoutInfo", mock.Anything).Return(flowOf(expected))

	obs := rxwindow.WindowLayoutInfoFlowable(repo)

	rxgo.Assert(context.Background(), t, obs, rxgo.HasItems(expected), rxgo.HasNoError())
	repo.AssertExpectations(t)
}

func TestAdaptersAreCold(t *testing.T) {
	first := layout.WindowMetrics{Bounds: layout.Rect{Right: 640, Bottom: 480}}
	second := layout.WindowMetrics{Bounds: layout.Rect{Right: 1024, Bottom: 768}}
	repo := &mockRepository{}
	repo.On("CurrentWindowMetrics", mock.Anything).Return(flowOf(first)).Once()
	repo.On("CurrentWindowMetrics", mock.Anything).Return(flowOf(second)).Once()

	obs := rxwindow.CurrentWindowMetricsObservable(repo)
	repo.AssertNotCalled(t, "CurrentWindowMetrics", mock.Anything)

	rxgo.Assert(context.Background(), t, obs, rxgo.HasItems(first))
	rxgo.Assert(context.Background(), t, obs, rxgo.HasItems(second))
	repo.AssertExpectations(t)
}

func TestFlowableForwardsEveryValueInOrder(t *testing.T) {
	values := make([]layout.WindowMetrics, 3*rxwindow.FlowableBufferSize)
	want := make([]interface{}, len(values))
	for i := range values {
		values[i] = layout.WindowMetrics{Bounds: layout.Rect{Right: i + 1, Bottom: 1}}
		want[i] = values[i]
	}
	repo := &mockRepository{}
	repo.On("CurrentWindowMetrics", mock.Anything).Return(flowOf(values...))

	got, err := rxwindow.CurrentWindowMetricsFlowable(repo).ToSlice(0)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCancellingSubscriptionStopsSource(t *testing.T) {
	stopped := make(chan struct{})
	source := func(ctx context.Context) <-chan layout.WindowMetrics {
		ch := make(chan layout.WindowMetrics)
		go func() {
			defer close(stopped)
			defer close(ch)
			for i := 0; ; i++ {
				select {
				case <-ctx.Done():
					return
				case ch <- layout.WindowMetrics{Bounds: layout.Rect{Right: i}}:
				}
			}
		}()
		return ch
	}

	ctx, cancel := context.WithCancel(context.Background())
	items := rxwindow.Observable(source).Observe(rxgo.WithContext(ctx))
	<-items
	<-items
	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("source kept producing after the subscription was cancelled")
	}
}
