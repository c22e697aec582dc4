// Package rxwindow adapts a layout.WindowInfoRepository to reactive streams.
//
// Every adapter is cold: each subscription asks the repository for a fresh
// stream and cancels it when the subscription ends. Observables hand each
// value straight to the observer. Flowables buffer up to
// FlowableBufferSize values and then hold the repository back until the
// observer catches up.
package rxwindow

import (
	"context"

	"github.com/BrandonKowalski/gabanav/pkg/gabanav/constants"
	"github.com/BrandonKowalski/gabanav/pkg/gabanav/window/layout"
	"github.com/reactivex/rxgo/v2"
)

// FlowableBufferSize is how many values a Flowable holds for a slow observer.
const FlowableBufferSize = constants.DefaultFlowableBufferLen

// CurrentWindowMetricsObservable streams repo's window metrics.
func CurrentWindowMetricsObservable(repo layout.WindowInfoRepository) rxgo.Observable {
	return Observable(repo.CurrentWindowMetrics)
}

// CurrentWindowMetricsFlowable streams repo's window metrics with a bounded buffer.
func CurrentWindowMetricsFlowable(repo layout.WindowInfoRepository) rxgo.Observable {
	return Flowable(repo.CurrentWindowMetrics)
}

// WindowLayoutInfoObservable streams repo's layout info.
func WindowLayoutInfoObservable(repo layout.WindowInfoRepository) rxgo.Observable {
	return Observable(repo.WindowLayoutInfo)
}

// WindowLayoutInfoFlowable streams repo's layout info with a bounded buffer.
func WindowLayoutInfoFlowable(repo layout.WindowInfoRepository) rxgo.Observable {
	return Flowable(repo.WindowLayoutInfo)
}

// Observable turns a channel-producing source into a cold observable.
func Observable[T any](source func(ctx context.Context) <-chan T, opts ...rxgo.Option) rxgo.Observable {
	return rxgo.Defer([]rxgo.Producer{forward(source)}, opts...)
}

// Flowable is Observable with a buffer of FlowableBufferSize values and a
// blocking backpressure strategy.
func Flowable[T any](source func(ctx context.Context) <-chan T, opts ...rxgo.Option) rxgo.Observable {
	opts = append([]rxgo.Option{
		rxgo.WithBufferedChannel(FlowableBufferSize),
		rxgo.WithBackPressureStrategy(rxgo.Block),
	}, opts...)
	return rxgo.Defer([]rxgo.Producer{forward(source)}, opts...)
}

func forward[T any](source func(ctx context.Context) <-chan T) rxgo.Producer {
	return func(ctx context.Context, next chan<- rxgo.Item) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		values := source(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-values:
				if !ok {
					return
				}
				if !rxgo.Of(v).SendContext(ctx, next) {
					return
				}
			}
		}
	}
}
