// Command raceread races two bounded reads against each other and
// reports which source finished first, then waits for the loser through
// the continuation.
package main

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/dogmatiq/ferrite"
	"github.com/dogmatiq/futurity"
	"github.com/dogmatiq/futurity/futureio"
	"github.com/dogmatiq/futurity/internal/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	debug = ferrite.
		Bool("FUTURITY_DEBUG", "enable human-readable debug logging").
		WithDefault(false).
		Required()

	readSize = ferrite.
		Signed[int]("FUTURITY_READ_SIZE", "the number of bytes each racing read must fill").
		WithDefault(32).
		Required()

	stall = ferrite.
		Duration("FUTURITY_STALL", "how long the slow source stalls before yielding bytes").
		WithDefault(150 * time.Millisecond).
		Required()
)

func main() {
	ferrite.Init()

	logger := logging.New(debug.Value())
	defer logger.Sync()

	size := readSize.Value()
	stop := make(chan struct{})
	defer close(stop)

	fast := futurity.Drive[futureio.ReadDone, error](
		futureio.NewReadExact(
			bytes.NewReader(payload(size)),
			make([]byte, size),
		),
		tick(time.Millisecond, stop),
	)

	slow := futurity.Drive[futureio.ReadDone, error](
		futureio.NewReadExact(
			&stallingReader{
				next:  bytes.NewReader(payload(size)),
				until: time.Now().Add(stall.Value()),
			},
			make([]byte, size),
		),
		tick(time.Millisecond, stop),
	)

	type raceResult = futurity.Result[
		futurity.RaceItem[futureio.ReadDone, error],
		futurity.RaceError[futureio.ReadDone, error],
	]

	winner := make(chan raceResult, 1)

	race := futurity.Select2[futureio.ReadDone, error](fast, slow)
	race.Schedule(func(res raceResult) {
		winner <- res
	})

	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		res := <-winner

		item, ok := res.Value()
		if !ok {
			if e, failed := res.Failure(); failed {
				logger.Error("winning read failed", zap.Error(e.Err))
				e.Next.Cancel()
				return e.Err
			}
			logger.Warn("race did not produce a value", zap.Stringer("kind", res.Kind()))
			return nil
		}

		logger.Info(
			"winning read completed",
			zap.Int("bytes", len(item.Value.Buf)),
		)

		loser := make(chan futurity.Result[futureio.ReadDone, error], 1)
		item.Next.Schedule(func(r futurity.Result[futureio.ReadDone, error]) {
			loser <- r
		})

		res2 := <-loser
		if done, ok := res2.Value(); ok {
			logger.Info(
				"losing read completed",
				zap.Int("bytes", len(done.Buf)),
			)
		} else {
			logger.Warn("losing read did not complete", zap.Stringer("kind", res2.Kind()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("race failed", zap.Error(err))
	}
}

// payload produces size bytes of deterministic content.
func payload(size int) []byte {
	p := make([]byte, size)
	for i := range p {
		p[i] = 'a' + byte(i%26)
	}
	return p
}

// stallingReader reports a would-block condition until its deadline
// passes, then defers to the underlying source.
type stallingReader struct {
	next  io.Reader
	until time.Time
}

func (r *stallingReader) Read(p []byte) (int, error) {
	if time.Now().Before(r.until) {
		return 0, futureio.ErrWouldBlock
	}
	return r.next.Read(p)
}

// tick returns a readiness channel that signals at the given interval
// until stop is closed.
func tick(interval time.Duration, stop <-chan struct{}) <-chan struct{} {
	ready := make(chan struct{})

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-stop:
				return
			case <-t.C:
			}

			select {
			case ready <- struct{}{}:
			case <-stop:
				return
			}
		}
	}()

	return ready
}
