package downloader

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/brogergvhs/chapterdl/internal/providers"
	"github.com/brogergvhs/chapterdl/internal/util"

	"golang.org/x/sync/errgroup"
)

// EffectiveWorkers clamps the requested worker count into
// [1, min(MaxWorkers, n)].
func EffectiveWorkers(requested, n int) int {
	limit := min(MaxWorkers, n)
	if requested > limit {
		requested = limit
	}

	return max(1, requested)
}

// runPool starts the workers, feeds them every descriptor and waits for all
// of them to exit. Each worker builds its own client, so connections are
// reused within a worker only. Every descriptor yields exactly one value on
// out, which must have room for len(descs) results. Once ctx is done the
// remaining descriptors are failed without being queued, and the context
// error is returned.
func (d *Downloader) runPool(ctx context.Context, descs []providers.Descriptor, workers int, out chan<- Result) error {
	jobs := make(chan providers.Descriptor)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			client := d.newClient()
			defer util.CloseIdle(client)

			for desc := range jobs {
				out <- d.fetchOne(gctx, client, desc)
			}

			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)

		for i, desc := range descs {
			select {
			case jobs <- desc:
			case <-gctx.Done():
				for _, rest := range descs[i:] {
					out <- Result{Index: rest.Index, URL: rest.URL(), Err: gctx.Err()}
				}
				return gctx.Err()
			}
		}

		return nil
	})

	return g.Wait()
}

func readBody(r io.Reader, limit int64) ([]byte, error) {
	var buf bytes.Buffer

	n, err := buf.ReadFrom(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, fmt.Errorf("image larger than %s", util.Human(limit))
	}

	return buf.Bytes(), nil
}
