package bf

import (
	"context"
	"io"
)

type readResult struct {
	n   int
	err error
}

type contextReader struct {
	ctx     context.Context
	r       io.Reader
	buf     []byte
	results chan readResult
}

// NewContextReader returns a reader whose Read returns ctx.Err() as soon as
// ctx is done, even while the underlying Read is still blocked. A read that
// was abandoned this way keeps running in the background until r returns.
func NewContextReader(ctx context.Context, r io.Reader) io.Reader {
	return &contextReader{
		ctx:     ctx,
		r:       r,
		results: make(chan readResult, 1),
	}
}

func (r *contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	if len(r.buf) < len(p) {
		r.buf = make([]byte, len(p))
	}
	// once ctx is done buf is never touched again, so the background read
	// may keep writing into it
	buf := r.buf[:len(p)]
	go func() {
		n, err := r.r.Read(buf)
		r.results <- readResult{n, err}
	}()

	select {
	case <-r.ctx.Done():
		return 0, r.ctx.Err()
	case res := <-r.results:
		return copy(p, buf[:res.n]), res.err
	}
}
