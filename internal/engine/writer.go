package engine

import "io"

// limitedWriter forwards at most max bytes to w and silently discards the
// rest, so the engine never blocks or dies on a full pipe. A max of zero
// or less forwards everything.
type limitedWriter struct {
	w         io.Writer
	max       int64
	written   int64
	discarded int64
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.max > 0 {
		remaining := lw.max - lw.written
		if remaining <= 0 {
			lw.truncated = true
			lw.discarded += int64(n)
			return n, nil
		}
		if int64(n) > remaining {
			lw.truncated = true
			lw.discarded += int64(n) - remaining
			p = p[:remaining]
		}
	}

	written, err := lw.w.Write(p)
	lw.written += int64(written)
	if err != nil {
		return written, err
	}
	return n, nil
}
