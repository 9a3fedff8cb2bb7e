package blob

import (
	"io"
	"sync/atomic"
)

// progressReader reports the running byte count to its callback as the
// body is consumed by the uploader.
type progressReader struct {
	r           io.Reader
	transferred atomic.Int64
	report      func(transferred int64)
}

func newProgressReader(r io.Reader, report func(int64)) *progressReader {
	return &progressReader{r: r, report: report}
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		total := p.transferred.Add(int64(n))
		if p.report != nil {
			p.report(total)
		}
	}
	return n, err
}
