package ioutil

import (
	"errors"
	"io"
)

func WithReaderCloser(r io.Reader, closers ...func() error) io.ReadCloser {
	return &readCloser{
		Reader:  r,
		closers: closers,
	}
}

// readCloser runs every closer in order and joins their errors.
type readCloser struct {
	io.Reader
	closers []func() error
}

var _ io.ReadCloser = (*readCloser)(nil)

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
