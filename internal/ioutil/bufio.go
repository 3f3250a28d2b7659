package ioutil

import (
	"bufio"
	"io"
)

const DefaultBufioSize = 64 * 1024 // 64KB

func WithBufferedReads(r io.Reader) *bufio.Reader {
	return bufio.NewReaderSize(r, DefaultBufioSize)
}
