package ioutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
)

// StdinPath selects standard input in OpenInput and ReadInput.
const StdinPath = "-"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Input is a fully read puzzle input.
type Input struct {
	Data []byte
	// Digest is the xxhash64 of the decompressed data.
	Digest     uint64
	Compressed bool
}

// OpenInput opens path (or stdin for "" and "-") for buffered reading.
// zstd streams are detected by their magic number and decompressed.
func OpenInput(path string, stdin io.Reader) (io.ReadCloser, bool, error) {
	var src io.Reader = stdin
	closers := []func() error{}
	if path != "" && path != StdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, false, fmt.Errorf("open input %s: %w", path, err)
		}
		src = f
		closers = append(closers, f.Close)
	}

	br := WithBufferedReads(src)
	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		closeAll(closers)
		return nil, false, fmt.Errorf("read input header: %w", err)
	}
	if !bytes.Equal(magic, zstdMagic) {
		return WithReaderCloser(br, closers...), false, nil
	}

	dec, err := zstd.NewReader(br)
	if err != nil {
		closeAll(closers)
		return nil, false, fmt.Errorf("zstd reader: %w", err)
	}
	closers = append([]func() error{func() error {
		dec.Close()
		return nil
	}}, closers...)
	return WithReaderCloser(WithBufferedReads(dec), closers...), true, nil
}

// ReadInput reads the whole input and fingerprints it.
func ReadInput(path string, stdin io.Reader) (Input, error) {
	rc, compressed, err := OpenInput(path, stdin)
	if err != nil {
		return Input{}, err
	}
	defer rc.Close()

	h := xxhash.New()
	data, err := io.ReadAll(io.TeeReader(rc, h))
	if err != nil {
		return Input{}, fmt.Errorf("read input: %w", err)
	}
	return Input{Data: data, Digest: h.Sum64(), Compressed: compressed}, nil
}

func closeAll(closers []func() error) {
	for _, c := range closers {
		_ = c()
	}
}
