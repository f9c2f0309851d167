// Package compress provides the compression codecs applied to parquet column
// chunk pages.
//
// Codecs expose a block-oriented Encode/Decode interface; the Compressor and
// Decompressor helpers adapt stream-oriented compression libraries to it
// while keeping steady-state allocations at zero through pooling.
package compress

import (
	"bytes"
	"io"

	"github.com/pqmeta/pqmeta/format"
	"github.com/pqmeta/pqmeta/internal/memory"
)

// Codec is the interface implemented by the compression codec subpackages.
type Codec interface {
	// String returns a human-readable name for the codec.
	String() string
	// CompressionCodec returns the format identifier stored in column chunk
	// metadata for pages compressed with this codec.
	CompressionCodec() format.CompressionCodec
	// Encode appends the compressed form of src to dst[:0] and returns it.
	Encode(dst, src []byte) ([]byte, error)
	// Decode appends the decompressed form of src to dst[:0] and returns it.
	Decode(dst, src []byte) ([]byte, error)
}

// Reader is the decompression side of stream-oriented codecs.
type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

// Writer is the compression side of stream-oriented codecs.
type Writer interface {
	io.WriteCloser
	Reset(io.Writer)
}

type writer struct {
	output output
	writer Writer
}

// output collects compressed bytes into a caller-provided slice.
type output struct {
	data []byte
}

func (o *output) Write(p []byte) (int, error) {
	o.data = append(o.data, p...)
	return len(p), nil
}

// Compressor adapts a stream Writer constructor to the block Encode
// interface, pooling writers across calls.
type Compressor struct {
	writers memory.Pool[writer]
}

// Encode compresses src into dst[:0] using a writer obtained from newWriter
// (or a pooled one from a previous call).
func (c *Compressor) Encode(dst, src []byte, newWriter func(io.Writer) (Writer, error)) ([]byte, error) {
	w := c.writers.Get(
		func() *writer { return new(writer) },
		func(*writer) {},
	)
	defer c.writers.Put(w)

	w.output.data = dst[:0]
	if w.writer == nil {
		z, err := newWriter(&w.output)
		if err != nil {
			return dst, err
		}
		w.writer = z
	} else {
		w.writer.Reset(&w.output)
	}

	if _, err := w.writer.Write(src); err != nil {
		return w.output.data, err
	}
	if err := w.writer.Close(); err != nil {
		return w.output.data, err
	}
	return w.output.data, nil
}

type reader struct {
	input  bytes.Reader
	reader Reader
}

// Decompressor adapts a stream Reader constructor to the block Decode
// interface, pooling readers across calls.
type Decompressor struct {
	readers memory.Pool[reader]
}

// Decode decompresses src into dst[:0] using a reader obtained from
// newReader (or a pooled one from a previous call).
func (d *Decompressor) Decode(dst, src []byte, newReader func(io.Reader) (Reader, error)) ([]byte, error) {
	r := d.readers.Get(
		func() *reader { return new(reader) },
		func(*reader) {},
	)
	defer d.readers.Put(r)

	r.input.Reset(src)
	if r.reader == nil {
		z, err := newReader(&r.input)
		if err != nil {
			return dst, err
		}
		r.reader = z
	} else if err := r.reader.Reset(&r.input); err != nil {
		return dst, err
	}

	dst = dst[:0]
	for {
		if len(dst) == cap(dst) {
			if cap(dst) == 0 {
				dst = make([]byte, 0, 2*len(src)+64)
			} else {
				grown := make([]byte, len(dst), 2*cap(dst))
				copy(grown, dst)
				dst = grown
			}
		}
		n, err := r.reader.Read(dst[len(dst):cap(dst)])
		dst = dst[:len(dst)+n]
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
	}
}
