// Package brotli implements the BROTLI codec.
package brotli

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/pqmeta/pqmeta/compress"
	"github.com/pqmeta/pqmeta/format"
)

const (
	DefaultQuality = 0
	BestSpeed      = brotli.BestSpeed
	BestQuality    = brotli.BestCompression
)

type Codec struct {
	Quality int
	LGWin   int

	compressor   compress.Compressor
	decompressor compress.Decompressor
}

func (c *Codec) String() string {
	return "BROTLI"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Brotli
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.compressor.Encode(dst, src, func(w io.Writer) (compress.Writer, error) {
		return brotli.NewWriterOptions(w, brotli.WriterOptions{
			Quality: c.Quality,
			LGWin:   c.LGWin,
		}), nil
	})
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.decompressor.Decode(dst, src, func(r io.Reader) (compress.Reader, error) {
		return reader{brotli.NewReader(r)}, nil
	})
}

// reader gives brotli.Reader the Close method it lacks.
type reader struct {
	*brotli.Reader
}

func (reader) Close() error {
	return nil
}
