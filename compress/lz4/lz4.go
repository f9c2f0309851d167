// Package lz4 implements the LZ4_RAW codec.
//
// Pages are encoded with the lz4 block format, without the frame header
// that the deprecated LZ4 codec wrapped around each page.
package lz4

import (
	"errors"

	"github.com/pierrec/lz4/v4"
	"github.com/pqmeta/pqmeta/format"
)

type Level int

const (
	Fastest Level = -1
	Fast    Level = 0
	Level1  Level = 1
	Level2  Level = 2
	Level3  Level = 3
	Level4  Level = 4
	Level5  Level = 5
	Level6  Level = 6
	Level7  Level = 7
	Level8  Level = 8
	Level9  Level = 9
)

const DefaultLevel = Fast

type Codec struct {
	Level Level
}

func (c *Codec) String() string {
	return "LZ4_RAW"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Lz4Raw
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	if bound := lz4.CompressBlockBound(len(src)); cap(dst) < bound {
		dst = make([]byte, bound)
	} else {
		dst = dst[:cap(dst)]
	}
	var n int
	var err error
	if c.Level <= Fast {
		var compressor lz4.Compressor
		n, err = compressor.CompressBlock(src, dst)
	} else {
		compressor := lz4.CompressorHC{Level: lz4.CompressionLevel(1 << (8 + c.Level))}
		n, err = compressor.CompressBlock(src, dst)
	}
	if err != nil {
		return dst[:0], err
	}
	return dst[:n], nil
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	// The block format does not record the decompressed size, so the output
	// buffer is grown until the block fits.
	if size := max(4*len(src), 64); cap(dst) < size {
		dst = make([]byte, size)
	} else {
		dst = dst[:cap(dst)]
	}
	for {
		n, err := lz4.UncompressBlock(src, dst)
		if err == nil {
			return dst[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return dst[:0], err
		}
		dst = make([]byte, 2*len(dst))
	}
}
