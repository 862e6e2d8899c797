package backup

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz/lzma"
)

// Ext returns the filename extension for the compression type.
func (c Compression) Ext() string {
	switch c {
	case CompressionGZip:
		return ".gz"
	case CompressionLZ4:
		return ".lz4"
	case CompressionLZMA:
		return ".lzma"
	default:
		return ""
	}
}

// compressionForPath infers the compression type from a snapshot's
// extension.
func compressionForPath(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressionGZip
	case strings.HasSuffix(path, ".lz4"):
		return CompressionLZ4
	case strings.HasSuffix(path, ".lzma"):
		return CompressionLZMA
	default:
		return CompressionNone
	}
}

// nopWriteCloser adapts a plain writer for the uncompressed path.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// newCompressWriter wraps dst in the compression type's stream writer.
func newCompressWriter(dst io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{dst}, nil
	case CompressionGZip:
		return gzip.NewWriter(dst), nil
	case CompressionLZ4:
		return lz4.NewWriter(dst), nil
	case CompressionLZMA:
		w, err := lzma.NewWriter(dst)
		if err != nil {
			return nil, fmt.Errorf("lzma writer: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown compression type %q", c)
	}
}

// newDecompressReader wraps src in the compression type's stream reader.
func newDecompressReader(src io.Reader, c Compression) (io.Reader, error) {
	switch c {
	case CompressionNone:
		return src, nil
	case CompressionGZip:
		return gzip.NewReader(src)
	case CompressionLZ4:
		return lz4.NewReader(src), nil
	case CompressionLZMA:
		r, err := lzma.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("lzma reader: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown compression type %q", c)
	}
}
