package replay

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/buildbarn/bb-replacer/pkg/util"
	"github.com/klauspost/compress/zstd"

	"google.golang.org/grpc/codes"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// TraceFile is an OperationSource that reads a trace from a file.
// Files that are compressed using Zstandard are decompressed
// transparently.
type TraceFile struct {
	OperationSource

	file    *os.File
	decoder *zstd.Decoder
}

// OpenTraceFile opens a trace file. The caller must call Close() once
// the trace is no longer needed.
func OpenTraceFile(path string) (*TraceFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.StatusWrapfWithCode(err, codes.NotFound, "Failed to open trace file %#v", path)
	}

	r := bufio.NewReader(f)
	tf := &TraceFile{file: f}
	if magic, err := r.Peek(len(zstdMagic)); err == nil && bytes.Equal(magic, zstdMagic) {
		decoder, err := zstd.NewReader(r)
		if err != nil {
			f.Close()
			return nil, util.StatusWrapfWithCode(err, codes.InvalidArgument, "Failed to create Zstandard decoder for trace file %#v", path)
		}
		tf.decoder = decoder
		tf.OperationSource = NewTraceReader(decoder)
	} else {
		tf.OperationSource = NewTraceReader(r)
	}
	return tf, nil
}

// Close the trace file, releasing the decoder if the file is
// compressed.
func (tf *TraceFile) Close() error {
	if tf.decoder != nil {
		tf.decoder.Close()
	}
	return tf.file.Close()
}

var _ io.Closer = (*TraceFile)(nil)
