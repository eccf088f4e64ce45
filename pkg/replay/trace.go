package replay

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type traceReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewTraceReader creates an OperationSource that parses a trace of
// page cache operations. Traces contain one operation per line,
// having one of the following forms:
//
//	A <page>
//	D <page>
//
// where "A" denotes an access and "D" a deletion. Empty lines and
// lines starting with "#" are ignored.
func NewTraceReader(r io.Reader) OperationSource {
	return &traceReader{
		scanner: bufio.NewScanner(r),
	}
}

func (tr *traceReader) Next() (Operation, error) {
	for tr.scanner.Scan() {
		tr.line++
		fields := strings.Fields(tr.scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return Operation{}, status.Errorf(codes.InvalidArgument, "Line %d: Expected 2 fields, while %d were provided", tr.line, len(fields))
		}

		var kind OperationKind
		switch fields[0] {
		case "A":
			kind = OperationAccess
		case "D":
			kind = OperationDelete
		default:
			return Operation{}, status.Errorf(codes.InvalidArgument, "Line %d: Unknown operation %#v", tr.line, fields[0])
		}
		page, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return Operation{}, status.Errorf(codes.InvalidArgument, "Line %d: Invalid page %#v", tr.line, fields[1])
		}
		return Operation{Kind: kind, Page: PageID(page)}, nil
	}
	if err := tr.scanner.Err(); err != nil {
		return Operation{}, status.Errorf(codes.Unavailable, "Failed to read trace: %s", err)
	}
	return Operation{}, io.EOF
}
