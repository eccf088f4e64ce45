package replay

import (
	"io"
)

// PageID identifies a logical page whose contents may be loaded into
// a frame of the page cache.
type PageID uint64

// OperationKind is the type of an operation against the page cache.
type OperationKind int

const (
	// OperationAccess reads a page, loading it into a frame if it
	// isn't present.
	OperationAccess OperationKind = iota
	// OperationDelete discards a page from the page cache.
	OperationDelete
)

func (k OperationKind) String() string {
	switch k {
	case OperationAccess:
		return "A"
	case OperationDelete:
		return "D"
	default:
		return "?"
	}
}

// Operation that is replayed against the page cache.
type Operation struct {
	Kind OperationKind
	Page PageID
}

// OperationSource yields a sequence of operations to replay. Next()
// returns io.EOF after the last operation.
type OperationSource interface {
	Next() (Operation, error)
}

type sliceOperationSource struct {
	operations []Operation
}

// NewSliceOperationSource creates an OperationSource that yields the
// operations stored in a slice.
func NewSliceOperationSource(operations []Operation) OperationSource {
	return &sliceOperationSource{
		operations: operations,
	}
}

func (s *sliceOperationSource) Next() (Operation, error) {
	if len(s.operations) == 0 {
		return Operation{}, io.EOF
	}
	operation := s.operations[0]
	s.operations = s.operations[1:]
	return operation, nil
}
