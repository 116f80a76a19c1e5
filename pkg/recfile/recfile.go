// pkg/recfile/recfile.go
package recfile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrShortRecord reports that the requested record lies at or beyond the
// end of the file, or is cut off by it. For sparse, append-only record
// files this is an expected state, not corruption.
var ErrShortRecord = errors.New("record out of range")

// File provides read-only access to a fixed-record-size binary file.
// Record i occupies exactly one record width starting at byte offset
// i * record size. The handle is safe for concurrent reads because every
// read is an independent positioned read.
type File struct {
	f    *os.File
	size int
}

// Open opens path for reading with the given record size.
func Open(path string, recordSize int) (*File, error) {
	if recordSize <= 0 {
		return nil, fmt.Errorf("invalid record size %d", recordSize)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	return &File{f: f, size: recordSize}, nil
}

// Count returns the number of complete records currently in the file.
// A trailing partial record is not counted.
func (f *File) Count() (uint64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat record file: %w", err)
	}
	return uint64(info.Size()) / uint64(f.size), nil
}

// ReadRecord reads the record at the given ordinal index. An index at or
// beyond the end of the file, or a short trailing read, yields
// ErrShortRecord; any other failure is returned with its cause wrapped.
func (f *File) ReadRecord(index uint64) ([]byte, error) {
	buf := make([]byte, f.size)
	if _, err := f.f.ReadAt(buf, int64(index)*int64(f.size)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrShortRecord
		}
		return nil, fmt.Errorf("failed to read record %d: %w", index, err)
	}
	return buf, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.f.Close()
}
