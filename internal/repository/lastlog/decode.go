// internal/repository/lastlog/decode.go
package lastlog

import (
	"bytes"
	"encoding/binary"

	"lastlogin/internal/domain"
)

// decode interprets one record-sized block according to the layout.
// Decoding is total: every well-sized byte pattern is a structurally
// valid record. The caller guarantees len(b) == l.RecordSize(). The uid
// is not part of the block and is left for the caller to attach.
func decode(l Layout, b []byte) *domain.Record {
	var sec int64
	switch l.TimeWidth {
	case 8:
		sec = int64(binary.NativeEndian.Uint64(b[:8]))
	default:
		sec = int64(int32(binary.NativeEndian.Uint32(b[:4])))
	}
	line := b[l.TimeWidth : l.TimeWidth+l.LineWidth]
	host := b[l.TimeWidth+l.LineWidth:]
	return &domain.Record{
		Line:      fieldString(line),
		Host:      fieldString(host),
		LastLogin: domain.LoginTime(sec),
	}
}

// fieldString extracts a NUL-padded fixed-width text field: the bytes up
// to the first NUL are the value. A field with no NUL anywhere is taken
// whole; that is a valid, if unusual, on-disk state.
func fieldString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
