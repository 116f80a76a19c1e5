// internal/repository/lastlog/lastlog.go
package lastlog

import (
	"context"
	"fmt"
	"sort"

	"lastlogin/internal/domain"
	"lastlogin/internal/util"
	"lastlogin/pkg/recfile"
)

// Source implements repository.LoginSource on top of a lastlog database
// file. The file is indexed by uid: record i starts at byte offset
// i * record size. Every lookup opens its own handle, performs one
// positioned read and closes it, so concurrent lookups need no
// coordination and always see the current on-disk state.
type Source struct {
	path   string
	layout Layout
}

// NewSource creates a lastlog Source for the given file and layout.
func NewSource(path string, layout Layout) *Source {
	return &Source{path: path, layout: layout}
}

// LookupUID reads the record stored at offset uid * record size.
// A uid at or beyond the end of the file yields util.ErrNotFound: the
// database is sparse by uid, and an absent record is a normal state.
func (s *Source) LookupUID(ctx context.Context, uid uint32) (*domain.Record, error) {
	f, err := recfile.Open(s.path, s.layout.RecordSize())
	if err != nil {
		return nil, fmt.Errorf("lastlog: %w", err)
	}
	defer f.Close()
	return s.readUID(ctx, f, uid)
}

func (s *Source) readUID(ctx context.Context, f *recfile.File, uid uint32) (*domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := f.ReadRecord(uint64(uid))
	if err != nil {
		if util.IsError(err, recfile.ErrShortRecord) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("lastlog: %w", err)
	}
	rec := decode(s.layout, b)
	rec.UID = uid
	return rec, nil
}

// Accounts reads one record per supplied account over a single handle,
// uid-sorted so the file is traversed without backtracking. Accounts
// whose uid lies past the end of the file get a never-logged-in record.
func (s *Source) Accounts(ctx context.Context, users []domain.User) ([]domain.Record, error) {
	f, err := recfile.Open(s.path, s.layout.RecordSize())
	if err != nil {
		return nil, fmt.Errorf("lastlog: %w", err)
	}
	defer f.Close()

	sorted := make([]domain.User, len(users))
	copy(sorted, users)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UID < sorted[j].UID })

	records := make([]domain.Record, 0, len(sorted))
	for _, u := range sorted {
		rec, err := s.readUID(ctx, f, u.UID)
		if err != nil {
			if !util.IsError(err, util.ErrNotFound) {
				return nil, err
			}
			rec = domain.NewRecord(u.UID, u.Name)
		}
		rec.Username = u.Name
		records = append(records, *rec)
	}
	return records, nil
}

// Valid reports whether the backing file is usable as a lastlog
// database. Any readable file qualifies: every well-sized byte pattern
// decodes, and an empty file is simply a database with no records yet.
func (s *Source) Valid(ctx context.Context) bool {
	f, err := recfile.Open(s.path, s.layout.RecordSize())
	if err != nil {
		return false
	}
	f.Close()
	return true
}
