// internal/repository/utmp/utmp.go
package utmp

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"

	"lastlogin/internal/domain"
	"lastlogin/internal/repository"
	"lastlogin/internal/util"
	"lastlogin/pkg/recfile"
)

// glibc struct utmp field widths, native byte order throughout.
const (
	typeWidth    = 4
	pidWidth     = 4
	lineWidth    = 32
	idWidth      = 4
	userWidth    = 32
	hostWidth    = 256
	exitWidth    = 4
	sessionWidth = 4
	secWidth     = 4
	usecWidth    = 4
	addrWidth    = 16
	unusedWidth  = 20

	// recordSize is 384 bytes.
	recordSize = typeWidth + pidWidth + lineWidth + idWidth + userWidth +
		hostWidth + exitWidth + sessionWidth + secWidth + usecWidth +
		addrWidth + unusedWidth

	lineOffset = typeWidth + pidWidth
	userOffset = lineOffset + lineWidth + idWidth
	hostOffset = userOffset + userWidth
	secOffset  = hostOffset + hostWidth + exitWidth + sessionWidth
)

// Record types from utmp(5). Only user processes describe logins.
const (
	emptyRecord = 0
	userProcess = 7
	maxType     = 10
)

// entry is one raw utmp record reduced to the fields the lookup needs.
type entry struct {
	rtype int32
	line  string
	user  string
	host  string
	sec   int32
}

func decodeEntry(b []byte) entry {
	return entry{
		rtype: int32(binary.NativeEndian.Uint32(b[:typeWidth])),
		line:  fieldString(b[lineOffset : lineOffset+lineWidth]),
		user:  fieldString(b[userOffset : userOffset+userWidth]),
		host:  fieldString(b[hostOffset : hostOffset+hostWidth]),
		sec:   int32(binary.NativeEndian.Uint32(b[secOffset : secOffset+secWidth])),
	}
}

func fieldString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func (e entry) record(uid uint32) *domain.Record {
	return &domain.Record{
		UID:       uid,
		Username:  e.user,
		Line:      e.line,
		Host:      e.host,
		LastLogin: domain.LoginTime(int64(e.sec)),
	}
}

// Source implements repository.LoginSource on top of a utmp/wtmp file.
// Unlike lastlog, utmp records carry usernames rather than uids and are
// ordered by time, so lookups scan the file newest-first and stop at the
// first entry matching the target account. The account database maps
// between uids and names.
type Source struct {
	path     string
	accounts repository.AccountResolver
}

// NewSource creates a utmp Source for the given file.
func NewSource(path string, accounts repository.AccountResolver) *Source {
	return &Source{path: path, accounts: accounts}
}

// scan reads entries newest-first, appending each to the result until
// stop returns true or the start of the file is reached.
func (s *Source) scan(ctx context.Context, stop func(entry) bool) ([]entry, error) {
	f, err := recfile.Open(s.path, recordSize)
	if err != nil {
		return nil, fmt.Errorf("utmp: %w", err)
	}
	defer f.Close()

	n, err := f.Count()
	if err != nil {
		return nil, fmt.Errorf("utmp: %w", err)
	}
	var entries []entry
	for i := n; i > 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := f.ReadRecord(i - 1)
		if err != nil {
			return nil, fmt.Errorf("utmp: %w", err)
		}
		e := decodeEntry(b)
		if e.rtype < emptyRecord || e.rtype > maxType {
			return nil, fmt.Errorf("utmp: malformed record %d", i-1)
		}
		entries = append(entries, e)
		if stop(e) {
			break
		}
	}
	return entries, nil
}

// LookupUID finds the most recent login entry for the given uid. An
// account present in the account database but absent from the file has
// simply never logged in and gets an empty record; a uid the account
// database cannot map yields util.ErrNotFound.
func (s *Source) LookupUID(ctx context.Context, uid uint32) (*domain.Record, error) {
	name, err := s.accounts.NameByUID(ctx, uid)
	if err != nil {
		if util.IsError(err, util.ErrUnknownUser) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	match := func(e entry) bool { return e.rtype == userProcess && e.user == name }
	entries, err := s.scan(ctx, match)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		if e := entries[len(entries)-1]; match(e) {
			return e.record(uid), nil
		}
	}
	return domain.NewRecord(uid, name), nil
}

// Accounts scans the whole file once, keeping the newest login entry per
// username, and joins the result against the supplied account list.
func (s *Source) Accounts(ctx context.Context, users []domain.User) ([]domain.Record, error) {
	entries, err := s.scan(ctx, func(entry) bool { return false })
	if err != nil {
		return nil, err
	}
	// Newest-first scan: the first entry seen for a user is the latest.
	latest := make(map[string]entry)
	for _, e := range entries {
		if e.rtype != userProcess {
			continue
		}
		if _, ok := latest[e.user]; !ok {
			latest[e.user] = e
		}
	}
	records := make([]domain.Record, 0, len(users))
	for _, u := range users {
		if e, ok := latest[u.Name]; ok {
			records = append(records, *e.record(u.UID))
		} else {
			records = append(records, *domain.NewRecord(u.UID, u.Name))
		}
	}
	return records, nil
}

// Valid reports whether the file's newest record decodes as a plausible
// utmp entry. Used during source detection to tell a utmp file from an
// unrelated binary file at the same path.
func (s *Source) Valid(ctx context.Context) bool {
	f, err := recfile.Open(s.path, recordSize)
	if err != nil {
		return false
	}
	defer f.Close()

	n, err := f.Count()
	if err != nil || n == 0 {
		return false
	}
	b, err := f.ReadRecord(n - 1)
	if err != nil {
		return false
	}
	e := decodeEntry(b)
	return e.rtype >= emptyRecord && e.rtype <= maxType && e.sec != 0
}
