// internal/repository/utmp/utmp_test.go
package utmp

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastlogin/internal/domain"
	"lastlogin/internal/util"
)

// staticAccounts is a fixed in-memory account database for tests.
type staticAccounts struct {
	users []domain.User
}

func (s staticAccounts) UIDByName(ctx context.Context, name string) (uint32, error) {
	for _, u := range s.users {
		if u.Name == name {
			return u.UID, nil
		}
	}
	return 0, util.ErrUnknownUser
}

func (s staticAccounts) NameByUID(ctx context.Context, uid uint32) (string, error) {
	for _, u := range s.users {
		if u.UID == uid {
			return u.Name, nil
		}
	}
	return "", util.ErrUnknownUser
}

func (s staticAccounts) Users(ctx context.Context) ([]domain.User, error) {
	return s.users, nil
}

func buildEntry(t *testing.T, rtype int32, user, line, host string, sec int32) []byte {
	t.Helper()
	b := make([]byte, recordSize)
	binary.NativeEndian.PutUint32(b[:typeWidth], uint32(rtype))
	copy(b[lineOffset:lineOffset+lineWidth], line)
	copy(b[userOffset:userOffset+userWidth], user)
	copy(b[hostOffset:hostOffset+hostWidth], host)
	binary.NativeEndian.PutUint32(b[secOffset:secOffset+secWidth], uint32(sec))
	return b
}

func writeDB(t *testing.T, entries ...[]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wtmp")
	require.NoError(t, os.WriteFile(path, bytes.Join(entries, nil), 0o644))
	return path
}

var accounts = staticAccounts{users: []domain.User{
	{UID: 0, Name: "root"},
	{UID: 1000, Name: "alice"},
	{UID: 1001, Name: "bob"},
}}

func TestLookupUIDNewestEntryWins(t *testing.T) {
	path := writeDB(t,
		buildEntry(t, userProcess, "alice", "tty1", "old-host", 1000000000),
		buildEntry(t, 2, "reboot", "~", "", 1100000000), // boot record, not a login
		buildEntry(t, userProcess, "alice", "pts/0", "new-host", 1200000000),
	)
	s := NewSource(path, accounts)

	rec, err := s.LookupUID(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.Equal(t, "new-host", rec.Host)
	assert.Equal(t, "pts/0", rec.Line)
	assert.Equal(t, time.Unix(1200000000, 0), rec.LastLogin)
}

func TestLookupUIDNeverLoggedIn(t *testing.T) {
	path := writeDB(t, buildEntry(t, userProcess, "alice", "tty1", "host", 1000000000))
	s := NewSource(path, accounts)

	rec, err := s.LookupUID(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, "bob", rec.Username)
	assert.True(t, rec.NeverLoggedIn())
}

func TestLookupUIDUnknownUID(t *testing.T) {
	path := writeDB(t, buildEntry(t, userProcess, "alice", "tty1", "host", 1000000000))
	s := NewSource(path, accounts)

	_, err := s.LookupUID(context.Background(), 4242)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestAccounts(t *testing.T) {
	path := writeDB(t,
		buildEntry(t, userProcess, "root", "tty1", "", 900000000),
		buildEntry(t, userProcess, "alice", "pts/1", "a1", 1000000000),
		buildEntry(t, userProcess, "alice", "pts/2", "a2", 1300000000),
	)
	s := NewSource(path, accounts)

	records, err := s.Accounts(context.Background(), accounts.users)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byName := map[string]domain.Record{}
	for _, r := range records {
		byName[r.Username] = r
	}
	assert.Equal(t, "a2", byName["alice"].Host)
	assert.Equal(t, time.Unix(1300000000, 0), byName["alice"].LastLogin)
	assert.Equal(t, time.Unix(900000000, 0), byName["root"].LastLogin)
	bob := byName["bob"]
	assert.True(t, bob.NeverLoggedIn())
}

func TestScanMalformedRecord(t *testing.T) {
	bad := make([]byte, recordSize)
	binary.NativeEndian.PutUint32(bad[:typeWidth], uint32(99))
	path := writeDB(t, bad)
	s := NewSource(path, accounts)

	_, err := s.LookupUID(context.Background(), 1000)
	require.Error(t, err)
	assert.NotErrorIs(t, err, util.ErrNotFound)
}

func TestValid(t *testing.T) {
	good := writeDB(t, buildEntry(t, userProcess, "alice", "tty1", "host", 1000000000))
	assert.True(t, NewSource(good, accounts).Valid(context.Background()))

	empty := writeDB(t)
	assert.False(t, NewSource(empty, accounts).Valid(context.Background()))

	garbage := writeDB(t, bytes.Repeat([]byte{0xFF}, recordSize))
	assert.False(t, NewSource(garbage, accounts).Valid(context.Background()))

	missing := filepath.Join(t.TempDir(), "absent")
	assert.False(t, NewSource(missing, accounts).Valid(context.Background()))
}
