// internal/service/detect_test.go
package service

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lastlogin/internal/config"
	"lastlogin/internal/repository/passwd"
	"lastlogin/internal/util"
)

// writeUtmpEntry writes one plausible 384-byte user-process entry.
func writeUtmpEntry(t *testing.T, path string) {
	t.Helper()
	b := make([]byte, 384)
	binary.NativeEndian.PutUint32(b[:4], 7) // user process
	copy(b[44:], "alice")
	binary.NativeEndian.PutUint32(b[340:344], 1000000000)
	require.NoError(t, os.WriteFile(path, b, 0o644))
}

func testResolver(t *testing.T) *passwd.Resolver {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passwd")
	require.NoError(t, os.WriteFile(path, []byte("alice:x:1000:1000::/home/alice:/bin/sh\n"), 0o644))
	return passwd.NewResolver(path)
}

func TestDetectSourcePrefersUtmp(t *testing.T) {
	dir := t.TempDir()
	utmpPath := filepath.Join(dir, "wtmp")
	writeUtmpEntry(t, utmpPath)
	lastlogPath := filepath.Join(dir, "lastlog")
	require.NoError(t, os.WriteFile(lastlogPath, nil, 0o644))

	cfg := config.Config{
		LastlogPath: lastlogPath,
		UtmpPaths:   utmpPath,
	}
	src, err := DetectSource(context.Background(), cfg, testResolver(t), nil)
	require.NoError(t, err)

	rec, err := src.LookupUID(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)
	assert.False(t, rec.NeverLoggedIn())
}

func TestDetectSourceFallsBackToLastlog(t *testing.T) {
	dir := t.TempDir()
	lastlogPath := filepath.Join(dir, "lastlog")
	require.NoError(t, os.WriteFile(lastlogPath, nil, 0o644))

	cfg := config.Config{
		LastlogPath: lastlogPath,
		UtmpPaths:   filepath.Join(dir, "no-such-utmp"),
	}
	src, err := DetectSource(context.Background(), cfg, testResolver(t), nil)
	require.NoError(t, err)

	_, err = src.LookupUID(context.Background(), 0)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestDetectSourceNoDatabase(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		LastlogPath: filepath.Join(dir, "no-such-lastlog"),
		UtmpPaths:   filepath.Join(dir, "no-such-utmp"),
	}
	_, err := DetectSource(context.Background(), cfg, testResolver(t), nil)
	assert.ErrorIs(t, err, util.ErrNoDatabase)
}

func TestDetectSourceUnknownLayout(t *testing.T) {
	cfg := config.Config{LastlogLayout: "nonsense"}
	_, err := DetectSource(context.Background(), cfg, testResolver(t), nil)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	assert.NotErrorIs(t, err, util.ErrNoDatabase)
}
