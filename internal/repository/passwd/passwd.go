// internal/repository/passwd/passwd.go
package passwd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lastlogin/internal/domain"
	"lastlogin/internal/util"
)

// Resolver implements repository.AccountResolver against a passwd-format
// account database. The file is re-read on every call, with no cached
// map, so results always reflect the current on-disk state.
type Resolver struct {
	path string
}

// NewResolver creates a Resolver for the given passwd file.
func NewResolver(path string) *Resolver {
	return &Resolver{path: path}
}

// Users parses every account entry in the database. Blank lines,
// comments and entries with an unparseable uid field are skipped.
func (r *Resolver) Users(ctx context.Context) ([]domain.User, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open account database: %w", err)
	}
	defer f.Close()

	var users []domain.User
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:passwd:uid:...
		parts := strings.SplitN(line, ":", 4)
		if len(parts) < 3 {
			continue
		}
		uid, err := strconv.ParseUint(parts[2], 10, 32)
		if err != nil {
			continue
		}
		users = append(users, domain.User{UID: uint32(uid), Name: parts[0]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account database: %w", err)
	}
	return users, nil
}

// UIDByName resolves a username to its numeric uid.
func (r *Resolver) UIDByName(ctx context.Context, name string) (uint32, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return 0, err
	}
	for _, u := range users {
		if u.Name == name {
			return u.UID, nil
		}
	}
	return 0, util.ErrUnknownUser
}

// NameByUID resolves a uid to its username.
func (r *Resolver) NameByUID(ctx context.Context, uid uint32) (string, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if u.UID == uid {
			return u.Name, nil
		}
	}
	return "", util.ErrUnknownUser
}
