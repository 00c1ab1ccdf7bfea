package sshconsole

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/ssh"
)

// AuthorizedKeys is the set of public keys allowed to open a remote
// console. The set is loaded once at startup and never mutated, so
// lookups need no locking.
type AuthorizedKeys struct {
	keys [][]byte
}

// LoadAuthorizedKeys reads an OpenSSH authorized_keys file. Blank
// lines and # comments are skipped; any other unparsable line fails
// the whole load. A file with no keys is an error, an enabled remote
// console nobody can reach is a misconfiguration.
func LoadAuthorizedKeys(path string) (*AuthorizedKeys, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("authorized keys path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read authorized keys: %w", err)
	}
	set := &AuthorizedKeys{}
	for i, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		key, _, _, _, err := ssh.ParseAuthorizedKey([]byte(trimmed))
		if err != nil {
			return nil, fmt.Errorf("authorized keys line %d: %w", i+1, err)
		}
		set.keys = append(set.keys, key.Marshal())
	}
	if len(set.keys) == 0 {
		return nil, fmt.Errorf("no keys in %s", path)
	}
	return set, nil
}

// Contains reports whether key is in the set.
func (a *AuthorizedKeys) Contains(key ssh.PublicKey) bool {
	if a == nil || key == nil {
		return false
	}
	marshaled := key.Marshal()
	for _, k := range a.keys {
		if bytes.Equal(k, marshaled) {
			return true
		}
	}
	return false
}

// Len returns the number of keys in the set.
func (a *AuthorizedKeys) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}
