package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"peridot-shell/pkg/core"
)

// Oracle answers whether a valid session is currently established.
type Oracle interface {
	IsLoggedIn() bool
}

// Static is an Oracle with a fixed answer.
type Static bool

func (s Static) IsLoggedIn() bool {
	return bool(s)
}

// Record is the session file written by the login flow.
type Record struct {
	Principal string    `json:"principal"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the record names a principal and has not expired. A
// zero ExpiresAt never expires.
func (r Record) Valid(now time.Time) bool {
	if r.Principal == "" {
		return false
	}
	return r.ExpiresAt.IsZero() || now.Before(r.ExpiresAt)
}

// FileOracle reads the session record from disk on every call. Missing or
// unreadable files mean "not logged in".
type FileOracle struct {
	path string
	now  func() time.Time
	log  core.Logger
}

func NewFileOracle(path string, log core.Logger) *FileOracle {
	return &FileOracle{path: path, now: time.Now, log: log}
}

func (o *FileOracle) IsLoggedIn() bool {
	data, err := os.ReadFile(o.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			o.log.Warn("Cannot read session file", "path", o.path, "error", err.Error())
		} else {
			o.log.Debug("No session file", "path", o.path)
		}
		return false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		o.log.Warn("Malformed session file", "path", o.path, "error", err.Error())
		return false
	}

	valid := rec.Valid(o.now())
	o.log.Debug("Session file read", "path", o.path, "valid", valid, "expires_at", rec.ExpiresAt)
	return valid
}
