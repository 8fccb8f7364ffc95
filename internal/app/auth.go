package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/argon2"
)

const (
	DefaultAuthFile = "auth.secret"
	AuthFileEnv     = "AUTH_FILE"
	AuthRealm       = "Holiday Converter"
)

// ErrAuthFileExists is returned by CreateAuthFile when overwrite is not allowed
var ErrAuthFileExists = errors.New("auth file already exists")

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Authenticator guards handlers with Basic Auth. A nil Authenticator
// lets every request through.
type Authenticator struct {
	user string
	hash string
}

// AuthFilePath resolves the auth file location: $AUTH_FILE or auth.secret
// next to the binary
func AuthFilePath() (string, error) {
	if path := os.Getenv(AuthFileEnv); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

// LoadAuthenticator reads a username:hash file. A missing file disables
// authentication and returns nil without error.
func LoadAuthenticator(path string) (*Authenticator, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("file", path).Msg("no auth file found, converter API is unprotected")
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	user, hash, ok := strings.Cut(strings.TrimSpace(string(data)), ":")
	if !ok || user == "" {
		return nil, fmt.Errorf("invalid auth file format (expected: username:hash)")
	}
	log.Info().Str("user", user).Str("file", path).Msg("Basic Auth enabled")
	return &Authenticator{user: user, hash: hash}, nil
}

// User returns the configured username
func (a *Authenticator) User() string {
	if a == nil {
		return ""
	}
	return a.user
}

// RequireAuth wraps next with Basic Auth checking
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	if a == nil {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, a.hash)
			if err != nil {
				log.Error().Err(err).Msg("error verifying password")
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm="%s"`, AuthRealm))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			log.Warn().Str("remoteAddr", r.RemoteAddr).Str("user", user).Msg("failed auth attempt")
			return
		}
		next(w, r)
	}
}

// HashPassword creates an encoded Argon2id hash:
// $argon2id$v=19$m=65536,t=1,p=4$salt$hash
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

// VerifyPassword checks a password against an encoded Argon2id hash
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// CreateAuthFile writes username:hash to path as a read-only file
func CreateAuthFile(path, username, password string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrAuthFileExists, path)
		}
		// the file is 0400, so it has to go before rewriting
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := os.WriteFile(path, []byte(username+":"+hash+"\n"), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
