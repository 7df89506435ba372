package passwordhasher

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"fullauth/internal/core/domain/user"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	saltLength = 16
	keyLength  = 32
)

type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams match the defaults of the reference argon2 bindings, so hashes
// written by other services of the platform validate here.
var DefaultParams = Params{MemoryKiB: 64 * 1024, Iterations: 3, Parallelism: 4}

// Argon2id hashes passwords into PHC strings:
// $argon2id$v=19$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<key>
// Legacy bcrypt hashes are still accepted by ValidatePassword.
type Argon2id struct {
	secret string
	params Params
}

func NewArgon2id(secret string, params Params) *Argon2id {
	return &Argon2id{secret: secret, params: params}
}

func (h *Argon2id) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return hash, err
	}
	key := argon2.IDKey(
		[]byte(string(password)+h.secret),
		salt,
		h.params.Iterations,
		h.params.MemoryKiB,
		h.params.Parallelism,
		keyLength,
	)
	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return user.PasswordHash(encoded), nil
}

func (h *Argon2id) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	if strings.HasPrefix(string(hash), "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(string(password)+h.secret))
		return err == nil
	}

	params, salt, key, err := decodeHash(string(hash))
	if err != nil {
		return false
	}
	actualKey := argon2.IDKey(
		[]byte(string(password)+h.secret),
		salt,
		params.Iterations,
		params.MemoryKiB,
		params.Parallelism,
		uint32(len(key)),
	)
	return subtle.ConstantTimeCompare(key, actualKey) == 1
}

func decodeHash(hash string) (params Params, salt []byte, key []byte, err error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params, nil, nil, fmt.Errorf("invalid argon2id hash format")
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params, nil, nil, err
	}
	if version != argon2.Version {
		return params, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}
	if _, err := fmt.Sscanf(
		parts[3],
		"m=%d,t=%d,p=%d",
		&params.MemoryKiB,
		&params.Iterations,
		&params.Parallelism,
	); err != nil {
		return params, nil, nil, err
	}
	if params.Iterations == 0 || params.Parallelism == 0 {
		return params, nil, nil, fmt.Errorf("invalid argon2id parameters")
	}
	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params, nil, nil, err
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params, nil, nil, err
	}
	if len(key) == 0 {
		return params, nil, nil, fmt.Errorf("empty argon2id key")
	}
	return params, salt, key, nil
}
