package passwordhasher

import (
	"fmt"
	"fullauth/internal/core/domain/user"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

var testParams = Params{MemoryKiB: 1024, Iterations: 1, Parallelism: 1}

func TestPasswordValid(t *testing.T) {
	type testcase struct {
		ix       int
		secret   string
		params   Params
		password string
	}
	cases := []testcase{
		{ix: 1, secret: "test", params: testParams, password: "test"},
		{ix: 2, secret: "", params: testParams, password: ""},
		{ix: 3, secret: "a", params: Params{MemoryKiB: 2048, Iterations: 2, Parallelism: 2}, password: "password password"},
		{ix: 4, secret: "   b   ", params: testParams, password: "   test   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewArgon2id(c.secret, c.params)
			hash, err := h.HashPassword(user.RawPassword(c.password))
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.password, err)
			}
			if hash == user.PasswordHash("") {
				t.Fatal("hash must not be empty")
			}
			if !strings.HasPrefix(string(hash), "$argon2id$v=19$") {
				t.Fatalf("unexpected hash format: %v", string(hash))
			}
			if !h.ValidatePassword(user.RawPassword(c.password), hash) {
				t.Fatalf("password check failed: %v", c.password)
			}
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type testcase struct {
		ix              int
		secretToHash    string
		secretToCheck   string
		passwordToHash  string
		passwordToCheck string
	}
	cases := []testcase{
		{ix: 1, secretToHash: "test", secretToCheck: "test", passwordToHash: "test", passwordToCheck: "test "},
		{ix: 2, secretToHash: "test", secretToCheck: "test ", passwordToHash: "test", passwordToCheck: "test"},
		{ix: 3, secretToHash: "", secretToCheck: "", passwordToHash: "", passwordToCheck: " "},
		{ix: 4, secretToHash: "", secretToCheck: " ", passwordToHash: "", passwordToCheck: ""},
		{ix: 5, secretToHash: "a", secretToCheck: "a", passwordToHash: "password password", passwordToCheck: " password password"},
		{ix: 6, secretToHash: "   b   ", secretToCheck: "   b   ", passwordToHash: "   test   ", passwordToCheck: "   tost   "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewArgon2id(c.secretToHash, testParams)
			hash, err := h.HashPassword(user.RawPassword(c.passwordToHash))
			if err != nil {
				t.Fatalf("could not hash password: %v, %v", c.passwordToHash, err)
			}

			h = NewArgon2id(c.secretToCheck, testParams)
			if h.ValidatePassword(user.RawPassword(c.passwordToCheck), hash) {
				t.Fatalf("password check passed: %v, %v", c.passwordToHash, c.passwordToCheck)
			}
		})
	}
}

func TestSamePasswordGetsDifferentHashes(t *testing.T) {
	h := NewArgon2id("", testParams)
	first, err := h.HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("hashes must be salted")
	}
}

func TestParamsAreReadFromHash(t *testing.T) {
	hash, err := NewArgon2id("", Params{MemoryKiB: 2048, Iterations: 2, Parallelism: 1}).HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if !NewArgon2id("", testParams).ValidatePassword("password", hash) {
		t.Fatal("hash created with other params must validate")
	}
}

func TestLegacyBcryptHash(t *testing.T) {
	bcryptHash, err := bcrypt.GenerateFromPassword([]byte("password"+"secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h := NewArgon2id("secret", testParams)
	if !h.ValidatePassword("password", user.PasswordHash(bcryptHash)) {
		t.Fatal("bcrypt hash must validate")
	}
	if h.ValidatePassword("other", user.PasswordHash(bcryptHash)) {
		t.Fatal("bcrypt hash must not validate other password")
	}
}

func TestMalformedHash(t *testing.T) {
	h := NewArgon2id("", testParams)
	for ix, hash := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
	} {
		t.Run(fmt.Sprint(ix), func(t *testing.T) {
			if h.ValidatePassword("password", user.PasswordHash(hash)) {
				t.Fatalf("malformed hash validated: %v", hash)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	h := NewArgon2id("secret", DefaultParams)
	hash, err := h.HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(hash), "$argon2id$v=19$m=65536,t=3,p=4$") {
		t.Fatalf("unexpected hash params: %v", string(hash))
	}
	if !h.ValidatePassword("password", hash) {
		t.Fatal("password check failed")
	}
}
