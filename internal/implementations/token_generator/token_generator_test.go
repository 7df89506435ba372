package tokengenerator

import (
	"fullauth/internal/core/domain/token"
	"testing"

	"github.com/google/uuid"
)

func TestTokenGenerator(t *testing.T) {
	generator := NewUUID()
	tokens := make(map[token.Value]struct{})
	for i := 0; i < 100; i++ {
		value := generator.GenerateToken()
		if string(value) == "" {
			t.Fatal("token must not be empty")
		}
		if _, ok := tokens[value]; ok {
			t.Fatalf("token %v already exists (%v)", value, tokens)
		}
		tokens[value] = struct{}{}
	}
}

func TestTokenIsRandomUUID(t *testing.T) {
	value := NewUUID().GenerateToken()
	parsed, err := uuid.Parse(string(value))
	if err != nil {
		t.Fatalf("token %v is not a UUID: %v", value, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("token %v is not a random UUID", value)
	}
}
