package token

import (
	"context"
	"fmt"
	c "fullauth/internal/core/domain/common"
	"sync"
)

type FakeGenerator struct {
	Tokens []Value
	ix     int
	lock   sync.Mutex
}

// NewFakeGenerator returns a generator that yields the given values in order,
// and then "token-N" values.
func NewFakeGenerator(tokens ...string) *FakeGenerator {
	values := make([]Value, 0, len(tokens))
	for _, t := range tokens {
		values = append(values, Value(t))
	}
	return &FakeGenerator{Tokens: values}
}

func (g *FakeGenerator) GenerateToken() Value {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.ix++
	if g.ix <= len(g.Tokens) {
		return g.Tokens[g.ix-1]
	}
	return Value(fmt.Sprintf("token-%d", g.ix))
}

type FakeRepository struct {
	Tokens            []Token
	ReturnError       bool
	ReturnDeleteError bool
	lock              sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Tokens: make([]Token, 0, 10)}
}

func (r *FakeRepository) GetByValue(ctx context.Context, value Value, purpose Purpose) (t Token, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Value == value && t.Purpose == purpose {
			return t, nil
		}
	}
	return t, ErrTokenDoesNotExist
}

func (r *FakeRepository) GetByEmail(ctx context.Context, email c.Email, purpose Purpose) (t Token, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not get token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, t := range r.Tokens {
		if t.Email == email && t.Purpose == purpose {
			return t, nil
		}
	}
	return t, ErrTokenDoesNotExist
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (t Token, err error) {
	if r.ReturnError {
		return t, fmt.Errorf("could not create token %v", input.Email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, t := range r.Tokens {
		if t.Value == input.Value {
			return t, ErrTokenAlreadyExists
		}
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	t = Token{
		ID:        maxID + 1,
		Value:     input.Value,
		Email:     input.Email,
		Purpose:   input.Purpose,
		ExpiresAt: input.ExpiresAt,
	}
	r.Tokens = append(r.Tokens, t)
	return t, nil
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnDeleteError {
		return fmt.Errorf("could not delete token %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, t := range r.Tokens {
		if t.ID == id {
			r.Tokens = append(r.Tokens[:ix], r.Tokens[ix+1:]...)
			return nil
		}
	}
	return ErrTokenDoesNotExist
}

// CountByEmail returns the number of stored tokens for email and purpose.
func (r *FakeRepository) CountByEmail(email c.Email, purpose Purpose) int {
	r.lock.Lock()
	defer r.lock.Unlock()
	count := 0
	for _, t := range r.Tokens {
		if t.Email == email && t.Purpose == purpose {
			count++
		}
	}
	return count
}
