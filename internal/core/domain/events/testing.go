package events

import (
	"context"
	"fmt"
	"sync"
)

type FakePublisher struct {
	Published   []PasswordResetCompleted
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (p *FakePublisher) PublishPasswordResetCompleted(ctx context.Context, event PasswordResetCompleted) error {
	if p.ReturnError {
		return fmt.Errorf("could not publish event for user %d", event.UserID)
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, event)
	return nil
}
