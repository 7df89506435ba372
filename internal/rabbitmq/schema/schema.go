package schema

import (
	"encoding/json"
	"time"
)

const PasswordResetCompletedRoutingKey = "password.reset.completed"

type PasswordResetCompleted struct {
	UserID int64     `json:"userId"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

func (p *PasswordResetCompleted) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func (p *PasswordResetCompleted) Unmarshal(data []byte) error {
	return json.Unmarshal(data, p)
}
