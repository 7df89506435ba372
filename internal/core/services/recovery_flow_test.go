package services_test

import (
	"context"
	c "fullauth/internal/core/domain/common"
	"fullauth/internal/core/domain/events"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/core/domain/mail"
	"fullauth/internal/core/domain/settings"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	resetpassword "fullauth/internal/core/services/reset_password"
	sendpasswordresettoken "fullauth/internal/core/services/send_password_reset_token"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var linkRe = regexp.MustCompile(`href="([^"]+)"`)

func TestRecoveryFlowScenario(t *testing.T) {
	assert := require.New(t)
	ctx := context.Background()
	now := time.Date(2020, 6, 6, 15, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	log := logging.NewFakeLogger()
	users := user.NewFakeUserRepository()
	users.Users = []user.User{{ID: 1, Email: c.Email("a@x.com"), PasswordHash: "initial", CreatedAt: now}}
	tokens := token.NewFakeRepository()
	sender := mail.NewFakeSender()
	hasher := user.NewFakePasswordHasher()

	requestReset := sendpasswordresettoken.New(
		log,
		users,
		tokens,
		token.NewFakeGenerator("T1"),
		sender,
		settings.NewFakeSource(map[settings.Key]string{settings.AllowedOrigin: "https://app.test"}),
		clock,
	)
	completeReset := resetpassword.New(log, users, tokens, hasher, events.NewNopPublisher(), clock)

	// Unknown email: no token, no email.
	_, err := requestReset.Run(ctx, sendpasswordresettoken.Input{Email: c.NewEmail("missing@x.com")})
	assert.ErrorIs(err, user.ErrUserDoesNotExist)
	assert.Len(tokens.Tokens, 0)
	assert.Equal(0, sender.SentCount())

	_, err = requestReset.Run(ctx, sendpasswordresettoken.Input{Email: c.NewEmail("A@X.com")})
	assert.Nil(err)
	assert.Equal(1, sender.SentCount())

	match := linkRe.FindStringSubmatch(sender.LastSent().HTMLBody)
	assert.Len(match, 2)
	link, err := url.Parse(match[1])
	assert.Nil(err)
	assert.Equal("/reset-password", link.Path)
	t1 := token.Value(link.Query().Get("token"))
	assert.Equal(token.Value("T1"), t1)

	now = now.Add(30 * time.Minute)
	_, err = completeReset.Run(ctx, resetpassword.Input{Token: t1, NewPassword: "NewPass1!"})
	assert.Nil(err)

	u, err := users.GetByEmail(ctx, c.Email("a@x.com"))
	assert.Nil(err)
	assert.True(hasher.ValidatePassword("NewPass1!", u.PasswordHash))
	_, err = tokens.GetByValue(ctx, t1, token.PurposePasswordReset)
	assert.ErrorIs(err, token.ErrTokenDoesNotExist)

	_, err = completeReset.Run(ctx, resetpassword.Input{Token: t1, NewPassword: "NewPass2!"})
	assert.ErrorIs(err, token.ErrTokenDoesNotExist)
	u, err = users.GetByEmail(ctx, c.Email("a@x.com"))
	assert.Nil(err)
	assert.True(hasher.ValidatePassword("NewPass1!", u.PasswordHash))
}
