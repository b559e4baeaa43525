package worker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ccna35/simple-crud-app/internal/config"
	"github.com/ccna35/simple-crud-app/pkg/email"
	mock_email "github.com/ccna35/simple-crud-app/pkg/email/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func writeTestTemplate(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "verification.html")
	body := `<a href="{{.VerificationURL}}">Verify</a> within {{.ExpiryHours}} hours`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSendVerificationEmail(t *testing.T) {
	provider := new(mock_email.EmailSender)
	sender := newEmailSender(provider, config.EmailConfig{
		Enabled:   true,
		Templates: config.EmailTemplates{Verification: writeTestTemplate(t)},
	})

	var sent email.SendEmailInput
	provider.On("Send", mock.AnythingOfType("email.SendEmailInput")).
		Run(func(args mock.Arguments) {
			sent = args.Get(0).(email.SendEmailInput)
		}).
		Return(nil).Once()

	err := sender.SendVerificationEmail(context.Background(), "user@example.com", "http://localhost:8080/api/v1/auth/verify?token=abc", 24)
	require.NoError(t, err)

	assert.Equal(t, "user@example.com", sent.To)
	assert.Equal(t, "Verify Your Email Address", sent.Subject)
	assert.Contains(t, sent.Body, "http://localhost:8080/api/v1/auth/verify?token=abc")
	assert.Contains(t, sent.Body, "24 hours")
}

func TestSendVerificationEmailDisabled(t *testing.T) {
	provider := new(mock_email.EmailSender)
	sender := newEmailSender(provider, config.EmailConfig{Enabled: false})

	err := sender.SendVerificationEmail(context.Background(), "user@example.com", "http://localhost:8080/api/v1/auth/verify?token=abc", 24)
	require.NoError(t, err)
	provider.AssertNotCalled(t, "Send", mock.Anything)
}

func TestSendVerificationEmailMissingTemplate(t *testing.T) {
	provider := new(mock_email.EmailSender)
	sender := newEmailSender(provider, config.EmailConfig{
		Enabled:   true,
		Templates: config.EmailTemplates{Verification: filepath.Join(t.TempDir(), "missing.html")},
	})

	err := sender.SendVerificationEmail(context.Background(), "user@example.com", "http://localhost:8080", 24)
	require.Error(t, err)
	provider.AssertNotCalled(t, "Send", mock.Anything)
}
