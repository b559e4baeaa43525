package worker

import (
	"context"
	"fmt"

	"github.com/ccna35/simple-crud-app/internal/config"
	emailProvider "github.com/ccna35/simple-crud-app/pkg/email"
)

type emailSender struct {
	sender emailProvider.Sender
	config config.EmailConfig
}

func newEmailSender(
	sender emailProvider.Sender,
	config config.EmailConfig,
) *emailSender {
	return &emailSender{
		sender: sender,
		config: config,
	}
}

type verificationEmailInput struct {
	VerificationURL string
	ExpiryHours     int
}

func (s *emailSender) SendVerificationEmail(ctx context.Context, email string, verificationURL string, expiryHours int) error {
	if !s.config.Enabled {
		return nil
	}

	subject := "Verify Your Email Address"

	templateInput := verificationEmailInput{verificationURL, expiryHours}
	sendInput := emailProvider.SendEmailInput{Subject: subject, To: email}

	if err := sendInput.GenerateBodyFromHTML(s.config.Templates.Verification, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := s.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
