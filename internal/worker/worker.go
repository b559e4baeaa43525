package worker

import (
	"context"

	"github.com/ccna35/simple-crud-app/internal/config"
	emailProvider "github.com/ccna35/simple-crud-app/pkg/email"
)

type Workers struct {
	EmailSender EmailSender
}

type Deps struct {
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, verificationURL string, expiryHours int) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		EmailSender: newEmailSender(deps.EmailProvider, deps.Config.Email),
	}
}
