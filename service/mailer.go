package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-mail/mail/v2"
)

// Receipt is what a reader is told when a borrowing is recorded.
type Receipt struct {
	ReaderName  string
	ReaderEmail string
	BookTitle   string
	BorrowDate  time.Time
	ReturnDate  *time.Time
}

func (r Receipt) Subject() string {
	return "Borrowing receipt: " + r.BookTitle
}

func (r Receipt) Body() string {
	var b strings.Builder
	name := r.ReaderName
	if name == "" {
		name = "reader"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "You borrowed %q on %s.\n", r.BookTitle, r.BorrowDate.Format("2006-01-02"))
	if r.ReturnDate != nil {
		fmt.Fprintf(&b, "Please return it by %s.\n", r.ReturnDate.Format("2006-01-02"))
	}
	b.WriteString("\nThe Library\n")
	return b.String()
}

// SMTPMailer sends receipts through an authenticated SMTP relay with
// mandatory STARTTLS.
type SMTPMailer struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	d := mail.NewDialer(host, port, username, password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.Timeout = 10 * time.Second
	if from == "" {
		from = username
	}
	return &SMTPMailer{dialer: d, from: from}
}

// NewReceiptMessage builds the message for r.
func NewReceiptMessage(from string, r Receipt) *mail.Message {
	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", r.ReaderEmail)
	m.SetHeader("Subject", r.Subject())
	m.SetBody("text/plain", r.Body())
	return m
}

func (s *SMTPMailer) SendReceipt(ctx context.Context, r Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(NewReceiptMessage(s.from, r)); err != nil {
		return fmt.Errorf("send receipt to %s: %w", r.ReaderEmail, err)
	}
	return nil
}
