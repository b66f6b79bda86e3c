// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	CC       []string
	BCC      []string
	Subject  string
	Body     string
	HTMLBody string
}

// RSVPConfirmationData holds data for RSVP confirmation emails
type RSVPConfirmationData struct {
	MemberName        string
	EventName         string
	EventDate         string
	VenueName         string
	PassNumberPreview string
	PaymentURL        string
	Amount            string
}

// DeclineData holds data for decline acknowledgement emails
type DeclineData struct {
	MemberName string
	EventName  string
}

// PaymentInstructionsData holds data for payment instruction emails
type PaymentInstructionsData struct {
	MemberName   string
	Amount       string
	ContactEmail string
	PaymentURL   string
}

// PaymentVerifiedData holds data for payment verified emails
type PaymentVerifiedData struct {
	MemberName string
	PassNumber string
	PassURL    string
}

// AdminPaymentRequestData holds data for the admin notification when a
// member starts the payment process
type AdminPaymentRequestData struct {
	MemberName   string
	MemberEmail  string
	PassNumber   string
	Amount       string
	Method       string
	DashboardURL string
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() {

	s.templates["rsvp_confirmation"] = template.Must(template.New("rsvp_confirmation").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; color: #F5F5F5; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; background: #0A0A0A; }
        .header { border-bottom: 2px solid #D4AF37; padding: 24px; text-align: center; }
        .header h1 { color: #D4AF37; letter-spacing: 2px; }
        .content { padding: 24px; }
        .detail { color: #F7E7CE; margin: 8px 0; }
        .btn { display: inline-block; background: #D4AF37; color: #0A0A0A; padding: 12px 24px; text-decoration: none; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #8B7328; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>PAIGE'S INNER CIRCLE</h1>
    </div>
    <div class="content">
        <p>Dear {{.MemberName}},</p>
        <p>Your place at <strong>{{.EventName}}</strong> is reserved.</p>
        <p class="detail">Date: {{.EventDate}}</p>
        <p class="detail">Venue: {{.VenueName}}</p>
        <p class="detail">Your pass: {{.PassNumberPreview}}</p>
        <p>Complete your {{.Amount}} investment to unlock your full Legacy Pass.</p>
        <a href="{{.PaymentURL}}" class="btn">Complete Payment</a>
    </div>
    <div class="footer">
        Paige's Inner Circle • By Invitation Only
    </div>
</div>
</body>
</html>
`))

	s.templates["decline_thank_you"] = template.Must(template.New("decline_thank_you").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; color: #F5F5F5; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; background: #0A0A0A; }
        .header { border-bottom: 2px solid #D4AF37; padding: 24px; text-align: center; }
        .header h1 { color: #D4AF37; letter-spacing: 2px; }
        .content { padding: 24px; }
        .footer { margin-top: 24px; font-size: 12px; color: #8B7328; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>PAIGE'S INNER CIRCLE</h1>
    </div>
    <div class="content">
        <p>Dear {{.MemberName}},</p>
        <p>We're sorry you can't join us for <strong>{{.EventName}}</strong>.</p>
        <p>Your membership remains in good standing and we hope to see you at the next gathering.</p>
        <p>Warmly,<br/>Paige</p>
    </div>
    <div class="footer">
        Paige's Inner Circle • By Invitation Only
    </div>
</div>
</body>
</html>
`))

	s.templates["payment_instructions"] = template.Must(template.New("payment_instructions").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; color: #F5F5F5; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; background: #0A0A0A; }
        .header { border-bottom: 2px solid #D4AF37; padding: 24px; text-align: center; }
        .header h1 { color: #D4AF37; letter-spacing: 2px; }
        .content { padding: 24px; }
        .amount { color: #D4AF37; font-size: 24px; }
        .btn { display: inline-block; background: #D4AF37; color: #0A0A0A; padding: 12px 24px; text-decoration: none; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #8B7328; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>PAIGE'S INNER CIRCLE</h1>
    </div>
    <div class="content">
        <p>Dear {{.MemberName}},</p>
        <p>Your Legacy Pass investment:</p>
        <p class="amount">{{.Amount}}</p>
        <p>Our concierge team will reach out to <strong>{{.ContactEmail}}</strong> with payment arrangements. Once your payment is verified, your full pass unlocks automatically.</p>
        <a href="{{.PaymentURL}}" class="btn">View Payment Status</a>
    </div>
    <div class="footer">
        Paige's Inner Circle • By Invitation Only
    </div>
</div>
</body>
</html>
`))

	s.templates["payment_verified"] = template.Must(template.New("payment_verified").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Georgia, 'Times New Roman', serif; color: #F5F5F5; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; background: #0A0A0A; }
        .header { border-bottom: 2px solid #D4AF37; padding: 24px; text-align: center; }
        .header h1 { color: #D4AF37; letter-spacing: 2px; }
        .content { padding: 24px; }
        .pass-number { color: #D4AF37; font-size: 20px; letter-spacing: 1px; }
        .btn { display: inline-block; background: #D4AF37; color: #0A0A0A; padding: 12px 24px; text-decoration: none; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #8B7328; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>WELCOME TO THE INNER CIRCLE</h1>
    </div>
    <div class="content">
        <p>Dear {{.MemberName}},</p>
        <p>Your payment is verified. Your Legacy Pass is now fully unlocked.</p>
        <p class="pass-number">{{.PassNumber}}</p>
        <a href="{{.PassURL}}" class="btn">View Your Pass</a>
        <p style="margin-top: 16px; font-size: 14px; color: #F7E7CE;">
            Download the PDF and present the QR code at the entrance.
        </p>
    </div>
    <div class="footer">
        Paige's Inner Circle • By Invitation Only
    </div>
</div>
</body>
</html>
`))

	s.templates["admin_payment_request"] = template.Must(template.New("admin_payment_request").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0A0A0A; color: #D4AF37; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .row { margin: 6px 0; }
        .btn { display: inline-block; background: #0A0A0A; color: #D4AF37; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>Payment Verification Needed</h2>
    </div>
    <div class="content">
        <div class="row"><strong>Member:</strong> {{.MemberName}} ({{.MemberEmail}})</div>
        <div class="row"><strong>Pass:</strong> {{.PassNumber}}</div>
        <div class="row"><strong>Amount:</strong> {{.Amount}}</div>
        <div class="row"><strong>Method:</strong> {{.Method}}</div>
        <a href="{{.DashboardURL}}" class="btn">Open Dashboard</a>
    </div>
</div>
</body>
</html>
`))
}

// Send sends an email
func (s *Service) Send(email *Email) error {
	if s.config.Host == "" {
		log.Println("Email not configured, skipping send")
		return nil
	}

	// Build message
	var msg bytes.Buffer

	// Headers
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	if len(email.CC) > 0 {
		msg.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(email.CC, ", ")))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
	}

	// Build recipient list
	recipients := append(email.To, email.CC...)
	recipients = append(recipients, email.BCC...)

	// Create auth
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.config.UseTLS {
		// TLS connection
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial error: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("SMTP client error: %w", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("auth error: %w", err)
		}

		if err = client.Mail(s.config.From); err != nil {
			return fmt.Errorf("mail error: %w", err)
		}

		for _, rcpt := range recipients {
			if err = client.Rcpt(rcpt); err != nil {
				return fmt.Errorf("rcpt error: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("data error: %w", err)
		}

		_, err = w.Write(msg.Bytes())
		if err != nil {
			return fmt.Errorf("write error: %w", err)
		}

		err = w.Close()
		if err != nil {
			return fmt.Errorf("close error: %w", err)
		}

		return client.Quit()
	}

	// Non-TLS
	return smtp.SendMail(addr, auth, s.config.From, recipients, msg.Bytes())
}

// SendWithTemplate renders a named template and sends it
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	return s.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body.String(),
	})
}

// SendRSVPConfirmation sends the acceptance confirmation with the obscured
// pass preview and payment link
func (s *Service) SendRSVPConfirmation(to string, data RSVPConfirmationData) error {
	return s.SendWithTemplate([]string{to},
		"Your place is reserved • "+data.EventName, "rsvp_confirmation", data)
}

// SendDeclineThankYou acknowledges a declined invitation
func (s *Service) SendDeclineThankYou(to string, data DeclineData) error {
	return s.SendWithTemplate([]string{to},
		"We'll miss you • "+data.EventName, "decline_thank_you", data)
}

// SendPaymentInstructions sends the concierge payment instructions
func (s *Service) SendPaymentInstructions(to string, data PaymentInstructionsData) error {
	return s.SendWithTemplate([]string{to},
		"Your Legacy Pass investment", "payment_instructions", data)
}

// SendPaymentVerified notifies a member that their pass is unlocked
func (s *Service) SendPaymentVerified(to string, data PaymentVerifiedData) error {
	return s.SendWithTemplate([]string{to},
		"Your Legacy Pass is unlocked", "payment_verified", data)
}

// SendAdminPaymentRequest notifies the admin that a payment awaits verification
func (s *Service) SendAdminPaymentRequest(to string, data AdminPaymentRequestData) error {
	return s.SendWithTemplate([]string{to},
		"Payment verification needed: "+data.PassNumber, "admin_payment_request", data)
}
