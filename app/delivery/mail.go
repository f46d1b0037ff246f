package delivery

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

const (
	// wellKnownProvider gets an implicit-TLS attempt on its dedicated port
	// before the regular STARTTLS path; its SMTP service is known to be
	// more reliable there.
	wellKnownProvider = "smtp.qq.com"
	implicitTLSPort   = 465

	mailDialTimeout = 15 * time.Second
)

// smtpSession is the slice of *smtp.Client the channel needs. Dialers are
// injectable so the two-step fallback is testable without a network.
type smtpSession interface {
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
}

type dialFunc func(host string, port int, timeout time.Duration) (smtpSession, error)

// MailChannel sends the digest as one multipart mail message. Connection
// strategy is a two-step fallback: implicit TLS on the dedicated port for
// the well-known provider, then explicit STARTTLS on the configured port.
// Authentication failure on the final attempt is reported, not retried.
type MailChannel struct {
	sender    string
	password  string
	recipient string
	host      string
	port      int

	dialImplicitTLS dialFunc
	dialStartTLS    dialFunc
}

func NewMailChannel(sender, password, recipient, host string, port int) *MailChannel {
	return &MailChannel{
		sender:          sender,
		password:        password,
		recipient:       recipient,
		host:            host,
		port:            port,
		dialImplicitTLS: dialImplicitTLS,
		dialStartTLS:    dialStartTLS,
	}
}

func (c *MailChannel) Name() string {
	return "mail"
}

func (c *MailChannel) Enabled() bool {
	return c.sender != "" && c.password != ""
}

func (c *MailChannel) Send(ctx context.Context, subject, body string) error {
	recipient := c.recipient
	if recipient == "" {
		recipient = c.sender
	}

	message := c.buildMessage(recipient, subject, body)

	if c.host == wellKnownProvider {
		session, err := c.dialImplicitTLS(c.host, implicitTLSPort, mailDialTimeout)
		if err == nil {
			err = c.deliver(session, recipient, message)
			if err == nil {
				return nil
			}
		}
		slog.Warn("Implicit TLS attempt failed, falling back to STARTTLS", "port", implicitTLSPort, "error", err)
	}

	session, err := c.dialStartTLS(c.host, c.port, mailDialTimeout)
	if err != nil {
		return fmt.Errorf("STARTTLS connection to %s:%d failed: %w", c.host, c.port, err)
	}

	if err := c.deliver(session, recipient, message); err != nil {
		return fmt.Errorf("mail delivery via %s:%d failed: %w%s", c.host, c.port, err, mailDiagnosis(err))
	}

	return nil
}

// deliver runs one SMTP transaction over an established session.
func (c *MailChannel) deliver(session smtpSession, recipient string, message []byte) error {
	if err := session.Auth(smtp.PlainAuth("", c.sender, c.password, c.host)); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	if err := session.Mail(c.sender); err != nil {
		return fmt.Errorf("MAIL command failed: %w", err)
	}
	if err := session.Rcpt(recipient); err != nil {
		return fmt.Errorf("RCPT command failed: %w", err)
	}

	w, err := session.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return session.Quit()
}

// buildMessage assembles headers plus a multipart body whose HTML part is
// the digest with line breaks converted to break tags.
func (c *MailChannel) buildMessage(recipient, subject, body string) []byte {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", c.sender)
	fmt.Fprintf(&buf, "To: %s\r\n", recipient)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", writer.Boundary())

	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=utf-8"},
	})
	if err == nil {
		fmt.Fprint(part, strings.ReplaceAll(body, "\n", "<br>\n"))
	}
	writer.Close()

	return buf.Bytes()
}

// mailDiagnosis attaches a hint when the failure mode is recognizable.
func mailDiagnosis(err error) string {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && (protoErr.Code == 535 || protoErr.Code == 534) {
		return " (check that the password is a valid authorization code and SMTP is enabled for the account)"
	}
	return ""
}

func dialImplicitTLS(host string, port int, timeout time.Duration) (smtpSession, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: timeout}, "tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return nil, fmt.Errorf("TLS dial failed: %w", err)
	}

	session, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SMTP handshake failed: %w", err)
	}

	return session, nil
}

func dialStartTLS(host string, port int, timeout time.Duration) (smtpSession, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}

	session, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("SMTP handshake failed: %w", err)
	}

	if err := session.StartTLS(&tls.Config{ServerName: host}); err != nil {
		session.Close()
		return nil, fmt.Errorf("STARTTLS failed: %w", err)
	}

	return session, nil
}
