package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// ContactMessage is a submitted contact-form entry, rendered into an
// EmailJob addressed to the organization's inbox.
type ContactMessage struct {
	Name        string
	Email       string
	Phone       string
	Subject     string
	Message     string
	InquiryType string
}

// BuildContactJob renders the notification email for a contact submission.
// Reply-To is the submitter so staff can answer directly.
func BuildContactJob(to string, msg ContactMessage, now time.Time) EmailJob {
	subject := fmt.Sprintf("[Seva Samiti] %s — %s", msg.Subject, msg.Name)
	return EmailJob{
		To:      to,
		Subject: subject,
		Text:    contactText(msg, now),
		HTML:    contactHTML(msg, now),
		ReplyTo: msg.Email,
	}
}

func contactText(m ContactMessage, now time.Time) string {
	var b strings.Builder
	b.WriteString("New Contact Form Submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", m.Name)
	fmt.Fprintf(&b, "Email: %s\n", m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", m.Phone)
	}
	if m.InquiryType != "" {
		fmt.Fprintf(&b, "Inquiry Type: %s\n", m.InquiryType)
	}
	fmt.Fprintf(&b, "Message:\n%s\n\n", m.Message)
	fmt.Fprintf(&b, "Submitted on %s", now.Format("02 Jan 2006 15:04 MST"))
	return b.String()
}

func contactHTML(m ContactMessage, now time.Time) string {
	esc := html.EscapeString
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; line-height:1.6;">`)
	b.WriteString("<h2>New Contact Form Submission</h2>")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", esc(m.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", esc(m.Email))
	if m.Phone != "" {
		fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", esc(m.Phone))
	}
	if m.InquiryType != "" {
		fmt.Fprintf(&b, "<p><strong>Inquiry Type:</strong> %s</p>", esc(m.InquiryType))
	}
	b.WriteString("<p><strong>Message:</strong></p>")
	fmt.Fprintf(&b, `<pre style="white-space: pre-wrap; background:#f6f6f6; padding:12px; border-radius:6px;">%s</pre>`, esc(m.Message))
	b.WriteString("<hr />")
	fmt.Fprintf(&b, `<p style="color:#666; font-size:12px;">Submitted on %s</p>`, esc(now.Format("02 Jan 2006 15:04 MST")))
	b.WriteString("</div>")
	return b.String()
}
