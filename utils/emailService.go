package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"kursplatforma/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Kurs Platforma <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendPasswordResetEmail mails the reset link for a forgotten password.
func SendPasswordResetEmail(email, resetLink string) error {
	body := fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; text-align: center; padding: 40px;">
		<h2>Promena lozinke</h2>
		<p>Primili smo zahtev za promenu lozinke za vaš nalog.</p>
		<p>Kliknite na dugme ispod da biste postavili novu lozinku:</p>
		<br>
		<a href="%s" style="background-color: #AD8B73; color: white; padding: 12px 25px; text-decoration: none; border-radius: 8px; font-weight: bold;">
			POSTAVI NOVU LOZINKU
		</a>
		<br><br>
		<p style="color: #999; font-size: 12px;">Ako niste tražili promenu, ignorišite ovaj mejl.</p>
	</div>`, resetLink)

	return SendEmail([]string{email}, "Promena lozinke", body)
}
