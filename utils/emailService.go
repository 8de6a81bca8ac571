package utils

import (
	"fmt"
	"marche/config"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Marche Store <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	// Debug Logs
	fmt.Printf("--- Sending Email ---\nTo: %v\nSubject: %s\nFrom: %s\n", to, subject, from)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	fmt.Println("--- Email Sent Successfully ---")
	return nil
}

// HTML Wrapper (Professional Look)
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A2D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A2D; line-height: 1.6; }
			.content h2 { color: #1B3A2D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #D7A04D; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #EAF4EE; padding: 15px; border-radius: 4px; border-left: 4px solid #D7A04D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>MARCHE STORE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Marche Store. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Marche Store"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Marche Store</strong>! We are thrilled to have you with us.</p>
		<p>Your account has been successfully created. You can now browse our catalogue, place orders and chat with our support team whenever you need help.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Support session picked up by an agent
func SendSessionAssignedEmail(email, name, sessionSubject string) {
	subject := "A support agent has joined your conversation"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An agent has joined your support conversation <strong>%s</strong> and will reply shortly.</p>
		<div class="info-box">
			<strong>Tip:</strong> Keep the chat window open to see replies as soon as they arrive.
		</div>
	`, name, sessionSubject)

	go SendEmail([]string{email}, subject, getEmailTemplate("We Are On It", body))
}

// 3. Order status change
func SendOrderStatusEmail(email, name string, orderID uint, status string) {
	subject := fmt.Sprintf("Order #%d update: %s", orderID, status)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your order <strong>#%d</strong> is now <strong>%s</strong>.</p>
		<p>You can review the full order details from your account page.</p>
	`, name, orderID, status)

	go SendEmail([]string{email}, subject, getEmailTemplate("Order Update", body))
}
