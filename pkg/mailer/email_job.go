package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is the fallback body.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// VerificationEmail builds the job for an email-verification link.
func VerificationEmail(to, username, link string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Verify your email address",
		Text: "Hi " + username + ",\n\n" +
			"Please confirm your email address by opening the link below:\n\n" +
			link + "\n\n" +
			"The link expires in 24 hours. If you did not create this account, you can ignore this message.\n",
	}
}
