package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for non-critical
// notification mail (welcome, profile-updated). OTP mail is never queued:
// it is sent synchronously so delivery failures surface to the caller.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}
