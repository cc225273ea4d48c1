package email

import (
	"fmt"
	"time"
)

// WelcomeEmailData contains the data needed for the registration welcome email.
type WelcomeEmailData struct {
	FullName string
	Email    string
	Role     string
	AppName  string
}

// BuildWelcomeEmail creates the email sent after a successful registration.
func BuildWelcomeEmail(data WelcomeEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Clinique"
	}

	name := data.FullName
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("Welcome to %s", appName)

	textBody := fmt.Sprintf(`Hi %s,

Your %s account has been created.

You can now sign in with this email address to manage your appointments.

Thanks,
The %s Team`,
		name, appName, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>Your %s account has been created.</p>
    <p>You can now sign in with this email address to manage your appointments.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		name, appName, appName)

	return Message{
		To:       []string{data.Email},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// AppointmentEmailData contains the data for appointment notification emails.
type AppointmentEmailData struct {
	PatientName   string
	PatientEmail  string
	TherapistName string
	SessionDate   time.Time
	AppName       string
}

// BuildAppointmentScheduledEmail creates the confirmation sent to the
// patient when a session is booked.
func BuildAppointmentScheduledEmail(data AppointmentEmailData) Message {
	appName := data.AppName
	if appName == "" {
		appName = "Clinique"
	}

	name := data.PatientName
	if name == "" {
		name = "there"
	}

	when := data.SessionDate.Format("Monday, January 2 2006 at 15:04")

	subject := fmt.Sprintf("Your session on %s", data.SessionDate.Format("Jan 2"))

	textBody := fmt.Sprintf(`Hi %s,

A session with %s has been scheduled for %s.

If you can't make it, please cancel through your account so the slot can be reused.

Thanks,
The %s Team`,
		name, data.TherapistName, when, appName)

	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2563eb;">Hi %s,</h2>
    <p>A session with <strong>%s</strong> has been scheduled for <strong>%s</strong>.</p>
    <p>If you can't make it, please cancel through your account so the slot can be reused.</p>
    <p style="color: #6b7280; font-size: 14px; margin-top: 30px;">Thanks,<br>The %s Team</p>
</body>
</html>`,
		name, data.TherapistName, when, appName)

	return Message{
		To:       []string{data.PatientEmail},
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
