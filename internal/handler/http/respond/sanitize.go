package respond

import (
	"regexp"
)

var (
	// Resend API keys ("re_..." tokens).
	resendKeyPattern = regexp.MustCompile(`re_[a-zA-Z0-9_]{10,}`)

	// AWS access key IDs.
	awsKeyPattern = regexp.MustCompile(`AKIA[0-9A-Z]{16}`)

	// Passwords embedded in connection strings.
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)
)

// SanitizeError masks credential material in an error message before it is
// logged. Errors from the mailer and the database carry their endpoint
// configuration in the message text.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = resendKeyPattern.ReplaceAllString(msg, "re_****")
	msg = awsKeyPattern.ReplaceAllString(msg, "AKIA****")
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	return msg
}
