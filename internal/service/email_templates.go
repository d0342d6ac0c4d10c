package service

import "fmt"

func welcomeEmailTemplate(name, email, temporaryPassword, loginURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s account is ready", appName)
	body := fmt.Sprintf(`Hi %s,

An account has been created for you on %s.

Sign in here: %s

Email: %s
Temporary password: %s

You will be asked to choose a new password the first time you sign in.

Best,
The %s Team`, name, appName, loginURL, email, temporaryPassword, appName)

	return subject, body
}

func passwordResetEmailTemplate(name, temporaryPassword, loginURL, appName string) (string, string) {
	subject := fmt.Sprintf("Your %s password was reset", appName)
	body := fmt.Sprintf(`Hi %s,

An administrator reset your password.

Sign in here: %s

Temporary password: %s

You will be asked to choose a new password the first time you sign in.

If you didn't expect this, contact your group leader.

Best,
The %s Team`, name, loginURL, temporaryPassword, appName)

	return subject, body
}
