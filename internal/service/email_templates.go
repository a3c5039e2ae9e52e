package service

import "fmt"

func verificationEmailTemplate(name, code, appName string) (string, string) {
	subject := "Email Confirmation"
	body := fmt.Sprintf(`Hello %s!

Are you ready to gain access to all of the assets we prepared for clients of %s? First, you must complete your registration by copying this code and pasting it in our site:

%s

This code will confirm your email address, and then you'll officially be a part of the %s community.

See you there!
Best regards, the %s team`, name, appName, code, appName, appName)

	return subject, body
}

func verificationReminderEmailTemplate(name, code, appName string) (string, string) {
	subject := "Email Confirmation"
	body := fmt.Sprintf(`Hello %s!

It seems you didn't confirm your account and you want to fix it. So here is your confirmation code:

%s

This code will confirm your email address, and then you'll officially be a part of the %s community.

See you there!
Best regards, the %s team`, name, code, appName, appName)

	return subject, body
}

func contactMessageTemplate(name, email, purpose, message, appName string) (string, string) {
	subject := fmt.Sprintf("%s - Contact Us", appName)
	body := fmt.Sprintf(`From: %s - %s

Purpose: %s

Message: %s`, name, email, purpose, message)

	return subject, body
}
