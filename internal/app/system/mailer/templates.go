// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// VerificationEmailData holds data for the email-verification message.
type VerificationEmailData struct {
	SiteName  string
	FirstName string
	Role      string
	VerifyURL string // carries the plaintext token as a query parameter
	ExpiresIn string // e.g., "24 hours"
}

// WelcomeEmailData holds data for the post-verification welcome message.
type WelcomeEmailData struct {
	SiteName  string
	FirstName string
	LoginURL  string
}

// BuildVerificationEmail creates the verification email with both HTML and
// text bodies. The caller sets To/ToName.
func BuildVerificationEmail(data VerificationEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Verify Your Email – %s", data.SiteName),
		TextBody: buildVerificationText(data),
		HTMLBody: renderHTML("verification", verificationHTMLTemplate, data),
	}
}

// BuildWelcomeEmail creates the welcome email sent after verification.
func BuildWelcomeEmail(data WelcomeEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Welcome to %s – You're verified!", data.SiteName),
		TextBody: buildWelcomeText(data),
		HTMLBody: renderHTML("welcome", welcomeHTMLTemplate, data),
	}
}

func buildVerificationText(data VerificationEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi %s,\n\n", data.FirstName)
	fmt.Fprintf(&buf, "Thanks for signing up as a %s on %s. Verify your email here:\n", data.Role, data.SiteName)
	buf.WriteString(data.VerifyURL + "\n\n")
	fmt.Fprintf(&buf, "This link expires in %s.\n\n", data.ExpiresIn)
	buf.WriteString("If you didn't create an account, you can safely ignore this email.\n")
	return buf.String()
}

func buildWelcomeText(data WelcomeEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Welcome aboard, %s!\n\n", data.FirstName)
	fmt.Fprintf(&buf, "Your email has been verified. Log in to complete your profile:\n")
	buf.WriteString(data.LoginURL + "\n")
	return buf.String()
}

type htmlData struct {
	Year int
	Data any
}

func renderHTML(name, tmpl string, data any) string {
	t := template.Must(template.New(name).Parse(tmpl))
	var buf bytes.Buffer
	_ = t.Execute(&buf, htmlData{Year: time.Now().Year(), Data: data})
	return buf.String()
}

const verificationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Verify Your Email</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f0;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f5f5f0;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 16px; box-shadow: 0 2px 20px rgba(0,0,0,0.08);">
          <tr>
            <td style="background: #1a1a1a; padding: 32px 40px; text-align: center;">
              <h1 style="color: #ffffff; margin: 0; font-size: 22px; letter-spacing: 0.5px;">{{.Data.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px; color: #333333;">
              <h2 style="font-size: 20px; margin: 0 0 12px; color: #1a1a1a;">Hi {{.Data.FirstName}},</h2>
              <p style="font-size: 14px; line-height: 1.7; color: #555555; margin: 0 0 20px;">
                Thanks for signing up as a <strong>{{.Data.Role}}</strong> on {{.Data.SiteName}}!
                Click the button below to verify your email address and activate your account.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 28px 0;">
                    <a href="{{.Data.VerifyURL}}" style="display: inline-block; padding: 14px 36px; background: #1a1a1a; color: #ffffff; text-decoration: none; border-radius: 50px; font-size: 14px; font-weight: 600;">Join {{.Data.SiteName}}</a>
                  </td>
                </tr>
              </table>
              <p style="font-size: 14px; line-height: 1.7; color: #555555; margin: 0 0 20px;">Or paste this link into your browser:</p>
              <p style="word-break: break-all; font-size: 12px; color: #888888;">{{.Data.VerifyURL}}</p>
              <p style="font-size: 14px; color: #555555;"><strong>This link expires in {{.Data.ExpiresIn}}.</strong></p>
              <p style="font-size: 14px; color: #555555;">If you didn't create an account, you can safely ignore this email.</p>
            </td>
          </tr>
          <tr>
            <td style="text-align: center; padding: 20px 40px; font-size: 12px; color: #aaaaaa; border-top: 1px solid #f0f0f0;">
              &copy; {{.Year}} {{.Data.SiteName}}. All rights reserved.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`

const welcomeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome</title>
</head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f5f5f0;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f5f5f0;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 16px; box-shadow: 0 2px 20px rgba(0,0,0,0.08);">
          <tr>
            <td style="background: #22c55e; padding: 32px 40px; text-align: center;">
              <h1 style="color: #ffffff; margin: 0; font-size: 22px;">You're verified!</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px; color: #333333;">
              <h2 style="font-size: 20px; margin: 0 0 12px; color: #1a1a1a;">Welcome aboard, {{.Data.FirstName}}!</h2>
              <p style="font-size: 14px; line-height: 1.7; color: #555555; margin: 0 0 20px;">
                Your email has been verified. Log in now to complete your profile and start using {{.Data.SiteName}}.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center" style="padding: 28px 0;">
                    <a href="{{.Data.LoginURL}}" style="display: inline-block; padding: 14px 36px; background: #1a1a1a; color: #ffffff; text-decoration: none; border-radius: 50px; font-size: 14px; font-weight: 600;">Go to Login</a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td style="text-align: center; padding: 20px 40px; font-size: 12px; color: #aaaaaa; border-top: 1px solid #f0f0f0;">
              &copy; {{.Year}} {{.Data.SiteName}}. All rights reserved.
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
