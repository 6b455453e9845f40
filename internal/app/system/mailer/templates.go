// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dalemusser/scholarhub/internal/domain/models"
)

// SubmissionEmailData holds data for the new-submission notice sent to the
// editor-in-chief.
type SubmissionEmailData struct {
	SiteName   string
	Title      string
	Domain     string
	AuthorName string
}

// BuildSubmissionEmail creates the editor-in-chief notification for a new
// manuscript submission.
func BuildSubmissionEmail(data SubmissionEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("New manuscript submitted: %s", data.Title),
		TextBody: buildSubmissionText(data),
		HTMLBody: buildNoticeHTML(data.SiteName, "New manuscript submission", buildSubmissionText(data)),
	}
}

func buildSubmissionText(data SubmissionEmailData) string {
	var buf bytes.Buffer
	buf.WriteString("A new manuscript has been submitted.\n\n")
	buf.WriteString(fmt.Sprintf("Title: %s\n", data.Title))
	buf.WriteString(fmt.Sprintf("Domain: %s\n", data.Domain))
	buf.WriteString(fmt.Sprintf("Corresponding author: %s\n\n", data.AuthorName))
	buf.WriteString("Sign in to review the submission and assign reviewers.\n")
	return buf.String()
}

// AssignmentEmailData holds data for reviewer assignment notices.
type AssignmentEmailData struct {
	SiteName   string
	Manuscript *models.Manuscript
	DueDate    time.Time
}

// BuildAssignmentEmail creates the notice sent to a reviewer when an
// editor assigns them a manuscript.
func BuildAssignmentEmail(data AssignmentEmailData) Email {
	text := buildAssignmentText(data, "You have been assigned to review a manuscript.")
	return Email{
		Subject:  fmt.Sprintf("Review assignment: %s", data.Manuscript.Title),
		TextBody: text,
		HTMLBody: buildNoticeHTML(data.SiteName, "Review assignment", text),
	}
}

// BuildOverdueReminderEmail creates the reminder sent when a pending
// assignment passes its due date without a response.
func BuildOverdueReminderEmail(data AssignmentEmailData) Email {
	text := buildAssignmentText(data, "A review assignment is awaiting your response past its due date.")
	return Email{
		Subject:  fmt.Sprintf("Reminder: review due for %s", data.Manuscript.Title),
		TextBody: text,
		HTMLBody: buildNoticeHTML(data.SiteName, "Review reminder", text),
	}
}

func buildAssignmentText(data AssignmentEmailData, lead string) string {
	var buf bytes.Buffer
	buf.WriteString(lead + "\n\n")
	buf.WriteString(fmt.Sprintf("Title: %s\n", data.Manuscript.Title))
	buf.WriteString(fmt.Sprintf("Domain: %s\n", data.Manuscript.Domain))
	buf.WriteString(fmt.Sprintf("Due date: %s\n\n", data.DueDate.Format("January 2, 2006")))
	buf.WriteString("Sign in to accept or decline the assignment.\n")
	return buf.String()
}

func buildNoticeHTML(siteName, heading, body string) string {
	tmpl := template.Must(template.New("notice").Parse(noticeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, struct {
		SiteName string
		Heading  string
		Body     string
	}{SiteName: siteName, Heading: heading, Body: body})
	return buf.String()
}

const noticeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Heading}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <h2 style="margin: 0 0 16px; font-size: 18px; color: #1f2937;">{{.Heading}}</h2>
              <p style="margin: 0; font-size: 15px; color: #374151; line-height: 1.6; white-space: pre-line;">{{.Body}}</p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                You are receiving this email because of your role on {{.SiteName}}.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
