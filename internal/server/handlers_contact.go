package server

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/actifly/api/internal/api"
	"github.com/actifly/api/internal/constants"
	apperrors "github.com/actifly/api/internal/errors"
	"github.com/actifly/api/internal/mail"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// contactForm holds the validated contact-form fields.
type contactForm struct {
	Email    string `validate:"required,email"`
	Category string `validate:"required"`
	Subject  string
	Message  string `validate:"required"`
}

// allowedAttachmentTypes restricts contact attachments to the MIME types the
// support inbox accepts.
var allowedAttachmentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"application/pdf": true,
}

// handleContact handles POST /api/contact: validate the form, collect
// attachments, and forward everything as an outbound support email.
func (r *Router) handleContact(w http.ResponseWriter, req *http.Request) {
	logger := r.GetLoggerFromContext(req.Context())

	if r.cfg.MailAPIKey == "" || r.mailer == nil {
		r.handleAndLogError(w, req, apperrors.ErrMisconfiguration(
			"Server misconfiguration: missing ZOHO_API_KEY"), "send contact email")
		return
	}

	form, attachments, err := r.parseContactRequest(req)
	if err != nil {
		logger.Debug("contact submission rejected", "error", err)
		r.writeError(w, err)
		return
	}

	subject := fmt.Sprintf("[%s] New contact request", form.Category)
	if form.Subject != "" {
		subject = fmt.Sprintf("[%s] %s", form.Category, form.Subject)
	}

	displaySubject := form.Subject
	if displaySubject == "" {
		displaySubject = "(none)"
	}
	textBody := fmt.Sprintf(
		"New ActiFly contact request\n\nFrom: %s\nCategory: %s\nSubject: %s\n\nMessage:\n%s\n",
		form.Email, form.Category, displaySubject, form.Message)

	msg := &mail.Message{
		ReplyTo:     form.Email,
		Subject:     subject,
		TextBody:    textBody,
		Attachments: attachments,
	}

	if err := r.mailer.Send(req.Context(), msg); err != nil {
		r.handleAndLogError(w, req, err, "send contact email")
		return
	}

	logger.Info("contact email forwarded", "category", form.Category, "attachments", len(attachments))
	writeJSON(w, http.StatusOK, api.ContactResponse{OK: true})
}

// parseContactRequest parses either a urlencoded or multipart contact form and
// validates fields and attachment constraints.
func (r *Router) parseContactRequest(req *http.Request) (*contactForm, []mail.Attachment, error) {
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get(constants.ContentTypeHeader))

	var attachments []mail.Attachment
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := req.ParseMultipartForm(constants.MaxContactFormMemory); err != nil {
			return nil, nil, apperrors.ErrBadRequest("Invalid form body", err)
		}

		var err error
		attachments, err = collectAttachments(req.MultipartForm)
		if err != nil {
			return nil, nil, err
		}
	} else {
		if err := req.ParseForm(); err != nil {
			return nil, nil, apperrors.ErrBadRequest("Invalid form body", err)
		}
	}

	form := &contactForm{
		Email:    strings.TrimSpace(req.PostFormValue("email")),
		Category: strings.TrimSpace(req.PostFormValue("category")),
		Subject:  strings.TrimSpace(req.PostFormValue("subject")),
		Message:  strings.TrimSpace(req.PostFormValue("message")),
	}

	if err := validate.Struct(form); err != nil {
		return nil, nil, apperrors.ErrBadRequest("Missing required fields", err)
	}

	return form, attachments, nil
}

// collectAttachments reads the uploaded files, enforcing count, size and MIME
// type limits.
func collectAttachments(form *multipart.Form) ([]mail.Attachment, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File["attachments"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > constants.MaxAttachments {
		return nil, apperrors.ErrBadRequest(
			fmt.Sprintf("At most %d attachments are allowed", constants.MaxAttachments), nil)
	}

	attachments := make([]mail.Attachment, 0, len(files))
	for _, fh := range files {
		if fh.Size > constants.MaxAttachmentBytes {
			return nil, apperrors.ErrBadRequest(
				fmt.Sprintf("Attachment %q exceeds the %d MB limit", fh.Filename,
					constants.MaxAttachmentBytes>>20), nil)
		}

		mimeType, _, _ := mime.ParseMediaType(fh.Header.Get(constants.ContentTypeHeader))
		if !allowedAttachmentTypes[mimeType] {
			return nil, apperrors.ErrBadRequest(
				fmt.Sprintf("Attachment %q has an unsupported type", fh.Filename), nil)
		}

		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.ErrBadRequest(
				fmt.Sprintf("Failed to read attachment %q", fh.Filename), err)
		}

		// Size from the part header is client-supplied; cap the actual read too
		content, err := io.ReadAll(io.LimitReader(f, constants.MaxAttachmentBytes+1))
		_ = f.Close()
		if err != nil {
			return nil, apperrors.ErrBadRequest(
				fmt.Sprintf("Failed to read attachment %q", fh.Filename), err)
		}
		if len(content) > constants.MaxAttachmentBytes {
			return nil, apperrors.ErrBadRequest(
				fmt.Sprintf("Attachment %q exceeds the %d MB limit", fh.Filename,
					constants.MaxAttachmentBytes>>20), nil)
		}

		attachments = append(attachments, mail.Attachment{
			Name:     fh.Filename,
			MIMEType: mimeType,
			Content:  content,
		})
	}

	return attachments, nil
}
