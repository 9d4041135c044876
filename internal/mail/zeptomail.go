package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/actifly/api/internal/constants"
	apperrors "github.com/actifly/api/internal/errors"
	"github.com/actifly/api/internal/logger"
)

// Client sends email through the ZeptoMail REST API.
type Client struct {
	endpoint    string
	apiKey      string
	fromAddress string
	fromName    string
	toAddress   string
	httpClient  *http.Client
	logger      *slog.Logger
}

// NewClient creates a ZeptoMail client. The API key must be a REST API key
// ("enczapikey"), not the SMTP password.
func NewClient(endpoint, apiKey, fromAddress, fromName, toAddress string, log *slog.Logger) *Client {
	return &Client{
		endpoint:    endpoint,
		apiKey:      apiKey,
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
		httpClient:  &http.Client{},
		logger:      log,
	}
}

// ZeptoMail API payload types.

type emailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type recipient struct {
	EmailAddress emailAddress `json:"email_address"`
}

type attachmentPayload struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Content  string `json:"content"` // base64
}

type sendRequest struct {
	From        emailAddress        `json:"from"`
	To          []recipient         `json:"to"`
	ReplyTo     []emailAddress      `json:"reply_to,omitempty"`
	Subject     string              `json:"subject"`
	TextBody    string              `json:"textbody"`
	Attachments []attachmentPayload `json:"attachments,omitempty"`
}

// Send delivers the message, returning an upstream_failure error with the
// upstream status and body on any non-2xx response.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	reqLogger := logger.DeriveRequestLogger(ctx, c.logger)

	payload := sendRequest{
		From:     emailAddress{Address: c.fromAddress, Name: c.fromName},
		To:       []recipient{{EmailAddress: emailAddress{Address: c.toAddress, Name: c.fromName}}},
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
	}
	if msg.ReplyTo != "" {
		payload.ReplyTo = []emailAddress{{Address: msg.ReplyTo}}
	}
	for _, att := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, attachmentPayload{
			Name:     att.Name,
			MIMEType: att.MIMEType,
			Content:  base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.ErrInternalError("failed to encode mail payload", err)
	}

	sendURL, err := url.JoinPath(c.endpoint, "/v1.1/email")
	if err != nil {
		return apperrors.ErrMisconfiguration("invalid mail endpoint")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(body))
	if err != nil {
		return apperrors.ErrInternalError("failed to create mail request", err)
	}
	httpReq.Header.Set(constants.ContentTypeHeader, "application/json")
	httpReq.Header.Set(constants.AuthorizationHeader, "Zoho-enczapikey "+c.apiKey)

	logArgs := []any{
		"operation", "ZeptoMail.Send",
		"url", sendURL,
		"attachments", len(msg.Attachments),
		"bodySize", len(body),
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.ErrUpstreamFailure("mail service unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.ErrUpstreamFailure("failed to read mail service response", err)
	}

	reqLogger.Debug("received mail service response",
		"status", resp.StatusCode,
		"bodySize", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Pass the upstream body through for diagnostics, kept short
		return apperrors.ErrUpstreamFailure(
			fmt.Sprintf("mail service error (%d)", resp.StatusCode),
			fmt.Errorf("%s", truncate(string(respBody), 512)))
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
