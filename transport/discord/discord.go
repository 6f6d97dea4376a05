// Package discord is a transport storing bundles as messages of a Discord
// channel through the REST API.
package discord

import (
	"chat-fs/domain"
	"chat-fs/domain/mimetypes"
	"chat-fs/errors"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

const (
	DefaultAPIURL = "https://discord.com/api/v10"
	userAgent     = "DiscordBot (chat-fs, 1.0)"
)

// APIError is a non successful answer of the Discord API, kept as received.
type APIError struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	// RetryAfter is set on rate limited answers, in seconds.
	RetryAfter float64 `json:"retry_after,omitempty"`
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("discord: %d %s (code %d, retry after %.1fs)", e.Status, e.Message, e.Code, e.RetryAfter)
	}
	return fmt.Sprintf("discord: %d %s (code %d)", e.Status, e.Message, e.Code)
}

// Unwrap lets callers test a missing message with errors.Is.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return errors.ErrMessageNotFound
	}
	return nil
}

type Transport struct {
	client  *http.Client
	log     *slog.Logger
	baseURL string
	token   string
	channel domain.ChannelID
}

func NewTransport(client *http.Client, log *slog.Logger, baseURL, token string, channel domain.ChannelID) *Transport {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Transport{
		client:  client,
		log:     log,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		channel: channel,
	}
}

type apiAttachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

type apiMessage struct {
	ID          string          `json:"id"`
	ChannelID   string          `json:"channel_id"`
	Content     string          `json:"content"`
	Attachments []apiAttachment `json:"attachments"`
}

type attachmentRef struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
}

type createMessage struct {
	Content     string          `json:"content"`
	Attachments []attachmentRef `json:"attachments"`
}

// SendBundle posts one message with every attachment as files[n]. The body
// is streamed, attachments are not held in memory.
func (t *Transport) SendBundle(ctx context.Context, attachments []domain.Upload, content string) (domain.MessageID, error) {
	payload := createMessage{Content: content, Attachments: make([]attachmentRef, 0, len(attachments))}
	for i, a := range attachments {
		payload.Attachments = append(payload.Attachments, attachmentRef{ID: i, Filename: a.Filename})
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	body, writer := io.Pipe()
	form := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeForm(form, payloadJSON, attachments))
	}()

	req, err := t.newRequest(ctx, http.MethodPost, fmt.Sprintf("/channels/%s/messages", t.channel), body)
	if err != nil {
		_ = body.Close()
		return 0, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var message apiMessage
	if err := t.do(req, &message); err != nil {
		_ = body.Close()
		return 0, err
	}
	return domain.ParseMessageID(message.ID)
}

func writeForm(form *multipart.Writer, payloadJSON []byte, attachments []domain.Upload) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="payload_json"`)
	header.Set("Content-Type", string(mimetypes.ApplicationJSON))
	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(payloadJSON); err != nil {
		return err
	}
	for i, a := range attachments {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[%d]"; filename="%s"`, i, escapeQuotes(a.Filename)))
		mimeType := a.MimeType
		if mimeType == "" {
			mimeType = string(mimetypes.OctetStream)
		}
		header.Set("Content-Type", mimeType)
		part, err := form.CreatePart(header)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, a.Data); err != nil {
			return fmt.Errorf("unable to write attachment %d: %w", i, err)
		}
	}
	return form.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func (t *Transport) FetchBundle(ctx context.Context, id domain.MessageID) (domain.Message, error) {
	req, err := t.newRequest(ctx, http.MethodGet, fmt.Sprintf("/channels/%s/messages/%s", t.channel, id), nil)
	if err != nil {
		return domain.Message{}, err
	}
	var message apiMessage
	if err := t.do(req, &message); err != nil {
		return domain.Message{}, err
	}

	result := domain.Message{ID: id, ChannelID: t.channel, Content: message.Content}
	for i, a := range message.Attachments {
		result.Attachments = append(result.Attachments, domain.Attachment{
			ID:        a.ID,
			MessageID: id,
			Filename:  a.Filename,
			MimeType:  a.ContentType,
			Size:      a.Size,
			Position:  i,
			URL:       a.URL,
		})
	}
	return result, nil
}

// FetchAttachment downloads the attachment from its CDN URL.
func (t *Transport) FetchAttachment(ctx context.Context, attachment domain.Attachment) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachment.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if attachment.Size > 0 && int64(len(data)) != attachment.Size {
		return nil, fmt.Errorf("attachment %s: got %d bytes, expected %d", attachment.ID, len(data), attachment.Size)
	}
	return data, nil
}

func (t *Transport) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bot "+t.token)
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func (t *Transport) do(req *http.Request, out any) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readAPIError(resp)
		t.log.Debug("Discord request failed", "method", req.Method, "path", req.URL.Path, "error", apiErr)
		return apiErr
	}
	if _, ok := mimetypes.Matches(resp.Header.Get("Content-Type"), mimetypes.ApplicationJSON); !ok {
		return fmt.Errorf("discord: unexpected content type %q", resp.Header.Get("Content-Type"))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(http.StatusText(resp.StatusCode))
	}
	return apiErr
}
