package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	apperrors "storefront/internal/errors"
	"storefront/internal/util"

	"go.uber.org/zap"
)

const sendPath = "/send"

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// MessagePayload is the gateway's text message request body
type MessagePayload struct {
	MessageType string `json:"messageType"`
	To          string `json:"to"`
	Body        string `json:"body"`
	Delay       int    `json:"delay"`
}

// Client sends text messages through the WhatsApp gateway proxy
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default transport client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a gateway client. baseURL is the proxy prefix that
// "/send" is appended to.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, apperrors.NewConfigError("WhatsApp API key not configured")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     util.GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FormatPhoneNumber strips a leading '+' so the gateway receives digits only
func FormatPhoneNumber(phone string) string {
	return strings.TrimPrefix(phone, "+")
}

// ValidatePhoneNumber reports whether phone is an E.164-style number
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Send delivers a single text message. It never retries.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	ctx, span := util.StartSpan(ctx, "Client.Send")
	defer span.End()

	start := time.Now()
	defer func() {
		util.WhatsAppSendLatency.Observe(time.Since(start).Seconds())
	}()

	payload := MessagePayload{
		MessageType: "text",
		To:          FormatPhoneNumber(phone),
		Body:        message,
		Delay:       1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		util.WhatsAppMessagesFailedTotal.WithLabelValues("transport").Inc()
		c.logger.Warn("WhatsApp gateway unreachable",
			zap.String("to", payload.To),
			zap.Error(err))
		return apperrors.NewDeliveryError("failed to send WhatsApp message", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		util.WhatsAppMessagesFailedTotal.WithLabelValues("status").Inc()
		msg := parseErrorMessage(resp)
		c.logger.Warn("WhatsApp gateway rejected message",
			zap.String("to", payload.To),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return apperrors.NewDeliveryError(msg, resp.StatusCode, nil)
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	util.WhatsAppMessagesSentTotal.Inc()
	c.logger.Debug("WhatsApp message sent", zap.String("to", payload.To))
	return nil
}

// parseErrorMessage prefers the gateway's {"message": ...} body and falls
// back to the status line.
func parseErrorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(resp.Body)

	var errResp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}

	return fmt.Sprintf("WhatsApp API error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
