package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var ErrDeliveryFailed = errors.New("whatsapp delivery failed")

// WhatsAppSender posts the otp_authentication template message through the
// Graph API. It satisfies user.OTPSender.
type WhatsAppSender struct {
	baseURL       string
	phoneNumberID string
	accessToken   string
	client        *http.Client
}

const defaultGraphBaseURL = "https://graph.facebook.com/v20.0"

func NewWhatsAppSender(phoneNumberID, accessToken string) *WhatsAppSender {
	return &WhatsAppSender{
		baseURL:       defaultGraphBaseURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		client:        &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWhatsAppSenderWithBaseURL is used by tests to point at a stub server.
func NewWhatsAppSenderWithBaseURL(baseURL, phoneNumberID, accessToken string) *WhatsAppSender {
	s := NewWhatsAppSender(phoneNumberID, accessToken)
	s.baseURL = baseURL
	return s
}

func (s *WhatsAppSender) Send(ctx context.Context, mobile, code string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                mobile,
		"type":              "template",
		"template": map[string]any{
			"name":     "otp_authentication",
			"language": map[string]string{"code": "en"},
			"components": []map[string]any{
				{
					"type":       "body",
					"parameters": []map[string]string{{"type": "text", "text": code}},
				},
				{
					"type":       "button",
					"sub_type":   "url",
					"index":      "0",
					"parameters": []map[string]string{{"type": "text", "text": code}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, s.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[notify][whatsapp] send failed mobile=%s err=%v", mobile, err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Printf("[notify][whatsapp] send rejected mobile=%s status=%d body=%s", mobile, resp.StatusCode, b)
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}
	return nil
}

// LogSender writes the code to the process log instead of delivering it.
// Used in development when WhatsApp credentials are absent.
type LogSender struct{}

func (LogSender) Send(_ context.Context, mobile, code string) error {
	log.Printf("[notify][dev] OTP for %s: %s", mobile, code)
	return nil
}
