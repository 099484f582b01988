package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
}

// NewTwilioSender constructs a TwilioSender.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a message to Twilio. Any transport or non-2xx failure
// surfaces as ErrSMSDeliveryFailed.
func (s *TwilioSender) Send(ctx context.Context, phone, message string) error {
	if s.accountSID == "" || s.authToken == "" {
		log.Println("[SMS] Twilio credentials not configured")
		return ErrSMSDeliveryFailed
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", s.from)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return ErrSMSDeliveryFailed
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[SMS] Failed to send message: %v", err)
		return ErrSMSDeliveryFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[SMS] Unexpected status: %d", resp.StatusCode)
		return ErrSMSDeliveryFailed
	}

	return nil
}

// NoopSender is used when SMS delivery is disabled; codes are still
// issued and can be read via the dev diagnostics route.
type NoopSender struct{}

// Send logs the message instead of delivering it.
func (NoopSender) Send(ctx context.Context, phone, message string) error {
	log.Printf("[SMS] delivery disabled, skipping send to %s", phone)
	return nil
}
