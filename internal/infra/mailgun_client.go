package infra

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MailgunClient sends HTML mail through the Mailgun messages endpoint.
type MailgunClient struct {
	baseURL    string
	domain     string
	apiKey     string
	sender     string
	httpClient *http.Client
}

func NewMailgunClient(baseURL, domain, apiKey, sender string, timeout time.Duration) *MailgunClient {
	if baseURL == "" {
		baseURL = "https://api.mailgun.net"
	}
	return &MailgunClient{
		baseURL:    baseURL,
		domain:     domain,
		apiKey:     apiKey,
		sender:     sender,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *MailgunClient) Send(ctx context.Context, subject, htmlBody, to string) error {
	form := url.Values{}
	form.Set("from", c.sender)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("html", htmlBody)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailgun returned status %d", resp.StatusCode)
	}
	return nil
}
