// Package resend sends transactional order emails through the Resend HTTP
// API. An unconfigured gateway (no API key) reports every send as skipped,
// which callers treat as success.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/delphine/shop/internal/domain"
)

const defaultBaseURL = "https://api.resend.com"

type Gateway struct {
	key        string
	from       string
	baseURL    string
	httpClient *http.Client
}

func NewGateway(key, from string) *Gateway {
	if from == "" {
		from = "Delphine <orders@delphineswimwear.com>"
	}
	return &Gateway{
		key:        key,
		from:       from,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResp struct {
	ID string `json:"id"`
}

type errResp struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

func (g *Gateway) Notify(ctx context.Context, event domain.NotifyEvent, order domain.Order) domain.NotifyResult {
	if g.key == "" {
		log.Warn().Str("event", string(event)).Msg("RESEND_API_KEY not configured, email skipped")
		return domain.NotifyResult{Success: true, Skipped: true}
	}
	if order.UserEmail == "" {
		return domain.NotifyResult{Success: false, Error: "missing order recipient"}
	}
	subject, html, err := renderEmail(event, order)
	if err != nil {
		return domain.NotifyResult{Success: false, Error: err.Error()}
	}

	buf, err := json.Marshal(sendReq{From: g.from, To: []string{order.UserEmail}, Subject: subject, HTML: html})
	if err != nil {
		return domain.NotifyResult{Success: false, Error: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/emails", bytes.NewReader(buf))
	if err != nil {
		return domain.NotifyResult{Success: false, Error: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+g.key)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.httpClient.Do(req)
	if err != nil {
		return domain.NotifyResult{Success: false, Error: fmt.Sprintf("resend request: %v", err)}
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		var e errResp
		if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
			return domain.NotifyResult{Success: false, Error: fmt.Sprintf("resend status %d: %s", res.StatusCode, e.Message)}
		}
		return domain.NotifyResult{Success: false, Error: fmt.Sprintf("resend status %d: %s", res.StatusCode, string(body))}
	}
	var sr sendResp
	_ = json.NewDecoder(res.Body).Decode(&sr)
	log.Info().Str("event", string(event)).Str("to", order.UserEmail).Str("id", sr.ID).Msg("email sent")
	return domain.NotifyResult{Success: true}
}
