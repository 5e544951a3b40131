package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Config holds the HTTP gateway configuration
type Config struct {
	// APIBaseURL is the platform API root, e.g. https://api.telegram.org
	APIBaseURL string
	// APIToken authenticates the sending account
	APIToken string
	// HTTPTimeout bounds every network call
	HTTPTimeout time.Duration
	// SendRatePerSec throttles outbound message sends
	SendRatePerSec float64
}

type telegramGateway struct {
	cfg        Config
	client     *http.Client
	pollClient *http.Client
	limiter    *rate.Limiter
}

// NewTelegramGateway creates a Gateway backed by the platform's JSON HTTP API
func NewTelegramGateway(cfg Config) Gateway {
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.SendRatePerSec == 0 {
		cfg.SendRatePerSec = 6
	}
	return &telegramGateway{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		// Long polls are held open by the server for the requested timeout,
		// so they are bounded per call with a context deadline instead of a
		// client timeout.
		pollClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(cfg.SendRatePerSec), 1),
	}
}

// apiEnvelope is the platform's standard response wrapper
type apiEnvelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

// call posts a JSON payload to an API method and decodes the result.
// 429 responses are retried with exponential backoff; API-level errors come
// back as *DeliveryError.
func (g *telegramGateway) call(ctx context.Context, method string, payload interface{}, result interface{}) error {
	return g.callWith(ctx, g.client, method, payload, result)
}

func (g *telegramGateway) callWith(ctx context.Context, client *http.Client, method string, payload interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", strings.TrimRight(g.cfg.APIBaseURL, "/"), g.cfg.APIToken, method)

	var envelope apiEnvelope
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create %s request: %w", method, err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to call %s: %w", method, err)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("rate limited calling %s", method)
		}

		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode %s response: %w", method, err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = g.cfg.HTTPTimeout
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return err
	}

	if !envelope.OK {
		return classify(envelope.ErrorCode, envelope.Description)
	}

	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return nil
}

// classify maps a platform error to the engine's failure taxonomy.
// The mapping covers the identifiers observed from the live API; anything
// unrecognized stays unclassified rather than guessed.
func classify(code int, description string) *DeliveryError {
	e := &DeliveryError{Kind: FailureUnclassified, Code: code, Description: description}

	switch {
	case strings.Contains(description, "PEER_ID_INVALID"),
		strings.Contains(description, "USER_IS_BLOCKED"),
		strings.Contains(description, "bot can't initiate conversation"),
		code == http.StatusForbidden:
		e.Kind = FailureRecipientUnreachable
	case strings.Contains(description, "STARGIFT_USAGE_LIMITED"),
		strings.Contains(description, "STARGIFT_TRANSFER_UNAVAILABLE"),
		strings.Contains(description, "GIFT_SOLD_OUT"),
		strings.Contains(description, "BALANCE_TOO_LOW"):
		e.Kind = FailureItemUnavailable
	}
	return e
}

// chatRef renders a recipient the way the API expects: numeric id, or
// @handle when only the username is known
func chatRef(r Recipient) interface{} {
	if r.AccountID != 0 {
		return r.AccountID
	}
	return "@" + r.Handle
}

func (g *telegramGateway) SendMessage(ctx context.Context, to Recipient, text string, button *Button) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}

	payload := map[string]interface{}{
		"chat_id":                  chatRef(to),
		"text":                     text,
		"disable_web_page_preview": true,
	}
	if button != nil {
		payload["reply_markup"] = map[string]interface{}{
			"inline_keyboard": [][]map[string]interface{}{{{
				"text":    button.Text,
				"web_app": map[string]string{"url": button.URL},
			}}},
		}
	}

	return g.call(ctx, "sendMessage", payload, nil)
}

func (g *telegramGateway) TransferOwnedItem(ctx context.Context, itemMessageRef int64, toAccountID int64) error {
	payload := map[string]interface{}{
		"owned_gift_message_id": itemMessageRef,
		"new_owner_chat_id":     toAccountID,
	}
	return g.call(ctx, "transferGift", payload, nil)
}

func (g *telegramGateway) IssueSpecialItem(ctx context.Context, to Recipient, platformItemID int64) error {
	payload := map[string]interface{}{
		"chat_id": chatRef(to),
		"gift_id": platformItemID,
	}
	return g.call(ctx, "sendGift", payload, nil)
}

// feedEntry is the wire form of one upstream feed event
type feedEntry struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	TransferPrice *int64 `json:"transfer_price"`
	MessageID     int64  `json:"message_id"`
	IsGift        bool   `json:"is_gift"`
}

func (g *telegramGateway) ScanUpstreamFeed(ctx context.Context, sourceRef string, limit int) ([]GiftEvent, error) {
	payload := map[string]interface{}{
		"source": sourceRef,
		"limit":  limit,
	}

	var entries []json.RawMessage
	if err := g.call(ctx, "getGiftFeed", payload, &entries); err != nil {
		return nil, err
	}

	events := make([]GiftEvent, 0, len(entries))
	for _, raw := range entries {
		var entry feedEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("failed to decode feed entry: %w", err)
		}
		if !entry.IsGift {
			continue
		}
		events = append(events, GiftEvent{
			Identifier:    entry.ID,
			Label:         entry.Title,
			Slug:          entry.Slug,
			TransferPrice: entry.TransferPrice,
			MessageRef:    entry.MessageID,
			Raw:           raw,
		})
	}
	return events, nil
}

// update is the wire form of one entry of the update feed
type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Date int64  `json:"date"`
		Text string `json:"text"`
		From struct {
			ID        int64  `json:"id"`
			Username  string `json:"username"`
			FirstName string `json:"first_name"`
		} `json:"from"`
	} `json:"message"`
}

func (g *telegramGateway) PollContactEvents(ctx context.Context, offset int64, timeout time.Duration) ([]ContactEvent, int64, error) {
	payload := map[string]interface{}{
		"offset":          offset,
		"timeout":         int(timeout.Seconds()),
		"allowed_updates": []string{"message"},
	}

	// The deadline leaves the server room to hold the poll for the full
	// requested timeout before answering with an empty batch.
	pollCtx, cancel := context.WithTimeout(ctx, timeout+10*time.Second)
	defer cancel()

	var updates []update
	if err := g.callWith(pollCtx, g.pollClient, "getUpdates", payload, &updates); err != nil {
		return nil, offset, err
	}

	next := offset
	events := make([]ContactEvent, 0, len(updates))
	for _, u := range updates {
		if u.UpdateID >= next {
			next = u.UpdateID + 1
		}
		if u.Message == nil || !strings.HasPrefix(u.Message.Text, "/start") {
			continue
		}

		event := ContactEvent{
			UpdateID:  u.UpdateID,
			AccountID: u.Message.From.ID,
			Handle:    u.Message.From.Username,
			FirstName: u.Message.From.FirstName,
			At:        time.Unix(u.Message.Date, 0),
		}
		// deep-link payload: "/start <referrer token>"
		if fields := strings.Fields(u.Message.Text); len(fields) > 1 {
			event.ReferrerToken = fields[1]
		}
		events = append(events, event)
	}
	return events, next, nil
}
