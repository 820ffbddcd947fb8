package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tondrop/tondrop-go/internal/model"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram delivers messages through the Bot API sendMessage endpoint.
// Player IDs double as chat IDs, matching how the game bot addresses users.
type Telegram struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Ensure Telegram implements the interface
var _ Notifier = (*Telegram)(nil)

// NewTelegram creates a notifier for the given bot token
func NewTelegram(token string) *Telegram {
	return NewTelegramWithClient(token, defaultAPIBase, &http.Client{
		Timeout: 10 * time.Second,
	})
}

// NewTelegramWithClient creates a notifier with an explicit API base URL and
// HTTP client (for testing)
func NewTelegramWithClient(token, baseURL string, client *http.Client) *Telegram {
	return &Telegram{
		token:      token,
		baseURL:    baseURL,
		httpClient: client,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

// Send posts a sendMessage call for the player's chat
func (t *Telegram) Send(ctx context.Context, playerID model.PlayerID, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID: string(playerID),
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API returned status %d", resp.StatusCode)
	}
	return nil
}
