package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ahmetyavas01/SahaBul/internal/domain/repository"
	"github.com/ahmetyavas01/SahaBul/pkg/logger"
)

// Dispatcher fans push notices out to the Expo push service using the
// tokens stored on user profiles. Delivery is best-effort end to end:
// every failure is logged and swallowed, nothing propagates to the
// workflow that triggered the notice.
type Dispatcher struct {
	userRepo   repository.UserRepository
	endpoint   string
	httpClient *http.Client
}

type expoPushMessage struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

func NewDispatcher(userRepo repository.UserRepository, endpoint string) *Dispatcher {
	return &Dispatcher{
		userRepo: userRepo,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers a notice to every listed user that has a push token.
// Users without a token are skipped silently.
func (d *Dispatcher) Send(ctx context.Context, userIDs []string, title, body string, data map[string]interface{}) {
	if d.endpoint == "" || len(userIDs) == 0 {
		return
	}

	tokens, err := d.userRepo.GetPushTokens(ctx, userIDs)
	if err != nil {
		logger.LogNotificationError(userIDs, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	messages := make([]expoPushMessage, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, expoPushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		})
	}

	payload, err := json.Marshal(messages)
	if err != nil {
		logger.LogNotificationError(userIDs, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		logger.LogNotificationError(userIDs, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		logger.LogNotificationError(userIDs, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logger.LogNotificationError(userIDs, fmt.Errorf("expo push returned status %d", resp.StatusCode))
		return
	}

	logger.Debug("Push sent to %d token(s): %s", len(tokens), title)
}
