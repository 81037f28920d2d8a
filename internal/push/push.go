// Package push sends Web Push messages to browser subscriptions.
package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

// ErrSubscriptionGone marks a permanently dead delivery target. Callers
// must purge the owning record; every other error is transient.
var ErrSubscriptionGone = errors.New("push subscription gone")

type Sender interface {
	Send(ctx context.Context, sub model.Subscription, payload model.PushPayload) error
}

// WebPush is the VAPID-authenticated Sender.
type WebPush struct {
	publicKey  string
	privateKey string
	contact    string
}

func NewWebPush(publicKey, privateKey, contact string) (*WebPush, error) {
	if publicKey == "" || privateKey == "" {
		return nil, errors.New("push: VAPID keys not set")
	}
	if contact == "" {
		contact = "mailto:you@example.com"
	}
	return &WebPush{publicKey: publicKey, privateKey: privateKey, contact: contact}, nil
}

func (w *WebPush) Send(ctx context.Context, sub model.Subscription, payload model.PushPayload) error {
	if err := payload.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		Subscriber:      w.contact,
		VAPIDPublicKey:  w.publicKey,
		VAPIDPrivateKey: w.privateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		return ErrSubscriptionGone
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}

// GenerateVAPIDKeys mints a fresh key pair for server configuration.
func GenerateVAPIDKeys() (privateKey, publicKey string, err error) {
	return webpush.GenerateVAPIDKeys()
}
