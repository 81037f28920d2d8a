package model

import (
	"encoding/base64"
	"errors"
	"strings"
)

// Subscription is a Web Push subscription as delivered by the browser.
type Subscription struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Endpoint) == "" {
		return errors.New("subscription: missing endpoint")
	}
	return nil
}

// UserKey derives the stable user-record key for this subscription.
func (s Subscription) UserKey() string {
	return "user:" + base64.StdEncoding.EncodeToString([]byte(s.Endpoint))
}

// PushPayload is the fixed wire schema for push messages. Ad hoc payload
// shapes are rejected at the boundary.
type PushPayload struct {
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Tag     string         `json:"tag,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Vibrate []int          `json:"vibrate,omitempty"`
}

func (p PushPayload) Validate() error {
	if p.Title == "" {
		return errors.New("push payload: missing title")
	}
	if p.Body == "" {
		return errors.New("push payload: missing body")
	}
	return nil
}

// TaskSnapshot is the trimmed task view a client syncs to the server so the
// digest job can recompute due-ness without the client online.
type TaskSnapshot struct {
	Title          string `json:"title"`
	DueTime        string `json:"dueTime"`
	CompletedToday bool   `json:"completedToday"`
}

// UserRecord ties a push subscription to the owner's synced task snapshots.
type UserRecord struct {
	Subscription Subscription   `json:"subscription"`
	Tasks        []TaskSnapshot `json:"tasks"`
}
