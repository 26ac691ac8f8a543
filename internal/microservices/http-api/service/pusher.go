package service

import "context"

// EventReceiveNotification is the push event name clients listen for
const EventReceiveNotification = "ReceiveNotification"

// Pusher delivers a payload to every live connection of the given users.
// Delivery is best-effort: users without connections are skipped silently.
type Pusher interface {
	Push(ctx context.Context, userID, event string, payload any) error
	PushMany(ctx context.Context, userIDs []string, event string, payload any) error
}

// NopPusher drops every push. Used when no delivery channel is wired.
type NopPusher struct{}

func (NopPusher) Push(context.Context, string, string, any) error       { return nil }
func (NopPusher) PushMany(context.Context, []string, string, any) error { return nil }
