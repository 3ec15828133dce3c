package service

import "context"

//go:generate mockgen -source=notifier.go -destination=../../../mocks/notifier.go -package=mocks

// Notifier delivers a text message to a chat owner. Both chat transports
// implement it; the scheduler uses it for reminder delivery.
type Notifier interface {
	SendMessage(ctx context.Context, ownerID, text string) error
}
