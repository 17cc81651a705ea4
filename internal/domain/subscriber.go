package domain

import "time"

// Subscriber is one opted-in notification recipient. Email is stored
// normalized (trimmed, lower-cased).
type Subscriber struct {
	Email        string
	SubscribedAt time.Time
}

// SubscribeOutcome is the non-error result of a subscribe request.
type SubscribeOutcome string

const (
	SubscribeAccepted          SubscribeOutcome = "accepted"
	SubscribeAlreadySubscribed SubscribeOutcome = "already_subscribed"
)

func (o SubscribeOutcome) String() string { return string(o) }
