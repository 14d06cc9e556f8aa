package domain

import "time"

type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

type NewsletterSubscriber struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	SubscribedAt time.Time        `json:"subscribedAt"`
	Status       SubscriberStatus `json:"status"`
}
