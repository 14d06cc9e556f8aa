package store

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delphine/shop/internal/domain"
)

const newsletterKey = "delphine-newsletter"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Newsletter is the subscriber registry. An email appears at most once across
// all statuses: resubscribing a lapsed address reactivates the existing row.
type Newsletter struct {
	mu    sync.RWMutex
	state Persister

	subscribers []domain.NewsletterSubscriber
}

func NewNewsletter(state Persister) *Newsletter { return &Newsletter{state: state} }

func (n *Newsletter) Rehydrate(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var subs []domain.NewsletterSubscriber
	if rehydrate(ctx, n.state, newsletterKey, &subs) {
		n.subscribers = subs
	}
}

func (n *Newsletter) Seed(ctx context.Context, subs []domain.NewsletterSubscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.subscribers) > 0 {
		return
	}
	n.subscribers = append(n.subscribers, subs...)
	n.persist(ctx)
}

func (n *Newsletter) persist(ctx context.Context) {
	persist(ctx, n.state, newsletterKey, n.subscribers)
}

// Subscribe normalizes the address, creates a new active row (prepended,
// newest-first) or reactivates an unsubscribed one in place. An address that
// is already active is rejected.
func (n *Newsletter) Subscribe(ctx context.Context, email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" || !emailRe.MatchString(normalized) {
		return ErrInvalidEmail
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.subscribers {
		if strings.ToLower(n.subscribers[i].Email) == normalized {
			if n.subscribers[i].Status == domain.SubscriberActive {
				return ErrAlreadySubscribed
			}
			n.subscribers[i].Status = domain.SubscriberActive
			n.subscribers[i].SubscribedAt = time.Now()
			n.persist(ctx)
			return nil
		}
	}
	sub := domain.NewsletterSubscriber{
		ID:           uuid.NewString(),
		Email:        normalized,
		SubscribedAt: time.Now(),
		Status:       domain.SubscriberActive,
	}
	n.subscribers = append([]domain.NewsletterSubscriber{sub}, n.subscribers...)
	n.persist(ctx)
	return nil
}

// Unsubscribe flips the row to unsubscribed; the row itself is retained.
func (n *Newsletter) Unsubscribe(ctx context.Context, id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.subscribers {
		if n.subscribers[i].ID == id {
			n.subscribers[i].Status = domain.SubscriberUnsubscribed
			n.persist(ctx)
			return true
		}
	}
	return false
}

func (n *Newsletter) All() []domain.NewsletterSubscriber {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]domain.NewsletterSubscriber, len(n.subscribers))
	copy(out, n.subscribers)
	return out
}

func (n *Newsletter) Active() []domain.NewsletterSubscriber {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := []domain.NewsletterSubscriber{}
	for _, s := range n.subscribers {
		if s.Status == domain.SubscriberActive {
			out = append(out, s)
		}
	}
	return out
}

func (n *Newsletter) Count() int {
	return len(n.Active())
}

func (n *Newsletter) IsSubscribed(email string) bool {
	normalized := strings.ToLower(strings.TrimSpace(email))
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, s := range n.subscribers {
		if strings.ToLower(s.Email) == normalized && s.Status == domain.SubscriberActive {
			return true
		}
	}
	return false
}

// ExportCSV lists active subscribers only. Same unquoted-field caveat as the
// orders export.
func (n *Newsletter) ExportCSV() string {
	var b strings.Builder
	b.WriteString("Email,Subscribed Date\n")
	for _, s := range n.Active() {
		fmt.Fprintf(&b, "%s,%s\n", s.Email, s.SubscribedAt.Format("2006-01-02"))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
