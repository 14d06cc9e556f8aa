// Package store holds the client-state layer of the shop: catalog, cart,
// orders, identity, wishlist and newsletter, plus the checkout coordinator
// that ties them together. Each store owns its collection exclusively, keeps
// it in memory and writes it through to a namespaced key in the persistence
// backend as one JSON document.
//
// Stores follow a two-phase lifecycle: constructed empty, then Rehydrate
// loads the persisted snapshot. Reads before rehydration return the empty
// default rather than erroring.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/delphine/shop/internal/domain"
)

// Persister is the key → JSON document storage behind every store. Writes are
// whole-collection and last-writer-wins.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrAlreadySubscribed  = errors.New("already subscribed")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingContact     = errors.New("name and email are required")
	ErrInvalidStatus      = errors.New("invalid status")
)

// rehydrate loads one snapshot into v. A missing key leaves the default in
// place; a malformed document is discarded and rebuilt on the next write,
// never propagated as a startup failure.
func rehydrate(ctx context.Context, p Persister, key string, v any) bool {
	raw, err := p.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("state load failed, starting empty")
		}
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding malformed state")
		return false
	}
	return true
}

func persist(ctx context.Context, p Persister, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("state marshal")
		return
	}
	if err := p.Save(ctx, key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("state save failed")
	}
}
