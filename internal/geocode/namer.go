package geocode

import (
	"context"
	"log"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

// PlaceNameStore persists resolved names. Satisfied by the session
// repository.
type PlaceNameStore interface {
	UpdateDwellPlaceName(dwellID, name string) error
}

// Namer fills in place names for unnamed dwells after a session ends.
// Callers run NameDwells in a goroutine; names show up on subsequent
// reads as lookups complete.
type Namer struct {
	client   *Client
	store    PlaceNameStore
	disabled bool
}

// NewNamer wires a namer. With disabled set, NameDwells is a no-op and no
// coordinate is ever sent anywhere.
func NewNamer(client *Client, store PlaceNameStore, disabled bool) *Namer {
	return &Namer{client: client, store: store, disabled: disabled}
}

// NameDwells looks up every unnamed dwell in order and writes names back
// as they arrive. Lookups are sequential: the client is rate limited to
// one request per second anyway, so parallelism buys nothing. Failures are
// logged and skipped; the dwell simply stays unnamed.
func (n *Namer) NameDwells(ctx context.Context, dwells []models.DwellPoint) {
	if n.disabled || n.client == nil || n.store == nil {
		return
	}

	for _, d := range dwells {
		if ctx.Err() != nil {
			return
		}
		if d.PlaceName != "" {
			continue
		}

		name, err := n.client.Lookup(ctx, d.Latitude, d.Longitude)
		if err != nil {
			log.Printf("[Geocoder] lookup failed for dwell %s: %v", d.ID, err)
			continue
		}
		if name == "" {
			continue
		}

		if err := n.store.UpdateDwellPlaceName(d.ID, name); err != nil {
			log.Printf("[Geocoder] failed to store name for dwell %s: %v", d.ID, err)
			continue
		}
		log.Printf("[Geocoder] named dwell %s: %s", d.ID, name)
	}
}
