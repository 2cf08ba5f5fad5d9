package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"nube-alta-cafe/models"
)

// CatalogChannel is the NOTIFY channel fed by the notify_catalog_change trigger
const CatalogChannel = "catalog_changes"

const (
	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// ListenCatalogChanges holds a dedicated connection on LISTEN catalog_changes and
// forwards every notification as a ChangeEvent. The connection is re-established
// with exponential backoff. The returned channel closes when ctx is done.
func ListenCatalogChanges(ctx context.Context, connStr string) <-chan models.ChangeEvent {
	events := make(chan models.ChangeEvent, 16)

	go func() {
		defer close(events)
		delay := minReconnectDelay

		for ctx.Err() == nil {
			err := listenOnce(ctx, connStr, events, func() { delay = minReconnectDelay })
			if ctx.Err() != nil {
				return
			}
			log.Printf("⚠️ Catalog listener disconnected: %v (retrying in %s)", err, delay)

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay *= 2
			if delay > maxReconnectDelay {
				delay = maxReconnectDelay
			}
		}
	}()

	return events
}

func listenOnce(ctx context.Context, connStr string, events chan<- models.ChangeEvent, connected func()) error {
	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+CatalogChannel); err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	connected()
	log.Printf("🔄 Listening for catalog changes on %s", CatalogChannel)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return err
		}
		select {
		case events <- models.ChangeEvent{Table: n.Payload}:
		default:
			// A reload is already pending; it will observe this change too.
		}
	}
}
