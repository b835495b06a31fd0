// Package storage defines the intent repository contract. The router only
// needs Save and Get; retention and deletion are a collaborator's concern.
package storage

import (
	"context"

	"github.com/railpath-hq/railrouter/pkg/models"
)

// IntentRepository persists payment intents. Save overwrites any previous
// record with the same identifier.
type IntentRepository interface {
	Save(ctx context.Context, intent *models.Intent) error
	Get(ctx context.Context, id string) (*models.Intent, bool, error)
}
