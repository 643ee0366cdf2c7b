package contracts

import (
	"context"

	"github.com/meysamhadeli/tierlist/tierlist/models"
)

type ITimelineLoader interface {
	Load(ctx context.Context, path string) (*models.Timeline, error)
	LoadBytes(path string, content []byte) (*models.Timeline, error)
	CacheEnabled() bool
	GetCacheStats() (map[string]interface{}, error)
	ClearCache() error
}
