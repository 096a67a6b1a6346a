package validator

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Catalog источник медиафайлов и плейлистов
type Catalog interface {
	GetMediaItem(ctx context.Context, id int64) (*domain.MediaItem, error)
	GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error)
}
