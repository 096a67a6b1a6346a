package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/catalog"
)

// Service определяет единственного клиента выбранного контента
type Service struct {
	catalog Catalog
}

// NewService создает валидатор
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// ResolveClient возвращает ID клиента, которому принадлежит весь выбранный контент
//
// media: все медиафайлы должны принадлежать одному клиенту.
// playlist: ровно один плейлист, принадлежащий одному клиенту.
// Результат зависит только от содержимого каталога.
func (s *Service) ResolveClient(ctx context.Context, contentType domain.ContentType, contentIDs []int64) (int64, error) {
	switch contentType {
	case domain.ContentMedia:
		return s.resolveMedia(ctx, contentIDs)
	case domain.ContentPlaylist:
		return s.resolvePlaylist(ctx, contentIDs)
	default:
		return 0, fmt.Errorf("%w: unknown content type %q", ErrNoContentSelected, contentType)
	}
}

func (s *Service) resolveMedia(ctx context.Context, mediaIDs []int64) (int64, error) {
	if len(mediaIDs) == 0 {
		return 0, ErrNoContentSelected
	}

	var clientID int64
	for i, id := range mediaIDs {
		item, err := s.catalog.GetMediaItem(ctx, id)
		if err != nil {
			return 0, classify(err)
		}

		if i == 0 {
			clientID = item.ClientID
			continue
		}
		if item.ClientID != clientID {
			return 0, fmt.Errorf("%w: media id=%d belongs to client %d, media id=%d to client %d",
				ErrMultiClientContent, mediaIDs[0], clientID, id, item.ClientID)
		}
	}

	return clientID, nil
}

func (s *Service) resolvePlaylist(ctx context.Context, playlistIDs []int64) (int64, error) {
	if len(playlistIDs) == 0 {
		return 0, ErrNoContentSelected
	}
	if len(playlistIDs) > 1 {
		return 0, fmt.Errorf("%w: exactly one playlist per booking, got %d", ErrMultiClientContent, len(playlistIDs))
	}

	playlist, err := s.catalog.GetPlaylist(ctx, playlistIDs[0])
	if err != nil {
		return 0, classify(err)
	}

	if !playlist.IsSingleClient() {
		return 0, fmt.Errorf("%w: playlist id=%d mixes clients", ErrMultiClientContent, playlist.ID)
	}

	return *playlist.ClientID, nil
}

func classify(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrContentNotFound, err)
	}
	return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
}
