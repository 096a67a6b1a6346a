package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Static каталог в памяти, используется когда адрес внешнего каталога не задан
type Static struct {
	mu        sync.RWMutex
	media     map[int64]domain.MediaItem
	playlists map[int64]domain.Playlist
}

// NewStatic создает каталог с заданным содержимым
func NewStatic(media []domain.MediaItem, playlists []domain.Playlist) *Static {
	s := &Static{
		media:     make(map[int64]domain.MediaItem, len(media)),
		playlists: make(map[int64]domain.Playlist, len(playlists)),
	}
	for _, m := range media {
		s.media[m.ID] = m
	}
	for _, p := range playlists {
		s.playlists[p.ID] = p
	}
	return s
}

// AddMedia добавляет или заменяет медиафайл
func (s *Static) AddMedia(item domain.MediaItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media[item.ID] = item
}

// AddPlaylist добавляет или заменяет плейлист
func (s *Static) AddPlaylist(playlist domain.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[playlist.ID] = playlist
}

// GetMediaItem получает медиафайл по ID
func (s *Static) GetMediaItem(_ context.Context, id int64) (*domain.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.media[id]
	if !ok {
		return nil, fmt.Errorf("GetMediaItem id=%d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// GetPlaylist получает плейлист по ID
func (s *Static) GetPlaylist(_ context.Context, id int64) (*domain.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlist, ok := s.playlists[id]
	if !ok {
		return nil, fmt.Errorf("GetPlaylist id=%d: %w", id, ErrNotFound)
	}
	playlist.MediaIDs = append([]int64(nil), playlist.MediaIDs...)
	return &playlist, nil
}
