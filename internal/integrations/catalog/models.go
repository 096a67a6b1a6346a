package catalog

import "github.com/m04kA/DOOH-InventoryService/internal/domain"

// MediaItemResponse медиафайл из каталога
type MediaItemResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"client_id"`
	Name            string `json:"name"`
	DurationSeconds int    `json:"duration_seconds"`
}

// PlaylistResponse плейлист из каталога
// client_id отсутствует, если в плейлисте медиа нескольких клиентов
type PlaylistResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ClientID *int64  `json:"client_id"`
	MediaIDs []int64 `json:"media_ids"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (r *MediaItemResponse) toDomain() *domain.MediaItem {
	return &domain.MediaItem{
		ID:              r.ID,
		ClientID:        r.ClientID,
		Name:            r.Name,
		DurationSeconds: r.DurationSeconds,
	}
}

func (r *PlaylistResponse) toDomain() *domain.Playlist {
	return &domain.Playlist{
		ID:       r.ID,
		Name:     r.Name,
		ClientID: r.ClientID,
		MediaIDs: append([]int64(nil), r.MediaIDs...),
	}
}
