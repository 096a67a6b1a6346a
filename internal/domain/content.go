package domain

// ContentType тип выбранного контента
type ContentType string

const (
	ContentMedia    ContentType = "media"
	ContentPlaylist ContentType = "playlist"
)

// PlaybackMode режим воспроизведения в подслотах
type PlaybackMode string

const (
	// PlaybackFixed контент играет все время занятых подслотов
	PlaybackFixed PlaybackMode = "fixed"
	// PlaybackStack контент играет заданное время, распределенное по подслотам
	PlaybackStack PlaybackMode = "stack"
)

// Client рекламодатель
type Client struct {
	ID   int64
	Name string
}

// MediaItem медиафайл каталога, всегда принадлежит одному клиенту
type MediaItem struct {
	ID              int64
	ClientID        int64
	Name            string
	DurationSeconds int
}

// Playlist плейлист каталога
// ClientID == nil означает, что в плейлисте медиа нескольких клиентов
type Playlist struct {
	ID       int64
	Name     string
	ClientID *int64
	MediaIDs []int64
}

// IsSingleClient true, если плейлист принадлежит одному клиенту
func (p *Playlist) IsSingleClient() bool {
	return p.ClientID != nil
}

// ParseContentType конвертирует строку в тип контента
func ParseContentType(s string) (ContentType, bool) {
	switch ContentType(s) {
	case ContentMedia, ContentPlaylist:
		return ContentType(s), true
	}
	return "", false
}

// ParsePlaybackMode конвертирует строку в режим воспроизведения
func ParsePlaybackMode(s string) (PlaybackMode, bool) {
	switch PlaybackMode(s) {
	case PlaybackFixed, PlaybackStack:
		return PlaybackMode(s), true
	}
	return "", false
}
