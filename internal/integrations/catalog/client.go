package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Client клиент внешнего каталога медиа и плейлистов
type Client struct {
	http *resty.Client
	log  Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		log: log,
	}
}

// GetMediaItem получает медиафайл по ID
func (c *Client) GetMediaItem(ctx context.Context, id int64) (*domain.MediaItem, error) {
	var item MediaItemResponse

	if err := c.get(ctx, fmt.Sprintf("/internal/media/%d", id), &item); err != nil {
		return nil, fmt.Errorf("GetMediaItem id=%d: %w", id, err)
	}

	return item.toDomain(), nil
}

// GetPlaylist получает плейлист по ID
func (c *Client) GetPlaylist(ctx context.Context, id int64) (*domain.Playlist, error) {
	var playlist PlaylistResponse

	if err := c.get(ctx, fmt.Sprintf("/internal/playlists/%d", id), &playlist); err != nil {
		return nil, fmt.Errorf("GetPlaylist id=%d: %w", id, err)
	}

	return playlist.toDomain(), nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	var apiErr ErrorResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		c.log.Error("Catalog request %s failed: %v", path, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}

	// Обработка статус-кодов
	switch resp.StatusCode() {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: bad request: %s", ErrInvalidResponse, apiErr.Message)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode(), resp.String())
	}
}
