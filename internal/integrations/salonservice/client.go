package salonservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache опциональный read-through кэш справочных данных.
// Любая ошибка Get трактуется как промах: клиент идёт по HTTP и не падает
// из-за недоступного кэша.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// Client клиент для работы со справочным сервисом салонов
// (салоны, услуги, мастера)
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      Cache
	log        Logger
}

// NewClient создает новый экземпляр клиента справочного сервиса
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// WithCache подключает кэш справочных данных.
// Резолвер доступности перечитывает салон и услугу на каждом запросе,
// поэтому кэшируются именно эти две выборки.
func (c *Client) WithCache(cache Cache) *Client {
	c.cache = cache
	return c
}

// GetSalon получает салон по ID
func (c *Client) GetSalon(ctx context.Context, salonID int64) (*Salon, error) {
	key := fmt.Sprintf("salonservice:salon:%d", salonID)

	if c.cache != nil {
		var cached Salon
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	url := fmt.Sprintf("%s/internal/salons/%d", c.baseURL, salonID)

	var salon Salon
	if err := c.getJSON(ctx, url, &salon, ErrSalonNotFound); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, salon); err != nil {
			c.log.Warn("GetSalon: failed to cache salon id=%d: %v", salonID, err)
		}
	}

	return &salon, nil
}

// GetService получает услугу салона по ID
func (c *Client) GetService(ctx context.Context, salonID, serviceID int64) (*Service, error) {
	key := fmt.Sprintf("salonservice:service:%d:%d", salonID, serviceID)

	if c.cache != nil {
		var cached Service
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	url := fmt.Sprintf("%s/internal/salons/%d/services/%d", c.baseURL, salonID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, service); err != nil {
			c.log.Warn("GetService: failed to cache service id=%d: %v", serviceID, err)
		}
	}

	return &service, nil
}

// GetStaffMembers получает мастеров салона по списку ID одним запросом
func (c *Client) GetStaffMembers(ctx context.Context, salonID int64, ids []int64) ([]StaffMember, error) {
	if len(ids) == 0 {
		return []StaffMember{}, nil
	}

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = strconv.FormatInt(id, 10)
	}

	url := fmt.Sprintf("%s/internal/salons/%d/staff?ids=%s", c.baseURL, salonID, strings.Join(idStrs, ","))

	var staff []StaffMember
	if err := c.getJSON(ctx, url, &staff, ErrStaffNotFound); err != nil {
		return nil, err
	}

	return staff, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
