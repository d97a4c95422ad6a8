package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordertracking/internal/domain"
)

const maxResponseBytes = 1 << 20

// Transport — низкоуровневый доступ к каталогу. Ошибки — только RemoteFailure.
type Transport interface {
	GetProduct(ctx context.Context, productID string) (domain.ProductView, error)
	ReduceStock(ctx context.Context, productID string, quantity int) (domain.ProductView, error)
	IncreaseStock(ctx context.Context, productID string, quantity int) (domain.ProductView, error)
}

// Пути API каталога.
const (
	productsPath      = "/products/"
	reduceStockPath   = "/products/reduceStock"
	increaseStockPath = "/products/increaseStock"
)

// productPath — путь товара с экранированным ID, как в запросе к каталогу.
func productPath(productID string) string {
	return productsPath + url.PathEscape(productID)
}

// HTTPClient обращается к каталогу по HTTP/JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// ClientOption настраивает HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient подменяет http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

// NewHTTPClient создаёт клиента каталога для baseURL (например, http://catalog:8081).
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        50,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProduct запрашивает товар. Отсутствие товара — StructuredFailure с кодом 404.
func (c *HTTPClient) GetProduct(ctx context.Context, productID string) (domain.ProductView, error) {
	path := productPath(productID)
	view, found, err := c.do(ctx, "fetch", http.MethodGet, path, nil)
	if err != nil {
		return domain.ProductView{}, err
	}
	if !found {
		return domain.ProductView{}, &StructuredFailure{
			Operation:  "fetch",
			StatusCode: http.StatusNotFound,
			Envelope: domain.ErrorEnvelope{
				Status:  http.StatusNotFound,
				Error:   "NOT_FOUND",
				Message: "Product not found! ID: " + productID,
				Path:    path,
			},
		}
	}
	return view, nil
}

// ReduceStock списывает остаток (резервирование).
func (c *HTTPClient) ReduceStock(ctx context.Context, productID string, quantity int) (domain.ProductView, error) {
	return c.mutate(ctx, "reserve", reduceStockPath, productID, quantity)
}

// IncreaseStock возвращает остаток (компенсация).
func (c *HTTPClient) IncreaseStock(ctx context.Context, productID string, quantity int) (domain.ProductView, error) {
	return c.mutate(ctx, "release", increaseStockPath, productID, quantity)
}

func (c *HTTPClient) mutate(ctx context.Context, operation, path, productID string, quantity int) (domain.ProductView, error) {
	body, err := json.Marshal(stockRequest{ProductID: wireID(productID), Quantity: quantity})
	if err != nil {
		return domain.ProductView{}, &UnavailableFailure{Operation: operation, Path: path, Cause: err}
	}
	view, found, err := c.do(ctx, operation, http.MethodPut, path, body)
	if err != nil {
		return domain.ProductView{}, err
	}
	if !found {
		return domain.ProductView{}, &UnavailableFailure{
			Operation: operation,
			Path:      path,
			Cause:     fmt.Errorf("empty response body"),
		}
	}
	return view, nil
}

// do выполняет запрос. found=false означает успешный ответ с пустым телом или null.
func (c *HTTPClient) do(ctx context.Context, operation, method, path string, body []byte) (domain.ProductView, bool, error) {
	unavailable := func(cause error) error {
		return &UnavailableFailure{Operation: operation, Path: path, Cause: cause}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domain.ProductView{}, false, unavailable(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.ProductView{}, false, unavailable(err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.ProductView{}, false, unavailable(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var env domain.ErrorEnvelope
		if err := json.Unmarshal(payload, &env); err != nil || env.IsZero() {
			return domain.ProductView{}, false, unavailable(fmt.Errorf("status %d without error body", resp.StatusCode))
		}
		return domain.ProductView{}, false, &StructuredFailure{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Envelope:   env,
		}
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.ProductView{}, false, nil
	}

	var dto productDTO
	if err := json.Unmarshal(trimmed, &dto); err != nil {
		return domain.ProductView{}, false, unavailable(fmt.Errorf("decode product: %w", err))
	}
	return dto.view(), true, nil
}

type stockRequest struct {
	ProductID wireID `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type productDTO struct {
	ID            wireID          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Active        bool            `json:"active"`
}

func (d productDTO) view() domain.ProductView {
	return domain.ProductView{
		ID:            string(d.ID),
		Name:          d.Name,
		Price:         d.Price,
		StockQuantity: d.StockQuantity,
		Active:        d.Active,
	}
}

// wireID — идентификатор товара; числовые ID каталог передаёт JSON-числом.
type wireID string

func (id wireID) MarshalJSON() ([]byte, error) {
	if isNumericID(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *wireID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}

func isNumericID(s string) bool {
	if s == "" || len(s) > 18 || (len(s) > 1 && s[0] == '0') {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
