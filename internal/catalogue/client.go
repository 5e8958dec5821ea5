package catalogue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nikolayk812/cart-manager/internal/domain"
	"github.com/nikolayk812/cart-manager/internal/logger"
	"github.com/nikolayk812/cart-manager/internal/port"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/text/currency"
)

type Config struct {
	BaseURL        string
	Timeout        time.Duration
	BreakerTimeout time.Duration
	MaxFailures    uint32
}

type client struct {
	baseURL *url.URL
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[domain.Product]
	log     logger.Logger
}

// productResponse is the catalogue service representation of a product.
// Quantity is the stock available for sale.
type productResponse struct {
	ID       int64           `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// New returns a catalogue client. Lookups go through a circuit breaker that
// opens after cfg.MaxFailures consecutive failures; unknown products do not
// count as failures.
func New(cfg Config, httpClient *http.Client, log logger.Logger) (port.Catalogue, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse[%s]: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("catalogue base URL[%s] is not absolute", cfg.BaseURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	breaker := gobreaker.NewCircuitBreaker[domain.Product](gobreaker.Settings{
		Name:    "catalogue",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrProductNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &client{
		baseURL: baseURL,
		http:    httpClient,
		breaker: breaker,
		log:     log,
	}, nil
}

func (c *client) GetProductByID(ctx context.Context, productID int64) (domain.Product, error) {
	product, err := c.breaker.Execute(func() (domain.Product, error) {
		return c.getProduct(ctx, productID)
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("breaker.Execute: %w", err)
	}

	return product, nil
}

func (c *client) getProduct(ctx context.Context, productID int64) (domain.Product, error) {
	u := c.baseURL.JoinPath("products", strconv.FormatInt(productID, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("http.Do: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.Product{}, domain.ErrProductNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Product{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	var pr productResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return domain.Product{}, fmt.Errorf("json.Decode: %w", err)
	}
	if pr.ID != productID {
		return domain.Product{}, fmt.Errorf("catalogue returned product[%d] for product[%d]", pr.ID, productID)
	}

	product, err := mapProductResponseToDomain(pr)
	if err != nil {
		return domain.Product{}, fmt.Errorf("mapProductResponseToDomain: %w", err)
	}

	c.log.Debugf("catalogue product %d: stock %d, price %s %s",
		product.ID, product.Stock, product.Price.Amount, product.Price.Currency)

	return product, nil
}

func mapProductResponseToDomain(pr productResponse) (domain.Product, error) {
	parsedCurrency, err := currency.ParseISO(pr.Currency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", pr.Currency, err)
	}

	return domain.Product{
		ID:    pr.ID,
		Stock: pr.Quantity,
		Price: domain.Money{Amount: pr.Price, Currency: parsedCurrency},
	}, nil
}
