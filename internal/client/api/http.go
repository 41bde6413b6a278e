package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dsmirnov/stockfolio/internal/common"
)

// HTTPClient implements Client over the server's JSON API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do runs one request and decodes the JSON response into out (if non-nil).
// Transport failures map to ErrUnavailable, response statuses to the
// package's sentinel errors.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: bad response body: %v", ErrServer, err)
	}
	return nil
}

// statusError maps a non-2xx response to a sentinel error. The 400 split
// between "email taken" and plain bad input relies on the register endpoint's
// fixed error string.
func statusError(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		if body.Error == "Email already exists" {
			return ErrEmailTaken
		}
		return ErrInvalidInput
	default:
		return fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) VerifySession(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *HTTPClient) ListStocks(ctx context.Context, page int, query string) (*StockPage, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if query != "" {
		values.Set("q", query)
	}
	path := "/api/stocks"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var result StockPage
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetStock(ctx context.Context, symbol string) (*Stock, error) {
	var stock Stock
	if err := c.do(ctx, http.MethodGet, "/api/stocks/"+url.PathEscape(symbol), nil, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}

func (c *HTTPClient) ListFilings(ctx context.Context, symbol string) ([]*Filing, error) {
	var resp struct {
		Filings []*Filing `json:"filings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/stocks/"+url.PathEscape(symbol)+"/filings", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Filings, nil
}

func (c *HTTPClient) FilingDocumentURL(ctx context.Context, filingID string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/filings/"+url.PathEscape(filingID)+"/document", nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) Portfolio(ctx context.Context) ([]*PortfolioItem, error) {
	var resp struct {
		Items []*PortfolioItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/portfolio", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *HTTPClient) AddToPortfolio(ctx context.Context, symbol string, shares float64) (*PortfolioItem, error) {
	body := struct {
		Symbol string  `json:"symbol"`
		Shares float64 `json:"shares"`
	}{Symbol: symbol, Shares: shares}

	var item PortfolioItem
	if err := c.do(ctx, http.MethodPost, "/api/portfolio", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *HTTPClient) RemoveFromPortfolio(ctx context.Context, symbol string) error {
	return c.do(ctx, http.MethodDelete, "/api/portfolio/"+url.PathEscape(symbol), nil, nil)
}
