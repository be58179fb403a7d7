// Package marketplace is the REST client for the marketplace API.
package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"

	"wardrobe101/internal/domain/entity"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

// Client implements usecase.MarketplaceAPI and usecase.OrderRecorder over HTTP.
type Client struct {
	http *resty.Client
}

// errorBody accepts both a string detail and FastAPI's list-of-problems detail.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Code   string          `json:"code"`
}

func (b *errorBody) message() string {
	var s string
	if json.Unmarshal(b.Detail, &s) == nil {
		return s
	}
	return ""
}

type uploadResponse struct {
	URL string `json:"url"`
}

// NewClient targets baseURL, e.g. http://localhost:8001/api.
func NewClient(baseURL string, timeout time.Duration) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: httpClient}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&errorBody{})
}

// check maps a transport error or a non-2xx response onto the error taxonomy.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return errors.Network(err)
	}
	if !resp.IsError() {
		return nil
	}
	detail := ""
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		detail = body.message()
	}
	logger.Debug("%s %s -> %d %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), detail)
	return errors.ServerRejected(resp.StatusCode(), detail)
}

func (c *Client) UploadImage(ctx context.Context, image *entity.DraftImage) (string, error) {
	if image == nil || len(image.Data) == 0 {
		return "", errors.BadRequest("File is empty", nil)
	}
	name := image.Filename
	if name == "" {
		name = "image" + mimetype.Detect(image.Data).Extension()
	}

	var out uploadResponse
	resp, err := c.request(ctx).
		SetMultipartField("file", name, mimetype.Detect(image.Data).String(), bytes.NewReader(image.Data)).
		SetResult(&out).
		Post("/upload")
	if err := check(resp, err); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", errors.ServerRejected(resp.StatusCode(), "Upload returned no URL")
	}
	return out.URL, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*entity.AuthToken, error) {
	var out entity.AuthToken
	resp, err := c.request(ctx).
		SetFormData(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/auth/login")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignupRequest is the signup body.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*entity.User, error) {
	var out entity.User
	resp, err := c.request(ctx).SetBody(req).SetResult(&out).Post("/auth/signup")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateItem(ctx context.Context, token string, payload entity.ItemPayload) (*entity.Item, error) {
	var out entity.Item
	resp, err := c.request(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&out).
		Post("/items")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListItems(ctx context.Context, query entity.ItemQuery) ([]*entity.Item, error) {
	params := map[string]string{}
	set := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}
	set("seller_id", query.SellerID)
	set("category", query.Category)
	set("type", query.Type)
	set("size", query.Size)
	set("q", query.Search)
	if query.Limit > 0 {
		params["limit"] = strconv.Itoa(query.Limit)
		if query.Page > 0 {
			params["page"] = strconv.Itoa(query.Page)
		}
	}

	out := []*entity.Item{}
	resp, err := c.request(ctx).SetQueryParams(params).SetResult(&out).Get("/items")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetItem(ctx context.Context, id entity.ItemID) (*entity.Item, error) {
	var out entity.Item
	resp, err := c.request(ctx).
		SetPathParam("id", string(id)).
		SetResult(&out).
		Get("/items/{id}")
	if err := check(resp, err); err != nil {
		if resp != nil && resp.StatusCode() == http.StatusNotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCurrentUser(ctx context.Context, token string) (*entity.User, error) {
	var out entity.User
	resp, err := c.request(ctx).SetAuthToken(token).SetResult(&out).Get("/users/me")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*entity.User, error) {
	var out entity.User
	resp, err := c.request(ctx).SetPathParam("id", id).SetResult(&out).Get("/users/{id}")
	if err := check(resp, err); err != nil {
		if resp != nil && resp.StatusCode() == http.StatusNotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, err
	}
	return &out, nil
}

type placeOrderRequest struct {
	ItemID        entity.ItemID          `json:"item_id"`
	Type          entity.TransactionKind `json:"type"`
	Delivery      entity.DeliveryAddress `json:"delivery"`
	PaymentMethod entity.PaymentMethod   `json:"payment_method"`
	Amount        float64                `json:"amount"`
}

// RecordOrder posts a confirmed checkout intent to /orders.
func (c *Client) RecordOrder(ctx context.Context, token string, intent *entity.OrderIntent) (*entity.Order, error) {
	var out entity.Order
	resp, err := c.request(ctx).
		SetAuthToken(token).
		SetBody(placeOrderRequest{
			ItemID:        intent.Item.ID,
			Type:          intent.Kind,
			Delivery:      intent.Delivery,
			PaymentMethod: intent.PaymentMethod,
			Amount:        intent.Amount,
		}).
		SetResult(&out).
		Post("/orders")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]*entity.Order, error) {
	out := []*entity.Order{}
	resp, err := c.request(ctx).SetAuthToken(token).SetResult(&out).Get("/orders")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out, nil
}
