package paymongo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.paymongo.com/v1"

type Client struct {
	BaseURL   string
	SecretKey string
	HTTP      *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTP:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Link is a created payment link. Amount and Fee are in minor units
// (centavos); callers convert for display.
type Link struct {
	ID          string
	CheckoutURL string
	Reference   string
	Status      string
	Amount      int64
	Fee         int64
}

type linkAttributes struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	Remarks     string `json:"remarks,omitempty"`
	CheckoutURL string `json:"checkout_url,omitempty"`
	Reference   string `json:"reference_number,omitempty"`
	Status      string `json:"status,omitempty"`
	Fee         int64  `json:"fee,omitempty"`
}

type linkData struct {
	ID         string         `json:"id,omitempty"`
	Attributes linkAttributes `json:"attributes"`
}

type linkEnvelope struct {
	Data linkData `json:"data"`
}

type apiError struct {
	Detail string `json:"detail"`
}

type errorEnvelope struct {
	Errors []apiError `json:"errors"`
}

// CreateLink creates a payment link for amount centavos. The remarks
// field carries the business order id so the provider dashboard can be
// reconciled against the store.
func (c *Client) CreateLink(ctx context.Context, amount int64, description, remarks string) (*Link, error) {
	body, err := json.Marshal(linkEnvelope{Data: linkData{Attributes: linkAttributes{
		Amount:      amount,
		Description: description,
		Remarks:     remarks,
	}}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/links", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.SecretKey, "")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var e errorEnvelope
		if json.Unmarshal(raw, &e) == nil && len(e.Errors) > 0 {
			return nil, errors.New(e.Errors[0].Detail)
		}
		return nil, fmt.Errorf("payment link request failed: %s", res.Status)
	}

	var out linkEnvelope
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &Link{
		ID:          out.Data.ID,
		CheckoutURL: out.Data.Attributes.CheckoutURL,
		Reference:   out.Data.Attributes.Reference,
		Status:      out.Data.Attributes.Status,
		Amount:      out.Data.Attributes.Amount,
		Fee:         out.Data.Attributes.Fee,
	}, nil
}
