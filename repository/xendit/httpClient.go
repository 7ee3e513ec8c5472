package xenditrepo

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"swiftride/util/httpx"
)

var (
	ErrBadCallbackToken = errors.New("xendit: callback token mismatch")
	// ErrCallbackTokenUnset rejects every callback while no token is configured.
	ErrCallbackTokenUnset = errors.New("xendit: callback token not configured")
)

type httpRepo struct {
	baseURL       string
	apiKey        string
	callbackToken string
	client        *http.Client
}

func NewHTTP(baseURL, apiKey, callbackToken string) Repo {
	return &httpRepo{
		baseURL:       strings.TrimRight(baseURL, "/"),
		apiKey:        apiKey,
		callbackToken: callbackToken,
		client:        httpx.New(15 * time.Second),
	}
}

type invoiceBody struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	InvoiceURL string    `json:"invoice_url"`
	Status     string    `json:"status"`
	ExpiryDate time.Time `json:"expiry_date"`
}

func (b invoiceBody) invoice() *Invoice {
	return &Invoice{ID: b.ID, ExternalID: b.ExternalID, URL: b.InvoiceURL, Status: b.Status, ExpiresAt: b.ExpiryDate}
}

func (r *httpRepo) do(ctx context.Context, method, path string, body any) (*invoiceBody, error) {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(r.apiKey, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("xendit %s %s failed: %s", method, path, resp.Status)
	}

	var out invoiceBody
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("xendit: empty invoice id")
	}
	return &out, nil
}

func (r *httpRepo) CreateInvoice(ctx context.Context, req CreateInvoiceReq) (*Invoice, error) {
	out, err := r.do(ctx, http.MethodPost, "/v2/invoices", map[string]any{
		"external_id":      req.ExternalID,
		"amount":           req.Amount,
		"description":      req.Description,
		"payer_email":      req.PayerEmail,
		"invoice_duration": int(req.Expiry.Seconds()),
	})
	if err != nil {
		return nil, err
	}
	return out.invoice(), nil
}

func (r *httpRepo) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	out, err := r.do(ctx, http.MethodGet, "/v2/invoices/"+id, nil)
	if err != nil {
		return nil, err
	}
	return out.invoice(), nil
}

func (r *httpRepo) ExpireInvoice(ctx context.Context, id string) (*Invoice, error) {
	out, err := r.do(ctx, http.MethodPost, "/invoices/"+id+"/expire!", nil)
	if err != nil {
		return nil, err
	}
	return out.invoice(), nil
}

func (r *httpRepo) VerifyCallbackToken(token string) error {
	if r.callbackToken == "" {
		return ErrCallbackTokenUnset
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(r.callbackToken)) != 1 {
		return ErrBadCallbackToken
	}
	return nil
}
