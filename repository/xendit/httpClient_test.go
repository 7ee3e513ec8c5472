package xenditrepo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/invoices", r.URL.Path)
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key", user)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "booking:1", body["external_id"])
		require.Equal(t, 110.0, body["amount"])
		require.Equal(t, 86400.0, body["invoice_duration"])

		_, _ = w.Write([]byte(`{"id":"inv-1","external_id":"booking:1","invoice_url":"https://pay/inv-1","status":"PENDING","expiry_date":"2024-01-02T00:00:00Z"}`))
	}))
	defer srv.Close()

	r := NewHTTP(srv.URL+"/", "key", "")
	inv, err := r.CreateInvoice(context.Background(), CreateInvoiceReq{
		ExternalID: "booking:1", Amount: 110, Expiry: 24 * time.Hour,
	})
	require.NoError(t, err)
	require.Equal(t, "inv-1", inv.ID)
	require.Equal(t, "https://pay/inv-1", inv.URL)
	require.Equal(t, StatusPending, inv.Status)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), inv.ExpiresAt.UTC())
}

func TestGetInvoice_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/invoices/missing", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL, "key", "").GetInvoice(context.Background(), "missing")
	require.Error(t, err)
}

func TestVerifyCallbackToken(t *testing.T) {
	r := NewHTTP("http://unused", "key", "secret-token")
	require.NoError(t, r.VerifyCallbackToken("secret-token"))
	require.ErrorIs(t, r.VerifyCallbackToken("nope"), ErrBadCallbackToken)

	unset := NewHTTP("http://unused", "key", "")
	require.ErrorIs(t, unset.VerifyCallbackToken(""), ErrCallbackTokenUnset)
	require.ErrorIs(t, unset.VerifyCallbackToken("anything"), ErrCallbackTokenUnset)
}

func TestExpireInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/invoices/inv-3/expire!", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"inv-3","status":"EXPIRED"}`))
	}))
	defer srv.Close()

	inv, err := NewHTTP(srv.URL, "key", "tok").ExpireInvoice(context.Background(), "inv-3")
	require.NoError(t, err)
	require.Equal(t, StatusExpired, inv.Status)
}
