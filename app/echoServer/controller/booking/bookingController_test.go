package booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"swiftride/app/echoServer/jwtx"
	"swiftride/model"
	bookingsvc "swiftride/service/booking"
	"swiftride/util/apperr"
)

type svcMock struct {
	createFn  func(ctx context.Context, customerID int64, req model.BookingReq) (*model.Booking, error)
	cancelFn  func(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error)
	receiptFn func(ctx context.Context, actor model.Actor, id int64) ([]byte, error)
}

var _ bookingsvc.Service = (*svcMock)(nil)

func (m *svcMock) Create(ctx context.Context, customerID int64, req model.BookingReq) (*model.Booking, error) {
	return m.createFn(ctx, customerID, req)
}
func (m *svcMock) MyBookings(context.Context, int64) ([]model.Booking, error) { return nil, nil }
func (m *svcMock) Detail(context.Context, model.Actor, int64) (*model.Booking, error) {
	return nil, nil
}
func (m *svcMock) Cancel(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	return m.cancelFn(ctx, actor, id)
}
func (m *svcMock) UpdateStatus(context.Context, int64, model.BookingStatus) (*model.Booking, error) {
	return nil, nil
}
func (m *svcMock) Receipt(ctx context.Context, actor model.Actor, id int64) ([]byte, error) {
	return m.receiptFn(ctx, actor, id)
}

func newCtx(method, target, body string, actor *model.Actor) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		jwtx.SetActor(c, *actor)
	}
	return c, rec
}

func TestCreate_RequiresIdentity(t *testing.T) {
	h := &Controller{Svc: &svcMock{}, V: validator.New()}
	c, rec := newCtx(http.MethodPost, "/v1/bookings", `{}`, nil)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreate_ValidationError(t *testing.T) {
	h := &Controller{Svc: &svcMock{}, V: validator.New()}
	c, rec := newCtx(http.MethodPost, "/v1/bookings", `{"vehicle_id":3}`, &model.Actor{ID: 9, Role: model.RoleCustomer})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_OK(t *testing.T) {
	var gotCustomer int64
	h := &Controller{V: validator.New(), Svc: &svcMock{
		createFn: func(_ context.Context, customerID int64, req model.BookingReq) (*model.Booking, error) {
			gotCustomer = customerID
			return &model.Booking{ID: 1, VehicleID: req.VehicleID, Status: model.BookingPending}, nil
		},
	}}
	body := `{"vehicle_id":3,"start_date":"2024-06-01","end_date":"2024-06-04","pickup_location":"Airport","dropoff_location":"Airport"}`
	c, rec := newCtx(http.MethodPost, "/v1/bookings", body, &model.Actor{ID: 9, Role: model.RoleCustomer})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, int64(9), gotCustomer)
}

func TestCancel_MapsForbidden(t *testing.T) {
	h := &Controller{Svc: &svcMock{
		cancelFn: func(context.Context, model.Actor, int64) (*model.Booking, error) {
			return nil, apperr.New(apperr.ErrForbidden, "not your booking")
		},
	}}
	c, rec := newCtx(http.MethodPost, "/v1/bookings/5/cancel", "", &model.Actor{ID: 2, Role: model.RoleCustomer})
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.JSONEq(t, `{"message":"not your booking"}`, rec.Body.String())
}

func TestReceipt_PDF(t *testing.T) {
	h := &Controller{Svc: &svcMock{
		receiptFn: func(_ context.Context, _ model.Actor, id int64) ([]byte, error) {
			return []byte("%PDF-1.3"), nil
		},
	}}
	c, rec := newCtx(http.MethodGet, "/v1/bookings/12/receipt", "", &model.Actor{ID: 2, Role: model.RoleCustomer})
	c.SetParamNames("id")
	c.SetParamValues("12")
	require.NoError(t, h.Receipt(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "receipt_12.pdf")
	require.Equal(t, "%PDF-1.3", rec.Body.String())
}
