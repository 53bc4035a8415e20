package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/bazario/marketplace-backend/api/middleware"
	internalorders "github.com/bazario/marketplace-backend/internal/orders"
	"github.com/bazario/marketplace-backend/pkg/db/models"
	"github.com/bazario/marketplace-backend/pkg/enums"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
	"github.com/bazario/marketplace-backend/pkg/pagination"
)

type stubOrdersService struct {
	create func(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error)
	cancel func(ctx context.Context, input internalorders.CancelOrderInput) error
	track  func(ctx context.Context, orderNumber string) (*internalorders.TrackingView, error)
	list   func(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters internalorders.ListFilters) (*internalorders.OrderList, error)
	detail func(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error)
}

func (s *stubOrdersService) Create(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
	if s.create != nil {
		return s.create(ctx, input)
	}
	panic("not implemented")
}

func (s *stubOrdersService) Cancel(ctx context.Context, input internalorders.CancelOrderInput) error {
	if s.cancel != nil {
		return s.cancel(ctx, input)
	}
	panic("not implemented")
}

func (s *stubOrdersService) UpdateStatus(ctx context.Context, input internalorders.UpdateStatusInput) error {
	panic("not implemented")
}

func (s *stubOrdersService) ApplyPaymentUpdate(ctx context.Context, input internalorders.PaymentUpdateInput) error {
	panic("not implemented")
}

func (s *stubOrdersService) Track(ctx context.Context, orderNumber string) (*internalorders.TrackingView, error) {
	if s.track != nil {
		return s.track(ctx, orderNumber)
	}
	panic("not implemented")
}

func (s *stubOrdersService) List(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters internalorders.ListFilters) (*internalorders.OrderList, error) {
	if s.list != nil {
		return s.list(ctx, customerID, params, filters)
	}
	panic("not implemented")
}

func (s *stubOrdersService) GetDetail(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error) {
	if s.detail != nil {
		return s.detail(ctx, orderID, customerID)
	}
	panic("not implemented")
}

func authedRequest(method, target string, body string, customerID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := middleware.WithCustomerID(req.Context(), customerID.String())
	ctx = middleware.WithRole(ctx, string(enums.RoleCustomer))
	return req.WithContext(ctx)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestCreateOrderReturnsCreated(t *testing.T) {
	customerID := uuid.New()
	productID := uuid.New()
	var captured internalorders.CreateOrderInput
	svc := &stubOrdersService{
		create: func(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
			captured = input
			return &models.Order{OrderNumber: "ORD-20260115-0A1B2C3D", Status: enums.OrderStatusPending}, nil
		},
	}

	body := `{
		"items": [{"product_id": "` + productID.String() + `", "qty": 2}],
		"delivery_method": "standard",
		"payment_method": "card",
		"shipping_address": {"line1": "1 Main St", "city": "Springfield", "postal_code": "12345", "country": "US"}
	}`
	req := authedRequest(http.MethodPost, "/api/v1/orders", body, customerID)
	resp := httptest.NewRecorder()
	Create(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.CustomerID != customerID {
		t.Fatalf("expected customer %s got %s", customerID, captured.CustomerID)
	}
	if len(captured.Items) != 1 || captured.Items[0].ProductID != productID || captured.Items[0].Qty != 2 {
		t.Fatalf("unexpected items: %+v", captured.Items)
	}
	if captured.DeliveryMethod != enums.DeliveryMethodStandard {
		t.Fatalf("expected standard delivery got %s", captured.DeliveryMethod)
	}
	if !strings.Contains(resp.Body.String(), "ORD-20260115-0A1B2C3D") {
		t.Fatalf("expected order number in response")
	}
}

func TestCreateOrderRejectsUnknownDeliveryMethod(t *testing.T) {
	svc := &stubOrdersService{
		create: func(ctx context.Context, input internalorders.CreateOrderInput) (*models.Order, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body := `{
		"items": [{"product_id": "` + uuid.NewString() + `", "qty": 1}],
		"delivery_method": "teleport",
		"payment_method": "card",
		"shipping_address": {"line1": "1 Main St", "city": "Springfield", "postal_code": "12345", "country": "US"}
	}`
	req := authedRequest(http.MethodPost, "/api/v1/orders", body, uuid.New())
	resp := httptest.NewRecorder()
	Create(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCreateOrderRequiresCustomerContext(t *testing.T) {
	svc := &stubOrdersService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	Create(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCancelOrderPassesReason(t *testing.T) {
	customerID := uuid.New()
	orderID := uuid.New()
	var captured internalorders.CancelOrderInput
	svc := &stubOrdersService{
		cancel: func(ctx context.Context, input internalorders.CancelOrderInput) error {
			captured = input
			return nil
		},
	}

	req := authedRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", `{"reason":"changed my mind"}`, customerID)
	req = withURLParam(req, "orderID", orderID.String())
	resp := httptest.NewRecorder()
	Cancel(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.OrderID != orderID || captured.CustomerID != customerID {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if captured.Reason != "changed my mind" {
		t.Fatalf("expected reason got %q", captured.Reason)
	}
}

func TestCancelOrderMapsStateConflict(t *testing.T) {
	svc := &stubOrdersService{
		cancel: func(ctx context.Context, input internalorders.CancelOrderInput) error {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled")
		},
	}

	orderID := uuid.New()
	req := authedRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", `{"reason":"late"}`, uuid.New())
	req = withURLParam(req, "orderID", orderID.String())
	resp := httptest.NewRecorder()
	Cancel(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse error response: %v", err)
	}
	if payload.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT got %s", payload.Error.Code)
	}
}

func TestListParsesFilters(t *testing.T) {
	customerID := uuid.New()
	var capturedParams pagination.Params
	var capturedFilters internalorders.ListFilters
	svc := &stubOrdersService{
		list: func(ctx context.Context, gotCustomer uuid.UUID, params pagination.Params, filters internalorders.ListFilters) (*internalorders.OrderList, error) {
			capturedParams = params
			capturedFilters = filters
			return &internalorders.OrderList{}, nil
		},
	}

	target := "/api/v1/orders?limit=5&cursor=abc&status=shipped&date_from=2026-01-01T00:00:00Z"
	req := authedRequest(http.MethodGet, target, "", customerID)
	resp := httptest.NewRecorder()
	List(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if capturedParams.Limit != 5 || capturedParams.Cursor != "abc" {
		t.Fatalf("unexpected params: %+v", capturedParams)
	}
	if capturedFilters.Status == nil || *capturedFilters.Status != enums.OrderStatusShipped {
		t.Fatalf("expected shipped filter, got %+v", capturedFilters.Status)
	}
	if capturedFilters.DateFrom == nil || !capturedFilters.DateFrom.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected date_from parsed, got %+v", capturedFilters.DateFrom)
	}
}

func TestListRejectsInvertedDateRange(t *testing.T) {
	svc := &stubOrdersService{
		list: func(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters internalorders.ListFilters) (*internalorders.OrderList, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	target := "/api/v1/orders?date_from=2026-02-01T00:00:00Z&date_to=2026-01-01T00:00:00Z"
	req := authedRequest(http.MethodGet, target, "", uuid.New())
	resp := httptest.NewRecorder()
	List(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestDetailRejectsMalformedOrderID(t *testing.T) {
	svc := &stubOrdersService{}

	req := authedRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", "", uuid.New())
	req = withURLParam(req, "orderID", "not-a-uuid")
	resp := httptest.NewRecorder()
	Detail(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestTrackReturnsPublicView(t *testing.T) {
	view := &internalorders.TrackingView{
		OrderNumber: "ORD-20260115-0A1B2C3D",
		Status:      enums.OrderStatusDelivered,
		ItemCount:   3,
		PlacedAt:    time.Now().UTC(),
	}
	svc := &stubOrdersService{
		track: func(ctx context.Context, orderNumber string) (*internalorders.TrackingView, error) {
			if orderNumber != view.OrderNumber {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return view, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/orders/ORD-20260115-0A1B2C3D/track", nil)
	req = withURLParam(req, "orderNumber", view.OrderNumber)
	resp := httptest.NewRecorder()
	Track(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"item_count":3`) {
		t.Fatalf("expected item count in body, got %s", resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "shipping_address") {
		t.Fatalf("tracking view must not expose address data")
	}
}

func TestTrackUnknownOrderReturnsNotFound(t *testing.T) {
	svc := &stubOrdersService{
		track: func(ctx context.Context, orderNumber string) (*internalorders.TrackingView, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/public/orders/ORD-00000000-FFFFFFFF/track", nil)
	req = withURLParam(req, "orderNumber", "ORD-00000000-FFFFFFFF")
	resp := httptest.NewRecorder()
	Track(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
