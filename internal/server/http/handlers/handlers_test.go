package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/fideleatome/loyalty/internal/domain/errors"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/domain/repository"
	"github.com/fideleatome/loyalty/internal/server/http/dto"
	"github.com/fideleatome/loyalty/internal/server/http/middleware"
	testhelpers "github.com/fideleatome/loyalty/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	routePath := path
	if i := strings.Index(routePath, "?"); i >= 0 {
		routePath = routePath[:i]
	}
	router.Handle(method, routePath, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id int64) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegisterCustomer(t *testing.T) {
	email := testhelpers.RandomASCIIString(5, 10) + "@atome3d.com"
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterCustomerRequest{Email: email, Password: password, FirstName: "Alice"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterCustomerFn: func(ctx context.Context, gotEmail, gotPassword, firstName, lastName string) (string, error) {
		if gotEmail != email || gotPassword != password || firstName != "Alice" {
			t.Fatalf("unexpected registration data passed to facade: %q %q %q", gotEmail, gotPassword, firstName)
		}
		return "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register/customer", handler.RegisterCustomer, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", resp.Header().Get("Authorization"))
	}

	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	if len(result.Cookies()) == 0 {
		t.Fatal("expected auth cookie to be set")
	}

	var auth dto.AuthResponse
	if err := json.NewDecoder(result.Body).Decode(&auth); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if auth.Token != "session-token" {
		t.Fatalf("unexpected token %q", auth.Token)
	}
}

func TestAuthHandlerRegisterCustomerErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{name: "malformed body", body: []byte("{"), status: http.StatusBadRequest},
		{name: "missing fields", body: []byte(`{"email":"a@b.c"}`), err: domainErrors.ErrInvalidCredentials, status: http.StatusBadRequest},
		{name: "duplicate email", body: []byte(`{"email":"a@b.c","password":"p","first_name":"A"}`), err: domainErrors.ErrAlreadyExists, status: http.StatusConflict},
		{name: "storage failure", body: []byte(`{"email":"a@b.c","password":"p","first_name":"A"}`), err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterCustomerFn: func(context.Context, string, string, string, string) (string, error) {
				return "", tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/register/customer", handler.RegisterCustomer, nil, tc.body, jsonHeaders())
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerRegisterBusiness(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterBusinessRequest{
		Email:        "shop@atome3d.com",
		Password:     "secret",
		BusinessName: "Atome 3D",
		ContactName:  "Bob",
		Phone:        "+33100000000",
	})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterBusinessFn: func(_ context.Context, email, _, businessName, contactName, phone string) (string, error) {
		if email != "shop@atome3d.com" || businessName != "Atome 3D" || contactName != "Bob" || phone != "+33100000000" {
			t.Fatalf("unexpected business data: %q %q %q %q", email, businessName, contactName, phone)
		}
		return "business-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register/business", handler.RegisterBusiness, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "a@b.c", Password: "secret"})

	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	denied := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}})
	resp = performRequest(t, http.MethodPost, "/login", denied.Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, []byte("{"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestCustomerHandlerProfile(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{ProfileFn: func(_ context.Context, userID int64) (*model.CustomerProfile, error) {
		if userID != 42 {
			t.Fatalf("expected user 42, got %d", userID)
		}
		return &model.CustomerProfile{ID: 7, FirstName: "Alice", LastName: "Martin", Points: 3, TotalPurchases: 10, TotalRewards: 1}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/profile", handler.Profile, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var profile dto.CustomerProfileResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if profile.ID != 7 || profile.Points != 3 || profile.TotalPurchases != 10 {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestCustomerHandlerProfileNotFound(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{ProfileFn: func(context.Context, int64) (*model.CustomerProfile, error) {
		return nil, domainErrors.ErrNotFound
	}})

	resp := performRequest(t, http.MethodGet, "/profile", handler.Profile, asUser(42), nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestCustomerHandlerQRCode(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{CardFn: func(context.Context, int64) (*model.Card, error) {
		return &model.Card{Payload: `{"app":"fideleatome"}`, Token: "signed-token", ExpiresIn: 300}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/qrcode", handler.QRCode, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var card dto.CardResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if card.Token != "signed-token" || card.ExpiresIn != 300 {
		t.Fatalf("unexpected card %+v", card)
	}
}

func TestCustomerHandlerLoyalty(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{ProgressFn: func(context.Context, int64) (*model.CustomerStats, error) {
		return &model.CustomerStats{Points: 8, Remaining: 7, NextReward: model.RewardBobine, Progress: 8.0 / 15.0}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/loyalty", handler.Loyalty, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var progress dto.ProgressResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &progress); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if progress.Remaining != 7 || progress.NextReward != string(model.RewardBobine) {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func TestCustomerHandlerHistoryPassesPaging(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{HistoryFn: func(_ context.Context, _ int64, limit, offset int) (*model.HistoryPage, error) {
		if limit != 5 || offset != 10 {
			t.Fatalf("expected paging 5/10, got %d/%d", limit, offset)
		}
		return &model.HistoryPage{
			Purchases: []model.Purchase{{ID: 1, BusinessName: "Atome 3D", PointsAdded: 2, PurchaseDate: time.Now()}},
			Total:     11,
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/history?limit=5&offset=10", handler.History, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var page dto.HistoryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 11 || len(page.Items) != 1 || page.Items[0].BusinessName != "Atome 3D" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestCustomerHandlerRewards(t *testing.T) {
	handler := NewCustomerHandler(testhelpers.CustomerFacadeStub{RewardsFn: func(context.Context, int64, int, int) (*model.RewardsPage, error) {
		return &model.RewardsPage{
			Rewards: []model.Reward{{ID: 3, RewardType: model.RewardAccessory, EarnedDate: time.Now()}},
			Total:   1,
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/rewards", handler.Rewards, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var page dto.RewardsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].RewardType != string(model.RewardAccessory) {
		t.Fatalf("unexpected rewards %+v", page)
	}
}

func TestBusinessHandlerScan(t *testing.T) {
	body, _ := json.Marshal(dto.ScanRequest{Payload: "raw-qr"})
	handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{ScanFn: func(_ context.Context, raw string) (*model.CustomerProfile, *model.CustomerStats, error) {
		if raw != "raw-qr" {
			t.Fatalf("unexpected payload %q", raw)
		}
		customer := &model.CustomerProfile{ID: 9, FirstName: "Alice", Points: 6, TotalPurchases: 6}
		return customer, &model.CustomerStats{Remaining: 1, NextReward: model.RewardAccessory}, nil
	}})

	resp := performRequest(t, http.MethodPost, "/scan", handler.Scan, asUser(42), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var scanned dto.ScannedCustomerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &scanned); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if scanned.ID != 9 || scanned.Remaining != 1 || scanned.NextReward != string(model.RewardAccessory) {
		t.Fatalf("unexpected scan result %+v", scanned)
	}
}

func TestBusinessHandlerScanErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "foreign qr", err: domainErrors.ErrMalformedPayload, status: http.StatusBadRequest},
		{name: "stale token", err: domainErrors.ErrQRMismatch, status: http.StatusBadRequest},
		{name: "unknown customer", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "storage failure", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	body, _ := json.Marshal(dto.ScanRequest{Payload: "raw-qr"})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{ScanFn: func(context.Context, string) (*model.CustomerProfile, *model.CustomerStats, error) {
				return nil, nil, tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/scan", handler.Scan, asUser(42), body, jsonHeaders())
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestBusinessHandlerAddPoints(t *testing.T) {
	handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{AddPointsFn: func(_ context.Context, userID int64, raw string, quantity int) (*model.AccrualResult, error) {
		if userID != 42 || raw != "raw-qr" || quantity != 3 {
			t.Fatalf("unexpected accrual call: %d %q %d", userID, raw, quantity)
		}
		return &model.AccrualResult{
			Message:       "Félicitations ! Accessoire offert",
			PointsAdded:   3,
			NewPoints:     8,
			RewardsEarned: 1,
			Rewards:       []model.RewardType{model.RewardAccessory},
		}, nil
	}})

	body := []byte(`{"payload":"raw-qr","quantity":3}`)
	resp := performRequest(t, http.MethodPost, "/points", handler.AddPoints, asUser(42), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var result dto.AccrualResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Points != 8 || result.RewardsEarned != 1 || result.Rewards[0] != string(model.RewardAccessory) {
		t.Fatalf("unexpected accrual %+v", result)
	}
	if result.Message != "Félicitations ! Accessoire offert" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestBusinessHandlerAddPointsLenientQuantity(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		quantity int
	}{
		{name: "numeric string", body: `{"payload":"raw-qr","quantity":"4"}`, quantity: 4},
		{name: "float", body: `{"payload":"raw-qr","quantity":2.9}`, quantity: 2},
		{name: "garbage string", body: `{"payload":"raw-qr","quantity":"abc"}`, quantity: 1},
		{name: "missing", body: `{"payload":"raw-qr"}`, quantity: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{AddPointsFn: func(_ context.Context, _ int64, _ string, quantity int) (*model.AccrualResult, error) {
				if quantity != tc.quantity {
					t.Fatalf("expected quantity %d, got %d", tc.quantity, quantity)
				}
				return &model.AccrualResult{PointsAdded: 1, NewPoints: 1}, nil
			}})
			resp := performRequest(t, http.MethodPost, "/points", handler.AddPoints, asUser(42), []byte(tc.body), jsonHeaders())
			if resp.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", resp.Code)
			}
		})
	}
}

func TestBusinessHandlerCustomers(t *testing.T) {
	handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{CustomersFn: func(_ context.Context, _ int64, search string, limit, offset int) (*repository.CustomerPage, error) {
		if search != "ali" || limit != 3 || offset != 6 {
			t.Fatalf("unexpected listing call: %q %d %d", search, limit, offset)
		}
		return &repository.CustomerPage{
			Customers: []model.CustomerProfile{{ID: 1, FirstName: "Alice", Points: 2}},
			Total:     1,
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/customers?search=ali&limit=3&offset=6", handler.Customers, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var page dto.CustomerListResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].FirstName != "Alice" {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestBusinessHandlerStats(t *testing.T) {
	handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{DashboardFn: func(context.Context, int64) (*model.BusinessStats, error) {
		return &model.BusinessStats{TotalCustomers: 12, TotalPoints: 80, TotalRewards: 5, TodaySales: 3}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/stats", handler.Stats, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var stats dto.BusinessStatsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.TotalCustomers != 12 || stats.TodaySales != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestBusinessHandlerSales(t *testing.T) {
	handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{SalesFn: func(_ context.Context, _ int64, days int) ([]model.DailySales, error) {
		if days != 7 {
			t.Fatalf("expected 7 days, got %d", days)
		}
		return []model.DailySales{{Date: time.Now(), Count: 4}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/stats/sales?days=7", handler.Sales, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var sales []dto.DailySalesResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &sales); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sales) != 1 || sales[0].Count != 4 {
		t.Fatalf("unexpected sales %+v", sales)
	}
}

func TestBusinessHandlerTop(t *testing.T) {
	handler := NewBusinessHandler(testhelpers.BusinessFacadeStub{TopFn: func(_ context.Context, _ int64, limit int) ([]model.TopCustomer, error) {
		if limit != 5 {
			t.Fatalf("expected limit 5, got %d", limit)
		}
		return []model.TopCustomer{{CustomerID: 1, FirstName: "Alice", TotalPurchases: 30}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/stats/top?limit=5", handler.Top, asUser(42), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var top []dto.TopCustomerResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &top); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(top) != 1 || top[0].TotalPurchases != 30 {
		t.Fatalf("unexpected ranking %+v", top)
	}
}
