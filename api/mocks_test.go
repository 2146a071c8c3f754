package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/turfbooking/internal/auth"
	"github.com/Domenick1991/turfbooking/internal/domain"
	"github.com/Domenick1991/turfbooking/internal/service/booking"
	"github.com/Domenick1991/turfbooking/internal/service/credentials"
)

type MockCredentialUseCase struct {
	mock.Mock
}

func (m *MockCredentialUseCase) Register(ctx context.Context, input credentials.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockCredentialUseCase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockCredentialUseCase) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *MockCredentialUseCase) Logout(ctx context.Context, claims auth.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

type MockSlotUseCase struct {
	mock.Mock
}

func (m *MockSlotUseCase) EnsureDayGenerated(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *MockSlotUseCase) EnsureDaysAhead(ctx context.Context, from time.Time, days int) error {
	args := m.Called(ctx, from, days)
	return args.Error(0)
}

func (m *MockSlotUseCase) ListSlots(ctx context.Context, date time.Time) ([]domain.Slot, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Slot), args.Error(1)
}

func (m *MockSlotUseCase) CreateSlot(ctx context.Context, date time.Time, startHour int) (*domain.Slot, error) {
	args := m.Called(ctx, date, startHour)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *MockSlotUseCase) BlockSlot(ctx context.Context, slotID int64) (*domain.Slot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, userID int64, slotIDs []int64) (*booking.BookResult, error) {
	args := m.Called(ctx, userID, slotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.BookResult), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingUseCase) CancelOwn(ctx context.Context, bookingID, userID int64) (bool, error) {
	args := m.Called(ctx, bookingID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingUseCase) ListForUser(ctx context.Context, userID int64, page int) (domain.Page[domain.BookingDetail], error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).(domain.Page[domain.BookingDetail]), args.Error(1)
}

func (m *MockBookingUseCase) ListForDate(ctx context.Context, date time.Time, page int) (domain.Page[domain.BookingDetail], error) {
	args := m.Called(ctx, date, page)
	return args.Get(0).(domain.Page[domain.BookingDetail]), args.Error(1)
}

// asCaller stands in for Auth in handler tests.
func asCaller(userID int64, role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(claimsKey, auth.Claims{UserID: userID, Role: role, TokenID: "test-jti"})
		c.Next()
	}
}

func newTestRouter(mw ...gin.HandlerFunc) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	return r, r.Group("", mw...)
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](w *httptest.ResponseRecorder) T {
	var v T
	_ = json.Unmarshal(w.Body.Bytes(), &v)
	return v
}

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func slotAt(id int64, hour int) domain.Slot {
	return domain.Slot{ID: id, Date: june1, StartHour: hour, EndHour: domain.EndHourFor(hour), Available: true, State: domain.SlotAvailable}
}
