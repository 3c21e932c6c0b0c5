package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tshirt-studio-backend/internal/auth"
	"tshirt-studio-backend/internal/database"
	"tshirt-studio-backend/internal/handlers"
	"tshirt-studio-backend/internal/middleware"
	"tshirt-studio-backend/internal/models"
	"tshirt-studio-backend/internal/storage"
)

const testSecret = "test-secret-key-for-jwt-signing-must-be-long-enough"

// fakeStore is an in-memory stand-in for *database.Client. It honours the
// same contract: sentinel errors, user scoping, and creation-time ordering.
type fakeStore struct {
	mu       sync.Mutex
	users    []models.User
	orders   []models.Order
	stamps   []models.Stamp
	messages []models.Message
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// tick returns a strictly increasing timestamp so ordering assertions are
// deterministic even within one test.
func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeStore) CreateUser(name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, database.ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.tick(),
	}
	s.users = append(s.users, user)
	return &user, nil
}

func (s *fakeStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) GetUserByID(userID uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == userID {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) CreateOrder(params database.CreateOrderParams) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sizesJSON, err := json.Marshal(params.Sizes)
	if err != nil {
		return nil, err
	}

	now := s.tick()
	order := models.Order{
		ID:            uuid.New(),
		UserID:        params.UserID,
		ImageURL:      params.ImageURL,
		Color:         params.Color,
		Material:      params.Material,
		Sizes:         sizesJSON,
		TotalQuantity: params.TotalQuantity,
		Status:        models.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if params.BackImageURL != "" {
		order.BackImageURL.String = params.BackImageURL
		order.BackImageURL.Valid = true
	}
	if params.Observations != "" {
		order.Observations.String = params.Observations
		order.Observations.Valid = true
	}
	s.orders = append(s.orders, order)
	return &order, nil
}

func (s *fakeStore) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) ListOrders(userID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *fakeStore) CreateStamp(params database.CreateStampParams) (*models.Stamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := models.Stamp{
		ID:         uuid.New(),
		UserID:     params.UserID,
		ImageURL:   params.ImageURL,
		DesignData: params.DesignData,
		CreatedAt:  s.tick(),
	}
	if params.BackImageURL != "" {
		stamp.BackImageURL.String = params.BackImageURL
		stamp.BackImageURL.Valid = true
	}
	if params.Name != "" {
		stamp.Name.String = params.Name
		stamp.Name.Valid = true
	}
	s.stamps = append(s.stamps, stamp)
	return &stamp, nil
}

func (s *fakeStore) GetStamp(stampID, userID uuid.UUID) (*models.Stamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.stamps {
		if st.ID == stampID && st.UserID == userID {
			stamp := st
			return &stamp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeStore) ListStamps(userID uuid.UUID) ([]models.Stamp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stamps []models.Stamp
	for _, st := range s.stamps {
		if st.UserID == userID {
			stamps = append(stamps, st)
		}
	}
	sort.Slice(stamps, func(i, j int) bool {
		return stamps[i].CreatedAt.After(stamps[j].CreatedAt)
	})
	return stamps, nil
}

func (s *fakeStore) DeleteStamp(stampID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, st := range s.stamps {
		if st.ID == stampID && st.UserID == userID {
			s.stamps = append(s.stamps[:i], s.stamps[i+1:]...)
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) CreateMessage(userID uuid.UUID, content string, isAdmin bool) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	message := models.Message{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   content,
		IsAdmin:   isAdmin,
		CreatedAt: s.tick(),
	}
	s.messages = append(s.messages, message)
	return &message, nil
}

func (s *fakeStore) ListMessages(userID uuid.UUID) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	for _, m := range s.messages {
		if m.UserID == userID {
			messages = append(messages, m)
		}
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}

// testApp wires the full router the way cmd/server does, against the fake
// store and a temp-dir uploader.
type testApp struct {
	router *gin.Engine
	store  *fakeStore
	tokens *auth.TokenService
	root   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	tokens := auth.NewTokenService(testSecret)
	root := t.TempDir()
	uploader := storage.NewUploader(root)

	authHandler := handlers.NewAuthHandler(store, tokens, false)
	ordersHandler := handlers.NewOrdersHandler(store, uploader)
	stampsHandler := handlers.NewStampsHandler(store, uploader)
	chatHandler := handlers.NewChatHandler(store)

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", middleware.SessionGuard(tokens), authHandler.Me)

	protected := api.Group("")
	protected.Use(middleware.SessionGuard(tokens))
	protected.POST("/orders/save", ordersHandler.Save)
	protected.GET("/orders/get", ordersHandler.Get)
	protected.GET("/orders/list", ordersHandler.List)
	protected.POST("/stamps/save", stampsHandler.Save)
	protected.GET("/stamps/list", stampsHandler.List)
	protected.DELETE("/stamps/delete", stampsHandler.Delete)
	protected.POST("/chat/send", chatHandler.Send)
	protected.GET("/chat/list", chatHandler.List)

	return &testApp{router: router, store: store, tokens: tokens, root: root}
}

func (a *testApp) do(t *testing.T, method, target string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns the session cookie the server
// set for it.
func (a *testApp) register(t *testing.T, name, email, password string) *http.Cookie {
	t.Helper()

	w := a.do(t, "POST", "/api/auth/register", models.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "register failed: %s", w.Body.String())

	return sessionCookie(t, w)
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}
