package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"room-booking-backend/config"
	"room-booking-backend/internal/auth"
	"room-booking-backend/internal/model"
	"room-booking-backend/internal/notification"
	"room-booking-backend/internal/store"
)

type testEnv struct {
	router *gin.Engine
	store  store.Store
	db     *gorm.DB
	pool   *notification.WorkerPool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Room{}, &model.Booking{}, &model.RoomSubscription{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1

	s := store.NewGormStore(db)
	authSvc := auth.NewService(db, bcrypt.MinCost, time.Hour)
	pool := notification.NewWorkerPool(4, db, nil)

	return &testEnv{
		router: NewRouter(cfg, s, authSvc, nil, pool),
		store:  s,
		db:     db,
		pool:   pool,
	}
}

// do performs a JSON request against the test router.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup registers a user through the API and returns a session token.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username":         username,
		"password":         "12345",
		"confirm_password": "12345",
		"first_name":       "Test",
		"email":            username + "@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": "12345",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// seedRoom creates a room directly through the store.
func (e *testEnv) seedRoom(t *testing.T, code int64, name string, capacity, hours int, available bool) model.Room {
	t.Helper()
	room := model.Room{
		RoomCode:       code,
		RoomName:       name,
		RoomCapacity:   capacity,
		AvailableHours: hours,
		IsAvailable:    available,
	}
	require.NoError(t, e.store.CreateRoom(context.Background(), &room))
	return room
}
