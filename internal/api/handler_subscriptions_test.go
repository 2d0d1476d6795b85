package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutSubscriptionRequiresBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/subscriptions", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestSubscriptionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.seedRoom(t, 1, "cn330", 10, 2, true)
	env.seedRoom(t, 2, "cn331", 5, 0, false)

	w := env.do(t, http.MethodPut, "/api/subscriptions", "", gin.H{
		"endpoint":         "https://push.example/abc",
		"p256dh":           "key",
		"auth":             "secret",
		"subscribed_rooms": []int64{1, 2},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/subscriptions?endpoint=https://push.example/abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		SubscribedRooms []int64 `json:"subscribed_rooms"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []int64{1, 2}, resp.SubscribedRooms)

	// Replacing the subscription narrows the watched set.
	w = env.do(t, http.MethodPut, "/api/subscriptions", "", gin.H{
		"endpoint":         "https://push.example/abc",
		"p256dh":           "key",
		"auth":             "secret",
		"subscribed_rooms": []int64{2},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/api/subscriptions?endpoint=https://push.example/abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp.SubscribedRooms = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []int64{2}, resp.SubscribedRooms)

	w = env.do(t, http.MethodDelete, "/api/subscriptions", "", gin.H{
		"endpoint": "https://push.example/abc",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/subscriptions?endpoint=https://push.example/abc", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSubscriptionRequiresEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/subscriptions", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVAPIDKeyUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/vapid_public_key", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
