package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ess-api/pkg/client"

	"github.com/stretchr/testify/assert"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jdoe", body["username"])
		assert.Equal(t, "secret123", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"user": map[string]any{
				"user_id":   7,
				"user_name": "jdoe",
				"bio_id":    42,
				"employee":  map[string]any{"emp_id": 42, "first_name": "John"},
			},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	user, err := c.Login(context.Background(), "jdoe", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, 7, user.UserID)
	assert.Equal(t, 42, user.BioID)
	assert.Equal(t, "John", user.Employee.FirstName)
}

func TestClient_Login_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"ok":      false,
			"error":   "INVALID_CREDENTIALS",
			"message": "invalid username or password",
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Login(context.Background(), "jdoe", "wrong")

	var apiErr *client.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_SoftFailureIsError(t *testing.T) {
	// The legacy update endpoints answer 200 with ok=false; the client
	// still reports that as an error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"ok":    false,
			"error": "Employee not found or no changes made",
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.Profile(context.Background(), 999)

	var apiErr *client.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusOK, apiErr.Status)
}

func TestClient_ApplyLeave_SendsIdempotencyKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "retry-abc", r.Header.Get("Idempotency-Key"))
		json.NewEncoder(w).Encode(map[string]any{
			"ok":    true,
			"leave": map[string]any{"leave_id": 101, "uuid": "u-1", "status": "pending"},
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	leave, err := c.ApplyLeave(context.Background(), client.ApplyLeaveInput{
		EmployeeID:  42,
		LeaveTypeID: 1,
		StartDate:   "2024-03-10",
		EndDate:     "2024-03-12",
	}, "retry-abc")

	assert.NoError(t, err)
	assert.Equal(t, 101, leave.LeaveID)
	assert.Equal(t, "pending", leave.Status)
}

func TestClient_UploadImage_PublishesProfileEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "42", r.FormValue("bio_id"))

		file, header, err := r.FormFile("image")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		json.NewEncoder(w).Encode(map[string]any{
			"ok":       true,
			"filename": "user_42_1700000000.png",
			"path":     "uploads/user_42_1700000000.png",
		})
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	events, cancel := c.Events().Subscribe()
	defer cancel()

	res, err := c.UploadImage(context.Background(), 42, "avatar.png", "image/png", strings.NewReader("png bytes"))

	assert.NoError(t, err)
	assert.Equal(t, "user_42_1700000000.png", res.Filename)

	select {
	case ev := <-events:
		assert.Equal(t, 42, ev.BioID)
		assert.Equal(t, "user_42_1700000000.png", ev.Filename)
	case <-time.After(time.Second):
		t.Fatal("expected a profile event")
	}
}
