package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Varun5711/carmate/internal/config"
	"github.com/Varun5711/carmate/internal/logger"
	"github.com/Varun5711/carmate/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	core, _ := observer.New(zapcore.DebugLevel)
	c := New(config.APIConfig{
		BaseURL:        srv.URL + "/",
		AuthTimeout:    2 * time.Second,
		RequestTimeout: 2 * time.Second,
		UploadTimeout:  2 * time.Second,
	}, logger.NewWithCore("apiclient", core))
	return c, &calls
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestLogin_SendsJSONAndDecodes(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathLogin, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.co", creds.Email)

		writeJSON(w, http.StatusOK, models.LoginResponse{Token: "tok", User: &models.User{ID: "u1"}})
	})

	res := c.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "pw"})
	require.Equal(t, Success, res.Kind)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))

	var body models.LoginResponse
	require.NoError(t, res.Decode(&body))
	assert.Equal(t, "tok", body.Token)
	require.NotNil(t, body.User)
	assert.Equal(t, models.ID("u1"), body.User.ID)
}

func TestRegister_CreatedSurfacesUserID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]interface{}{"user": map[string]string{"id": "u42"}})
	})

	res := c.Register(context.Background(), models.RegistrationRequest{Email: "a@b.co"})
	require.Equal(t, Success, res.Kind)
	assert.Equal(t, http.StatusCreated, res.Status)

	var body models.UserResponse
	require.NoError(t, res.Decode(&body))
	require.NotNil(t, body.User)
	assert.Equal(t, models.ID("u42"), body.User.ID)
}

func TestDo_ConflictIsServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email already registered", http.StatusConflict)
	})

	res := c.Register(context.Background(), models.RegistrationRequest{})
	assert.Equal(t, ServerError, res.Kind)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Contains(t, res.Body, "email already registered")
}

func TestDo_AuthHeaderForwarded(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathMyRequests, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []interface{}{})
	})

	h := http.Header{}
	h.Set("Authorization", "Bearer tok")
	res := c.MyRequests(context.Background(), h)
	assert.Equal(t, Success, res.Kind)
}

func TestDo_TimeoutIsTransportFailure(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	res := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    PathUsers,
		Timeout: 50 * time.Millisecond,
	})
	require.Equal(t, TransportFailure, res.Kind)
	assert.True(t, errors.Is(res.Err, context.DeadlineExceeded), "got %v", res.Err)
}

func TestDo_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	core, _ := observer.New(zapcore.DebugLevel)
	c := New(config.APIConfig{BaseURL: url}, logger.NewWithCore("apiclient", core))

	res := c.ListUsers(context.Background(), nil)
	assert.Equal(t, TransportFailure, res.Kind)
	assert.Error(t, res.Err)
}

func TestDo_UnencodableBodyIsTransportFailure(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	res := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		JSON:   map[string]interface{}{"bad": make(chan int)},
	})
	assert.Equal(t, TransportFailure, res.Kind)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestDo_LogsEachCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(config.APIConfig{BaseURL: srv.URL}, logger.NewWithCore("apiclient", core))

	c.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Email: "a@b.co"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Message, "POST /api/auth/forgot-password -> 202 success"), entries[0].Message)
}

func TestUploadPhotos_MultipartFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathUploadPhotos, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "req-7", r.FormValue("requestId"))

		files := r.MultipartForm.File[PhotosField]
		require.Len(t, files, 2)
		assert.Equal(t, "dash.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))
		assert.Equal(t, "side.jpg", files[1].Filename)

		f, err := files[1].Open()
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "jpeg-bytes", string(data))

		writeJSON(w, http.StatusOK, map[string]int{"uploaded": 2})
	})

	res := c.UploadPhotos(context.Background(), nil, "req-7", []File{
		{Name: "dash.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")},
		{Name: "side.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
	})
	assert.Equal(t, Success, res.Kind)
}

func TestCreateServiceRequest_JSONWithoutPhotos(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req models.ServiceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Toyota", req.Vehicle.Make)

		writeJSON(w, http.StatusCreated, models.CreatedRequest{ID: "r1"})
	})

	res := c.CreateServiceRequest(context.Background(), nil, models.ServiceRequest{
		Vehicle: models.Vehicle{Make: "Toyota"},
	}, nil)
	require.Equal(t, Success, res.Kind)

	var created models.CreatedRequest
	require.NoError(t, res.Decode(&created))
	assert.Equal(t, "r1", created.RequestID())
}

func TestCreateServiceRequest_MultipartWithPhotos(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var req models.ServiceRequest
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("payload")), &req))
		assert.Equal(t, "Camry", req.Vehicle.Model)
		assert.Len(t, r.MultipartForm.File[PhotosField], 1)

		writeJSON(w, http.StatusCreated, models.CreatedRequest{MongoID: "abc"})
	})

	res := c.CreateServiceRequest(context.Background(), nil, models.ServiceRequest{
		Vehicle: models.Vehicle{Model: "Camry"},
	}, []File{{Name: "a.webp", ContentType: "image/webp", Content: strings.NewReader("w")}})
	assert.Equal(t, Success, res.Kind)
}

func TestToggleUser_EscapesID(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/a%2Fb/toggle", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})

	res := c.ToggleUser(context.Background(), nil, "a/b")
	assert.Equal(t, Success, res.Kind)
}

func TestUpdateProfile_UsesPut(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, PathUpdateProfile, r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasPassword := body["password"]
		assert.False(t, hasPassword)

		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Phone invalid"})
	})

	res := c.UpdateProfile(context.Background(), nil, models.ProfileUpdate{FullName: "Ann"})
	assert.Equal(t, ValidationFailure, res.Kind)
	assert.Equal(t, "Phone invalid", res.Message)
}
