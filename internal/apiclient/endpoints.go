package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Varun5711/carmate/internal/models"
)

const (
	PathLogin          = "/api/auth/login"
	PathRegister       = "/api/auth/register"
	PathForgotPassword = "/api/auth/forgot-password"
	PathUpdateProfile  = "/api/auth/updateProfile"
	PathMyRequests     = "/api/service-requests/me"
	PathServiceRequest = "/api/service-requests"
	PathUploadPhotos   = "/api/service-requests/upload-photos"
	PathUsers          = "/api/users"
)

const PhotosField = "photos"

func (c *Client) Login(ctx context.Context, creds models.Credentials) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    PathLogin,
		JSON:    creds,
		Timeout: c.timeouts.AuthTimeout,
	})
}

func (c *Client) Register(ctx context.Context, req models.RegistrationRequest) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    PathRegister,
		JSON:    req,
		Timeout: c.timeouts.AuthTimeout,
	})
}

func (c *Client) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    PathForgotPassword,
		JSON:    req,
		Timeout: c.timeouts.AuthTimeout,
	})
}

func (c *Client) UpdateProfile(ctx context.Context, auth http.Header, req models.ProfileUpdate) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodPut,
		Path:    PathUpdateProfile,
		JSON:    req,
		Header:  auth,
		Timeout: c.timeouts.AuthTimeout,
	})
}

func (c *Client) MyRequests(ctx context.Context, auth http.Header) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    PathMyRequests,
		Header:  auth,
		Timeout: c.timeouts.RequestTimeout,
	})
}

// CreateServiceRequest sends JSON, or multipart with the request under a
// "payload" text field when photos are attached.
func (c *Client) CreateServiceRequest(ctx context.Context, auth http.Header, req models.ServiceRequest, photos []File) Result {
	call := Request{
		Method:  http.MethodPost,
		Path:    PathServiceRequest,
		Header:  auth,
		Timeout: c.timeouts.RequestTimeout,
	}

	if len(photos) == 0 {
		call.JSON = req
		return c.Do(ctx, call)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return Transport(fmt.Errorf("encode service request payload: %w", err))
	}
	call.Form = &Form{
		Fields:    map[string]string{"payload": string(payload)},
		FileField: PhotosField,
		Files:     photos,
	}
	return c.Do(ctx, call)
}

func (c *Client) UploadPhotos(ctx context.Context, auth http.Header, requestID string, photos []File) Result {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   PathUploadPhotos,
		Header: auth,
		Form: &Form{
			Fields:    map[string]string{"requestId": requestID},
			FileField: PhotosField,
			Files:     photos,
		},
		Timeout: c.timeouts.UploadTimeout,
	})
}

func (c *Client) ListUsers(ctx context.Context, auth http.Header) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodGet,
		Path:    PathUsers,
		Header:  auth,
		Timeout: c.timeouts.RequestTimeout,
	})
}

func (c *Client) ToggleUser(ctx context.Context, auth http.Header, userID string) Result {
	return c.Do(ctx, Request{
		Method:  http.MethodPost,
		Path:    PathUsers + "/" + url.PathEscape(userID) + "/toggle",
		Header:  auth,
		Timeout: c.timeouts.RequestTimeout,
	})
}
