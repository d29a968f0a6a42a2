package page

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Varun5711/carmate/internal/apiclient"
	"github.com/Varun5711/carmate/internal/models"
	"github.com/Varun5711/carmate/internal/upload"
	"github.com/Varun5711/carmate/internal/validation"
)

// API is the backend surface the screens use; *apiclient.Client implements it.
type API interface {
	Login(ctx context.Context, creds models.Credentials) apiclient.Result
	Register(ctx context.Context, req models.RegistrationRequest) apiclient.Result
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) apiclient.Result
	UpdateProfile(ctx context.Context, auth http.Header, req models.ProfileUpdate) apiclient.Result
	MyRequests(ctx context.Context, auth http.Header) apiclient.Result
	CreateServiceRequest(ctx context.Context, auth http.Header, req models.ServiceRequest, photos []apiclient.File) apiclient.Result
	UploadPhotos(ctx context.Context, auth http.Header, requestID string, photos []apiclient.File) apiclient.Result
	ListUsers(ctx context.Context, auth http.Header) apiclient.Result
	ToggleUser(ctx context.Context, auth http.Header, userID string) apiclient.Result
}

var _ API = (*apiclient.Client)(nil)

// Login stores the token and user in the session on success.
func Login(ctx context.Context, pc *Context, api API, creds models.Credentials) Outcome {
	resp, out := Submit[models.LoginResponse](ctx, pc, Action{
		Name:     "Login",
		Validate: func() validation.Failures { return validation.Login(creds) },
		Call: func(ctx context.Context, _ http.Header) apiclient.Result {
			return api.Login(ctx, creds.Normalize())
		},
		Messages: map[OutcomeKind]string{
			Success:    "Login successful!",
			AuthFailed: "Invalid email or password.",
		},
	})
	if out.OK() {
		pc.Session.SetLogin(resp.Token, resp.User)
	}
	return out
}

// Register returns the created user when the backend echoed one.
func Register(ctx context.Context, pc *Context, api API, req models.RegistrationRequest, confirmPassword string) (*models.User, Outcome) {
	resp, out := Submit[models.UserResponse](ctx, pc, Action{
		Name:     "Register",
		Validate: func() validation.Failures { return validation.Registration(req, confirmPassword) },
		Call: func(ctx context.Context, _ http.Header) apiclient.Result {
			return api.Register(ctx, req.Normalize())
		},
		Messages: map[OutcomeKind]string{
			Success:  "Registration successful!",
			Conflict: "An account with that email already exists.",
		},
	})
	return resp.User, out
}

func ForgotPassword(ctx context.Context, pc *Context, api API, req models.ForgotPasswordRequest) Outcome {
	_, out := Submit[json.RawMessage](ctx, pc, Action{
		Name:     "Forgot password",
		Validate: func() validation.Failures { return validation.ForgotPassword(req) },
		Call: func(ctx context.Context, _ http.Header) apiclient.Result {
			return api.ForgotPassword(ctx, req.Normalize())
		},
		Messages: map[OutcomeKind]string{
			Success: "If that email is registered, a reset link is on its way.",
		},
	})
	return out
}

// UpdateProfile refreshes the session user from the response.
func UpdateProfile(ctx context.Context, pc *Context, api API, req models.ProfileUpdate, confirmPassword string) (*models.User, Outcome) {
	resp, out := Submit[models.UserResponse](ctx, pc, Action{
		Name:      "Update profile",
		Protected: true,
		Validate:  func() validation.Failures { return validation.ProfileUpdate(req, confirmPassword) },
		Call: func(ctx context.Context, auth http.Header) apiclient.Result {
			return api.UpdateProfile(ctx, auth, req.Normalize())
		},
		Messages: map[OutcomeKind]string{
			Success:  "Profile updated successfully!",
			Conflict: "That email is already used by another account.",
		},
	})
	if out.OK() && resp.User != nil {
		pc.Session.User = resp.User
	}
	return resp.User, out
}

func MyRequests(ctx context.Context, pc *Context, api API) ([]models.ServiceRequestSummary, Outcome) {
	return Submit[[]models.ServiceRequestSummary](ctx, pc, Action{
		Name:      "My requests",
		Protected: true,
		Call:      api.MyRequests,
		Messages: map[OutcomeKind]string{
			AuthFailed: "Session expired. Please login again.",
		},
	})
}

// CreateServiceRequest attaches photos when paths are given; their handles
// are released before returning.
func CreateServiceRequest(ctx context.Context, pc *Context, api API, req models.ServiceRequest, photoPaths []string) (*models.CreatedRequest, Outcome) {
	var batch *upload.Batch
	defer func() { batch.Close() }()

	created, out := Submit[models.CreatedRequest](ctx, pc, Action{
		Name:      "Create request",
		Protected: true,
		Validate: func() validation.Failures {
			failures := validation.ServiceRequest(req, pc.Now())
			if len(photoPaths) > 0 {
				failures = openPhotos(&batch, photoPaths, failures)
			}
			return failures
		},
		Call: func(ctx context.Context, auth http.Header) apiclient.Result {
			var files []apiclient.File
			if batch != nil {
				files = batch.Files()
			}
			return api.CreateServiceRequest(ctx, auth, req.Normalize(), files)
		},
		Messages: map[OutcomeKind]string{
			Success: "Service request created!",
		},
	})
	if !out.OK() {
		return nil, out
	}
	return &created, out
}

func UploadPhotos(ctx context.Context, pc *Context, api API, requestID string, paths []string) Outcome {
	var batch *upload.Batch
	defer func() { batch.Close() }()

	_, out := Submit[json.RawMessage](ctx, pc, Action{
		Name:      "Upload photos",
		Protected: true,
		Validate: func() validation.Failures {
			failures := validation.PhotoUpload(requestID, paths)
			if len(paths) > 0 {
				failures = openPhotos(&batch, paths, failures)
			}
			return failures
		},
		Call: func(ctx context.Context, auth http.Header) apiclient.Result {
			return api.UploadPhotos(ctx, auth, requestID, batch.Files())
		},
		Messages: map[OutcomeKind]string{
			Success:    "Photos uploaded successfully!",
			AuthFailed: "Unauthorized. Please login again.",
		},
	})
	return out
}

// openPhotos reports an unreadable or non-image file alongside the form's
// other failures. On success the batch is left for the caller to close.
func openPhotos(batch **upload.Batch, paths []string, failures validation.Failures) validation.Failures {
	b, err := upload.Open(paths)
	if err != nil {
		return append(failures, validation.FieldError{Field: "photos", Message: err.Error()})
	}
	*batch = b
	return failures
}

func ListUsers(ctx context.Context, pc *Context, api API) ([]models.User, Outcome) {
	return Submit[[]models.User](ctx, pc, Action{
		Name:      "List users",
		Protected: true,
		Call:      api.ListUsers,
		Messages: map[OutcomeKind]string{
			ServerFailed: "Failed to fetch users.",
		},
	})
}

func ToggleUser(ctx context.Context, pc *Context, api API, user models.User) Outcome {
	_, out := Submit[json.RawMessage](ctx, pc, Action{
		Name:      "Toggle user",
		Protected: true,
		Validate:  func() validation.Failures { return validation.ToggleUser(user.ID.String()) },
		Call: func(ctx context.Context, auth http.Header) apiclient.Result {
			return api.ToggleUser(ctx, auth, user.ID.String())
		},
		Messages: map[OutcomeKind]string{
			Success: "User status updated for " + user.DisplayName() + ".",
		},
	})
	return out
}
