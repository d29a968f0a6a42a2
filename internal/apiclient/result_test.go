package apiclient

import (
	"testing"
)

func TestClassify_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{200, Success},
		{201, Success},
		{202, Success},
		{204, ServerError},
		{301, ServerError},
		{400, ValidationFailure},
		{401, AuthFailure},
		{403, AuthFailure},
		{404, ServerError},
		{409, ServerError},
		{422, ServerError},
		{500, ServerError},
		{503, ServerError},
		{0, ServerError},
		{-1, ServerError},
		{999, ServerError},
	}

	for _, tt := range tests {
		got := Classify(tt.status, "text/plain", []byte("x"))
		if got.Kind != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.status, got.Kind, tt.want)
		}
		if got.Status != tt.status {
			t.Errorf("Classify(%d) kept status %d", tt.status, got.Status)
		}
	}
}

func TestClassify_SuccessParsesOnlyJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantJSON    bool
	}{
		{"json", "application/json", `{"token":"t"}`, true},
		{"json with charset", "application/json; charset=utf-8", `{"token":"t"}`, true},
		{"problem json", "application/problem+json", `{"a":1}`, true},
		{"html", "text/html", `{"token":"t"}`, false},
		{"no content type", "", `{"token":"t"}`, false},
		{"malformed json", "application/json", `{"token":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(200, tt.contentType, []byte(tt.body))
			if got.Kind != Success {
				t.Fatalf("expected success, got %s", got.Kind)
			}
			if (len(got.JSON) > 0) != tt.wantJSON {
				t.Errorf("JSON present = %v, want %v", len(got.JSON) > 0, tt.wantJSON)
			}
			if got.Body != tt.body {
				t.Errorf("raw body not kept: %q", got.Body)
			}
		})
	}
}

func TestClassify_BadRequestMessage(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"message field", "application/json", `{"message":"Email taken"}`, "Email taken"},
		{"no message field", "application/json", `{"error":"x"}`, "Bad Request"},
		{"json sent as text", "text/plain", `{"message":"Phone invalid"}`, "Phone invalid"},
		{"plain text", "text/plain", "phone missing", "phone missing"},
		{"json array", "application/json", `["a"]`, `["a"]`},
		{"non-string message", "application/json", `{"message":42}`, "42"},
		{"empty body", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(400, tt.contentType, []byte(tt.body))
			if got.Kind != ValidationFailure {
				t.Fatalf("expected validation failure, got %s", got.Kind)
			}
			if got.Message != tt.want {
				t.Errorf("Message = %q, want %q", got.Message, tt.want)
			}
		})
	}
}

func TestClassify_AuthKeepsRawBody(t *testing.T) {
	got := Classify(401, "application/json", []byte(`{"message":"bad creds"}`))
	if got.Kind != AuthFailure {
		t.Fatalf("expected auth failure, got %s", got.Kind)
	}
	if got.Body != `{"message":"bad creds"}` {
		t.Errorf("unexpected body %q", got.Body)
	}
	if got.JSON != nil {
		t.Error("auth failures should not carry parsed JSON")
	}
}

func TestResult_Decode(t *testing.T) {
	got := Classify(201, "application/json", []byte(`{"user":{"id":"u42"}}`))

	var payload struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := got.Decode(&payload); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if payload.User.ID != "u42" {
		t.Errorf("expected u42, got %q", payload.User.ID)
	}

	empty := Classify(200, "text/plain", []byte("ok"))
	if err := empty.Decode(&payload); err != ErrNoJSONBody {
		t.Errorf("expected ErrNoJSONBody, got %v", err)
	}
}
