package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/Varun5711/carmate/internal/config"
	"github.com/Varun5711/carmate/internal/logger"
)

const maxResponseBytes = 4 << 20

// File is one multipart file part. Content is read fully before the call.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

type Form struct {
	Fields    map[string]string
	FileField string
	Files     []File
}

// Request describes one call. JSON and Form are mutually exclusive.
type Request struct {
	Method  string
	Path    string
	JSON    interface{}
	Form    *Form
	Header  http.Header
	Timeout time.Duration
}

type Client struct {
	baseURL  string
	http     *http.Client
	timeouts config.APIConfig
	log      *logger.Logger
}

func New(cfg config.APIConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{},
		timeouts: cfg,
		log:      log,
	}
}

// Do performs exactly one HTTP call. Every failure is reported in the Result.
func (c *Client) Do(ctx context.Context, req Request) Result {
	start := time.Now()

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := c.build(ctx, req)
	if err != nil {
		c.log.Warn("%s %s: build request: %v", req.Method, req.Path, err)
		return Transport(err)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("%s %s failed after %s: %v", req.Method, req.Path, time.Since(start), err)
		return Transport(fmt.Errorf("%s %s: %w", req.Method, req.Path, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.log.Warn("%s %s: read body: %v", req.Method, req.Path, err)
		return Transport(fmt.Errorf("read %s %s response: %w", req.Method, req.Path, err))
	}

	res := Classify(resp.StatusCode, resp.Header.Get("Content-Type"), body)
	c.log.Debug("%s %s -> %d %s (%s)", req.Method, req.Path, resp.StatusCode, res.Kind, time.Since(start))
	return res
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	var (
		body        io.Reader
		contentType string
	)

	switch {
	case req.Form != nil:
		buf, ct, err := encodeForm(req.Form)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode JSON body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	return httpReq, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeForm(form *Form) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for name, value := range form.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	field := form.FileField
	if field == "" {
		field = "photos"
	}

	for _, f := range form.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(field), quoteEscaper.Replace(f.Name)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("read %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
