package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"course-market/internal/concurrency"
	"course-market/internal/httpx"
	"course-market/internal/session"
)

const (
	contentTypeJSON = "application/json"
	acceptJSON      = contentTypeJSON
)

// Client talks to the course marketplace backend. One origin serves the
// JSON API, the multipart course update route and the uploaded assets.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  session.TokenSource
}

func New(baseURL string, tokens session.TokenSource) *Client {
	tr := &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	// Asset routes use cookie-based sessions, so the client keeps a jar.
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout:   2 * time.Minute,
			Transport: tr,
			Jar:       jar,
		},
		Tokens: tokens,
	}
}

/* -------- Course update -------- */

// ImageFile is a pending image attachment for the multipart update.
type ImageFile struct {
	Filename string
	Content  io.Reader
}

// UpdateCourseRequest carries the fields the PATCH route accepts.
// Numeric values travel as text because the backend parses form fields.
type UpdateCourseRequest struct {
	Title        string
	Description  string
	Duration     string
	InstructorID string
	Price        string
	VideoURL     string     // optional
	Image        *ImageFile // optional
}

// UpdateCourse sends a partial update for one course as a multipart PATCH.
// It is a single attempt: a failed update is never re-sent automatically.
func (c *Client) UpdateCourse(ctx context.Context, courseID string, req UpdateCourseRequest) error {
	token, err := c.Tokens.Token()
	if err != nil {
		return fmt.Errorf("marketapi: update course: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":         req.Title,
		"description":   req.Description,
		"duration":      req.Duration,
		"instructor_id": req.InstructorID,
		"price":         req.Price,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return fmt.Errorf("marketapi: write field %s: %w", name, err)
		}
	}
	if req.VideoURL != "" {
		if err := mw.WriteField("videoUrl", req.VideoURL); err != nil {
			return fmt.Errorf("marketapi: write field videoUrl: %w", err)
		}
	}
	if req.Image != nil {
		fw, err := mw.CreateFormFile("file", req.Image.Filename)
		if err != nil {
			return fmt.Errorf("marketapi: create image part: %w", err)
		}
		if _, err := io.Copy(fw, req.Image.Content); err != nil {
			return fmt.Errorf("marketapi: copy image content: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("marketapi: close multipart writer: %w", err)
	}

	_, _, err = httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.BaseURL+"/courses/"+url.PathEscape(courseID), bytes.NewReader(buf.Bytes()))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", mw.FormDataContentType())
			r.Header.Set("Authorization", "Bearer "+token)
			return r, nil
		},
		httpx.SingleAttempt(),
	)
	if err != nil {
		return fmt.Errorf("marketapi: update course failed: %w", err)
	}
	return nil
}

/* -------- Course delete -------- */

// DeleteCourse removes one course.
// The delete route is not protected yet, so no Authorization header is sent.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) error {
	_, _, err := httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			return http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/api/courses/"+url.PathEscape(courseID), nil)
		},
		httpx.SingleAttempt(),
	)
	if err != nil {
		return fmt.Errorf("marketapi: delete course failed: %w", err)
	}
	return nil
}

/* -------- Purchase -------- */

// ConflictError is the backend's "already bought this course" answer (409).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "marketapi: purchase conflict"
	}
	return e.Message
}

// BuyCourse charges the course to the user. Single attempt (not idempotent).
func (c *Client) BuyCourse(ctx context.Context, userID, courseID string) (map[string]any, error) {
	token, err := c.Tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("marketapi: buy course: %w", err)
	}

	_, body, err := httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost,
				c.BaseURL+"/buy-courses/"+url.PathEscape(userID)+"/"+url.PathEscape(courseID), nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", contentTypeJSON)
			r.Header.Set("Authorization", "Bearer "+token)
			return r, nil
		},
		httpx.SingleAttempt(),
	)
	if err != nil {
		var herr *httpx.HTTPError
		if errors.As(err, &herr) && herr.StatusCode == http.StatusConflict {
			var payload struct {
				StatusCode int    `json:"statusCode"`
				Message    string `json:"message"`
			}
			_ = json.Unmarshal(herr.Body, &payload)
			return nil, &ConflictError{Message: payload.Message}
		}
		return nil, fmt.Errorf("marketapi: buy course failed: %w", err)
	}

	var out map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("marketapi: buy course response: %w", err)
		}
	}
	return out, nil
}

/* -------- Registration -------- */

type RegisterUserRequest struct {
	CompleteName string `json:"completeName"`
	Birthdate    string `json:"birthdate"` // YYYY-MM-DD
	Email        string `json:"email"`
	Password     string `json:"password"`
	RoleID       int    `json:"roleId"`
}

// RegisterUser creates a new account. No credential is required.
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) error {
	b, err := json.Marshal(req)
	if err != nil {
		return err
	}

	_, _, err = httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/users", bytes.NewReader(b))
			if err != nil {
				return nil, err
			}
			r.Header.Set("Content-Type", contentTypeJSON)
			r.Header.Set("Accept", acceptJSON)
			return r, nil
		},
		httpx.SingleAttempt(),
	)
	if err != nil {
		return fmt.Errorf("marketapi: register user failed: %w", err)
	}
	return nil
}

/* -------- Assets -------- */

// FetchCourseImage downloads one uploaded course image. The route is
// idempotent so transient failures are retried, and the server may answer
// with brotli-compressed bytes.
func (c *Client) FetchCourseImage(ctx context.Context, filename string) ([]byte, error) {
	_, body, err := httpx.DoWithRetry(
		ctx,
		c.HTTP,
		func(ctx context.Context) (*http.Request, error) {
			r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/uploads/images/"+url.PathEscape(filename), nil)
			if err != nil {
				return nil, err
			}
			r.Header.Set("Accept-Encoding", "br")
			return r, nil
		},
		httpx.DefaultRetryConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("marketapi: fetch image %s failed: %w", filename, err)
	}
	return body, nil
}

// FetchCourseImages downloads many course images in parallel, one per card
// in an instructor's grid. Both slices align with the input filenames; a
// nil error entry means that image came back fine.
func (c *Client) FetchCourseImages(ctx context.Context, filenames []string, maxWorkers int) ([][]byte, []error) {
	out := make([][]byte, len(filenames))
	errs := make([]error, len(filenames))
	concurrency.ForEach(ctx, filenames, maxWorkers, func(ctx context.Context, i int, name string) error {
		b, err := c.FetchCourseImage(ctx, name)
		out[i] = b
		errs[i] = err
		return err
	})
	return out, errs
}
