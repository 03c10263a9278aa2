package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"

	"course-market/internal/session"
)

const testToken = "test-token"

func TestNew(t *testing.T) {
	client := New("http://localhost:3000", session.StaticToken(testToken))

	if client.BaseURL != "http://localhost:3000" {
		t.Errorf("Expected BaseURL to be 'http://localhost:3000', got '%s'", client.BaseURL)
	}

	if client.HTTP == nil {
		t.Fatal("Expected HTTP client to be initialized")
	}

	if client.HTTP.Timeout != 2*time.Minute {
		t.Errorf("Expected HTTP timeout to be 2 minutes, got %v", client.HTTP.Timeout)
	}

	if client.HTTP.Jar == nil {
		t.Error("Expected cookie jar to be initialized")
	}
}

func TestUpdateCourse(t *testing.T) {
	var gotAuth string
	var gotFields map[string]string
	var gotImage []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("Expected PATCH request, got %s", r.Method)
		}
		if r.URL.Path != "/courses/c-1" {
			t.Errorf("Expected path /courses/c-1, got %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("ParseMultipartForm failed: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		gotFields = map[string]string{}
		for name, vals := range r.MultipartForm.Value {
			if len(vals) > 0 {
				gotFields[name] = vals[0]
			}
		}
		if f, _, err := r.FormFile("file"); err == nil {
			gotImage, _ = io.ReadAll(f)
			f.Close()
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(testToken))
	err := client.UpdateCourse(context.Background(), "c-1", UpdateCourseRequest{
		Title:        "Curso de Go",
		Description:  "Una descripción válida",
		Duration:     "12",
		InstructorID: "prof-7",
		Price:        "49.99",
		VideoURL:     "https://www.youtube.com/watch?v=abc123",
		Image:        &ImageFile{Filename: "fondo.jpg", Content: strings.NewReader("fake image bytes")},
	})
	if err != nil {
		t.Fatalf("UpdateCourse failed: %v", err)
	}

	if gotAuth != "Bearer "+testToken {
		t.Errorf("Expected Authorization 'Bearer %s', got '%s'", testToken, gotAuth)
	}

	expected := map[string]string{
		"title":         "Curso de Go",
		"description":   "Una descripción válida",
		"duration":      "12",
		"instructor_id": "prof-7",
		"price":         "49.99",
		"videoUrl":      "https://www.youtube.com/watch?v=abc123",
	}
	for name, want := range expected {
		if gotFields[name] != want {
			t.Errorf("Expected field %s to be %q, got %q", name, want, gotFields[name])
		}
	}

	// Category and date fields must not be part of the payload
	for _, name := range []string{"category", "startDate", "endDate"} {
		if _, ok := gotFields[name]; ok {
			t.Errorf("Expected field %s to be absent from the payload", name)
		}
	}

	if string(gotImage) != "fake image bytes" {
		t.Errorf("Expected image content 'fake image bytes', got %q", string(gotImage))
	}
}

func TestUpdateCourseOmitsOptionalParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm failed: %v", err)
		}
		if _, ok := r.MultipartForm.Value["videoUrl"]; ok {
			t.Error("Expected videoUrl to be absent")
		}
		if _, _, err := r.FormFile("file"); err == nil {
			t.Error("Expected file part to be absent")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(testToken))
	err := client.UpdateCourse(context.Background(), "c-1", UpdateCourseRequest{
		Title:        "Curso de Go",
		Description:  "Una descripción válida",
		Duration:     "12",
		InstructorID: "prof-7",
		Price:        "49.99",
	})
	if err != nil {
		t.Fatalf("UpdateCourse failed: %v", err)
	}
}

func TestUpdateCourseNoRetryOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "boom"}`))
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(testToken))
	err := client.UpdateCourse(context.Background(), "c-1", UpdateCourseRequest{Title: "x"})
	if err == nil {
		t.Fatal("Expected error on 500, got nil")
	}
	if attempts != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", attempts)
	}
}

func TestUpdateCourseMissingToken(t *testing.T) {
	client := New("http://localhost:3000", session.StaticToken(""))
	err := client.UpdateCourse(context.Background(), "c-1", UpdateCourseRequest{Title: "x"})
	if !errors.Is(err, session.ErrNoToken) {
		t.Errorf("Expected ErrNoToken, got %v", err)
	}
}

func TestDeleteCourse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("Expected DELETE request, got %s", r.Method)
		}
		if r.URL.Path != "/api/courses/c-1" {
			t.Errorf("Expected path /api/courses/c-1, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Errorf("Expected no Authorization header, got '%s'", auth)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(testToken))
	if err := client.DeleteCourse(context.Background(), "c-1"); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
}

func TestBuyCourse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/buy-courses/user-1/c-1" {
			t.Errorf("Expected path /buy-courses/user-1/c-1, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			t.Errorf("Expected bearer auth, got '%s'", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "courseId": "c-1"}`))
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(testToken))
	out, err := client.BuyCourse(context.Background(), "user-1", "c-1")
	if err != nil {
		t.Fatalf("BuyCourse failed: %v", err)
	}
	if out["success"] != true {
		t.Errorf("Expected success=true in response, got %v", out)
	}
}

func TestBuyCourseConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"statusCode": 409, "message": "Ya compraste este curso"}`))
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(testToken))
	_, err := client.BuyCourse(context.Background(), "user-1", "c-1")

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected ConflictError, got %v", err)
	}
	if conflict.Message != "Ya compraste este curso" {
		t.Errorf("Expected backend message, got '%s'", conflict.Message)
	}
}

func TestRegisterUser(t *testing.T) {
	var got RegisterUserRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/users" {
			t.Errorf("Expected path /users, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected JSON content type, got '%s'", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Decode body failed: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(""))
	err := client.RegisterUser(context.Background(), RegisterUserRequest{
		CompleteName: "Ana García",
		Birthdate:    "1995-04-20",
		Email:        "ana@example.com",
		Password:     "secreta123",
		RoleID:       2,
	})
	if err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}

	if got.CompleteName != "Ana García" || got.Birthdate != "1995-04-20" || got.RoleID != 2 {
		t.Errorf("Unexpected payload: %+v", got)
	}
}

func TestFetchCourseImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uploads/images/fondo.jpg" {
			t.Errorf("Expected path /uploads/images/fondo.jpg, got %s", r.URL.Path)
		}
		w.Write([]byte("image bytes"))
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(""))
	data, err := client.FetchCourseImage(context.Background(), "fondo.jpg")
	if err != nil {
		t.Fatalf("FetchCourseImage failed: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("Expected 'image bytes', got %q", string(data))
	}
}

func TestFetchCourseImageBrotli(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Encoding") != "br" {
			t.Errorf("Expected Accept-Encoding 'br', got '%s'", r.Header.Get("Accept-Encoding"))
		}
		var buf bytes.Buffer
		bw := brotli.NewWriter(&buf)
		bw.Write([]byte("compressed image"))
		bw.Close()
		w.Header().Set("Content-Encoding", "br")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(""))
	data, err := client.FetchCourseImage(context.Background(), "fondo.jpg")
	if err != nil {
		t.Fatalf("FetchCourseImage failed: %v", err)
	}
	if string(data) != "compressed image" {
		t.Errorf("Expected decoded bytes, got %q", string(data))
	}
}

func TestFetchCourseImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		w.Write([]byte("img:" + parts[len(parts)-1]))
	}))
	defer server.Close()

	client := New(server.URL, session.StaticToken(""))
	names := []string{"a.jpg", "b.jpg", "c.jpg"}
	images, errs := client.FetchCourseImages(context.Background(), names, 2)
	for i, name := range names {
		if errs[i] != nil {
			t.Fatalf("Expected no error for %s, got %v", name, errs[i])
		}
		if string(images[i]) != "img:"+name {
			t.Errorf("Expected image %d to be 'img:%s', got %q", i, name, string(images[i]))
		}
	}
}
