package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/MikhailRaia/shorturls/internal/handler"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage/memory"
)

func newExampleRouter() http.Handler {
	svc := service.NewURLService(memory.NewStorage(), service.NewAllocator(6, service.DefaultMaxAttempts))
	return handler.NewHandler(svc, "http://localhost:8080").RegisterRoutes()
}

func ExampleHandler_RegisterRoutes_create() {
	router := newExampleRouter()

	req := httptest.NewRequest(http.MethodPost, "/shorturls",
		strings.NewReader(`{"url":"https://example.com","shortcode":"abc123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	fmt.Println(rec.Code)
	fmt.Println(strings.Contains(rec.Body.String(), `"short_url":"http://localhost:8080/shorturls/abc123"`))

	// Output:
	// 201
	// true
}

func ExampleHandler_RegisterRoutes_redirect() {
	router := newExampleRouter()

	create := httptest.NewRequest(http.MethodPost, "/shorturls",
		strings.NewReader(`{"url":"https://example.com/docs","shortcode":"docs"}`))
	router.ServeHTTP(httptest.NewRecorder(), create)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shorturls/docs", nil))

	fmt.Println(rec.Code)
	fmt.Println(rec.Header().Get("Location"))

	// Output:
	// 302
	// https://example.com/docs
}

func ExampleHandler_RegisterRoutes_json() {
	router := newExampleRouter()

	create := httptest.NewRequest(http.MethodPost, "/shorturls",
		strings.NewReader(`{"url":"https://example.com/docs","shortcode":"docs"}`))
	router.ServeHTTP(httptest.NewRecorder(), create)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shorturls/docs?json=true", nil))

	fmt.Println(rec.Code)
	fmt.Println(rec.Body.String())

	// Output:
	// 200
	// {"original_url":"https://example.com/docs"}
}
