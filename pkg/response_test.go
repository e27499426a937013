package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteResponseBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	testJson := `{"key":"val"}`
	WriteResponseBytes(rr, ContentType.JSON, []byte(testJson), http.StatusCreated)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, ContentType.JSON, rr.Header().Get("Content-Type"))
	assert.Equal(t, testJson, rr.Body.String())
}

func TestWriteResponseBytesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteResponseBytesOK(rr, ContentType.HTML, []byte("<p>hi</p>"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentType.HTML, rr.Header().Get("Content-Type"))
	assert.Equal(t, "<p>hi</p>", rr.Body.String())
}

func TestWriteTextResponseOK(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteTextResponseOK(rr, "test text")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentType.Text, rr.Header().Get("Content-Type"))
	assert.Equal(t, "test text", rr.Body.String())
}

func TestWriteJSONResponseOK(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONResponseOK(rr, `{"key":"val"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ContentType.JSON, rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"key":"val"}`, rr.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONError(rr, "Google Sheets is unavailable", "", http.StatusServiceUnavailable)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"error":"Google Sheets is unavailable"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	WriteJSON(rr, map[string]any{"bad": make(chan int)}, http.StatusOK)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
