// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	tests := []struct {
		name       string
		handle     func(w http.ResponseWriter)
		wantStatus int
		wantSize   int
	}{
		{
			name:       "secret stored",
			handle:     func(w http.ResponseWriter) { w.WriteHeader(http.StatusCreated); _, _ = w.Write([]byte(`{"id":1}`)) },
			wantStatus: http.StatusCreated,
			wantSize:   8,
		},
		{
			name: "body in two chunks gets implicit 200",
			handle: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(`{"name":"note",`))
				_, _ = w.Write([]byte(`"message":"hi"}`))
			},
			wantStatus: http.StatusOK,
			wantSize:   30,
		},
		{
			name:       "second status ignored",
			handle:     func(w http.ResponseWriter) { w.WriteHeader(http.StatusNotFound); w.WriteHeader(http.StatusOK) },
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "empty write",
			handle:     func(w http.ResponseWriter) { _, _ = w.Write(nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:   "handler writes nothing",
			handle: func(w http.ResponseWriter) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rw := &responseWriter{ResponseWriter: rec}

			tt.handle(rw)

			assert.Equal(t, tt.wantStatus, rw.status)
			assert.Equal(t, tt.wantSize, rw.size)
			assert.Equal(t, tt.wantSize, rec.Body.Len())
			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestResponseWriter_HeadersReachRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.Header().Set("Authorization", "Bearer abc")
	_, err := rw.Write([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", rec.Header().Get("Authorization"))
	assert.Same(t, rec, rw.Unwrap().(*httptest.ResponseRecorder))
}

func TestResponseWriter_ResponseController(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	require.NoError(t, http.NewResponseController(rw).Flush())
	assert.True(t, rec.Flushed)
}
