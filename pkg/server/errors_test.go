// Copyright (c) 2026, Joyent, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	cmonerrors "github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

func TestHTTPStatusFromCode(t *testing.T) {
	tests := []struct {
		name string
		code cmonerrors.ErrorCode
		want int
	}{
		{"invalid request", cmonerrors.ErrCodeInvalidRequest, http.StatusBadRequest},
		{"not found", cmonerrors.ErrCodeNotFound, http.StatusNotFound},
		{"method not allowed", cmonerrors.ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{"rate limit", cmonerrors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{"unavailable", cmonerrors.ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"timeout", cmonerrors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{"internal", cmonerrors.ErrCodeInternal, http.StatusInternalServerError},
		{"kstat read", cmonerrors.ErrCodeKstatRead, http.StatusInternalServerError},
		{"configuration", cmonerrors.ErrCodeConfiguration, http.StatusInternalServerError},
		{"unknown defaults to internal", cmonerrors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatusFromCode(tt.code); got != tt.want {
				t.Fatalf("HTTPStatusFromCode(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestRetryableFromCode(t *testing.T) {
	tests := []struct {
		name string
		code cmonerrors.ErrorCode
		want bool
	}{
		{"invalid request", cmonerrors.ErrCodeInvalidRequest, false},
		{"not found", cmonerrors.ErrCodeNotFound, false},
		{"method not allowed", cmonerrors.ErrCodeMethodNotAllowed, false},
		{"configuration", cmonerrors.ErrCodeConfiguration, false},
		{"timeout", cmonerrors.ErrCodeTimeout, true},
		{"unavailable", cmonerrors.ErrCodeUnavailable, true},
		{"rate limit", cmonerrors.ErrCodeRateLimitExceeded, true},
		{"kstat read", cmonerrors.ErrCodeKstatRead, true},
		{"partial collection", cmonerrors.ErrCodePartialCollection, true},
		{"internal", cmonerrors.ErrCodeInternal, true},
		{"unknown defaults false", cmonerrors.ErrorCode("SOMETHING_ELSE"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryableFromCode(tt.code); got != tt.want {
				t.Fatalf("retryableFromCode(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestMergeDetails(t *testing.T) {
	t.Run("both empty returns nil", func(t *testing.T) {
		if got := mergeDetails(nil, nil); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
		if got := mergeDetails(map[string]any{}, map[string]any{}); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})

	t.Run("merges and second overwrites", func(t *testing.T) {
		a := map[string]any{"a": 1, "shared": "old"}
		b := map[string]any{"b": 2, "shared": "new"}

		got := mergeDetails(a, b)
		if got == nil {
			t.Fatal("expected map, got nil")
		}
		if got["a"].(int) != 1 {
			t.Fatalf("expected a=1, got %#v", got["a"])
		}
		if got["b"].(int) != 2 {
			t.Fatalf("expected b=2, got %#v", got["b"])
		}
		if got["shared"].(string) != "new" {
			t.Fatalf("expected shared to be overwritten to 'new', got %#v", got["shared"])
		}
	})
}

func TestWriteError_WritesErrorResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), contextKeyRequestID, "req-123"))
	w := httptest.NewRecorder()

	WriteError(w, req, http.StatusBadRequest, cmonerrors.ErrCodeInvalidRequest, "bad request", false, map[string]any{"k": "v"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Code != string(cmonerrors.ErrCodeInvalidRequest) {
		t.Fatalf("expected code %q, got %q", cmonerrors.ErrCodeInvalidRequest, resp.Code)
	}
	if resp.Message != "bad request" {
		t.Fatalf("expected message %q, got %q", "bad request", resp.Message)
	}
	if resp.RequestID != "req-123" {
		t.Fatalf("expected requestId %q, got %q", "req-123", resp.RequestID)
	}
	if resp.Retryable {
		t.Fatalf("expected retryable=false, got true")
	}
	if resp.Details == nil || resp.Details["k"].(string) != "v" {
		t.Fatalf("expected details to include k=v, got %#v", resp.Details)
	}
}

func TestWriteErrorFromErr_StructuredErrorMapsStatusAndDetails(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	cause := errors.New("vmadm is down")
	err := cmonerrors.WrapWithContext(cmonerrors.ErrCodeUnavailable, "cannot enumerate zones", cause, map[string]any{"component": "vmadm"})

	WriteErrorFromErr(w, req, err, "fallback", map[string]any{"extra": "yes"})

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var resp ErrorResponse
	if uerr := json.Unmarshal(w.Body.Bytes(), &resp); uerr != nil {
		t.Fatalf("failed to unmarshal response: %v", uerr)
	}

	if resp.Code != string(cmonerrors.ErrCodeUnavailable) {
		t.Fatalf("expected code %q, got %q", cmonerrors.ErrCodeUnavailable, resp.Code)
	}
	if resp.Message != "cannot enumerate zones" {
		t.Fatalf("expected message %q, got %q", "cannot enumerate zones", resp.Message)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details == nil {
		t.Fatalf("expected details, got nil")
	}
	if resp.Details["component"].(string) != "vmadm" {
		t.Fatalf("expected component=vmadm, got %#v", resp.Details["component"])
	}
	if resp.Details["extra"].(string) != "yes" {
		t.Fatalf("expected extra=yes, got %#v", resp.Details["extra"])
	}
	if resp.Details["error"].(string) != "vmadm is down" {
		t.Fatalf("expected error cause propagated, got %#v", resp.Details["error"])
	}
}

func TestWriteErrorFromErr_NonStructuredFallsBackToInternal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	WriteErrorFromErr(w, req, errors.New("boom"), "fallback", map[string]any{"x": "y"})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if resp.Code != string(cmonerrors.ErrCodeInternal) {
		t.Fatalf("expected code %q, got %q", cmonerrors.ErrCodeInternal, resp.Code)
	}
	if resp.Message != "fallback" {
		t.Fatalf("expected message %q, got %q", "fallback", resp.Message)
	}
	if !resp.Retryable {
		t.Fatalf("expected retryable=true")
	}
	if resp.Details == nil || resp.Details["x"].(string) != "y" {
		t.Fatalf("expected details to include x=y, got %#v", resp.Details)
	}
	if resp.Details["error"].(string) != "boom" {
		t.Fatalf("expected details error=boom, got %#v", resp.Details["error"])
	}
}
