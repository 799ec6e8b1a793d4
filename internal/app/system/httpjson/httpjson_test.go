package httpjson

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mentorstack/mentorhub/internal/app/system/apperrors"
)

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	Respond(rec, http.StatusCreated, map[string]string{"message": "ok"})

	if rec.Code != http.StatusCreated {
		t.Errorf("code: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if body["message"] != "ok" {
		t.Errorf("body: got %v", body)
	}
}

func TestDomainErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{fmt.Errorf("%w: task abc", apperrors.ErrNotFound), http.StatusNotFound, apperrors.ErrNotFound.Error()},
		{fmt.Errorf("%w: a submission file is required", apperrors.ErrValidation), http.StatusBadRequest, apperrors.ErrValidation.Error()},
		{fmt.Errorf("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range tests {
		rec := httptest.NewRecorder()
		DomainError(rec, tc.err)

		if rec.Code != tc.wantCode {
			t.Errorf("%v: code got %d, want %d", tc.err, rec.Code, tc.wantCode)
		}

		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("parse body: %v", err)
		}
		if body.Message != tc.wantMsg {
			t.Errorf("%v: message got %q, want %q", tc.err, body.Message, tc.wantMsg)
		}
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"fullname":"A","bogus":1}`))

	var dst struct {
		FullName string `json:"fullname"`
	}
	if err := Decode(req, &dst); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"fullname":"Ada"}`))

	var dst struct {
		FullName string `json:"fullname"`
	}
	if err := Decode(req, &dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dst.FullName != "Ada" {
		t.Errorf("got %q", dst.FullName)
	}
}
