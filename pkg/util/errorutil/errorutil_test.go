package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passthrough", NewForbidden("Insufficient access level"), "FORBIDDEN", http.StatusForbidden},
		{"wrapped domain error", fmt.Errorf("gate: %w", NewUnauthenticated("Invalid token")), "UNAUTHENTICATED", http.StatusUnauthorized},
		{"no rows", fmt.Errorf("get user: %w", pgx.ErrNoRows), "NOT_FOUND", http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "CONFLICT", http.StatusBadRequest},
		{"fiber not found", fiber.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"fiber too large", fiber.ErrRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"unknown", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
		{"invalid argument", NewInvalidArgument("Invalid level"), "INVALID_ARGUMENT", http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("Invalid admin secret"), "UNAUTHORIZED", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestToDomainError_InternalHidesDetail(t *testing.T) {
	got := ToDomainError(errors.New("pq: password authentication failed"))
	if got.Message != "internal server error" {
		t.Errorf("Message = %q, want generic message", got.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(pgx.ErrNoRows) {
		t.Error("IsNotFound(pgx.ErrNoRows) = false")
	}
	if !IsNotFound(NewNotFound("user", nil)) {
		t.Error("IsNotFound(NewNotFound) = false")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("IsNotFound(other) = true")
	}
	if ToDomainError(nil) != nil {
		t.Error("ToDomainError(nil) should be nil")
	}
}
