package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerbook/internal/errors"
	"ledgerbook/internal/logger"
)

var testSecret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func setupAuthRouter(disabled bool) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(testSecret, disabled))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": c.GetString(ActorKey)})
	})
	return r
}

func doAuthRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := GenerateToken("alice", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	expired, err := GenerateToken("alice", testSecret, -time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	foreign, err := GenerateToken("mallory", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		disabled   bool
		wantStatus int
		wantActor  string
	}{
		{name: "valid_token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantActor: "alice"},
		{name: "missing_header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "expired_token", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong_secret", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
		{name: "garbage", header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{name: "disabled", header: "", disabled: true, wantStatus: http.StatusOK, wantActor: "anonymous"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doAuthRequest(setupAuthRouter(tc.disabled), tc.header)
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
			body := parseBody(t, rec)
			if tc.wantStatus == http.StatusOK {
				if body["actor"] != tc.wantActor {
					t.Errorf("expected actor %q, got %v", tc.wantActor, body["actor"])
				}
				return
			}
			errObj := body["error"].(map[string]interface{})
			if errObj["code"] != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED, got %v", errObj["code"])
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		token, err := GenerateToken("ledgerctl", testSecret, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, err := ParseToken(token, testSecret)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.Subject != "ledgerctl" {
			t.Errorf("expected subject ledgerctl, got %s", claims.Subject)
		}
	})

	t.Run("empty_subject", func(t *testing.T) {
		if _, err := GenerateToken(" ", testSecret, time.Minute); err == nil {
			t.Error("expected an error for an empty subject")
		}
	})
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "app_error", err: apperrors.ErrUnbalancedEntry, wantStatus: http.StatusBadRequest, wantCode: "UNBALANCED_ENTRY"},
		{name: "wrapped_cause", err: apperrors.Wrap(apperrors.ErrInternalServer, errors.New("disk full")), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
		{name: "plain_error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(ErrorHandler())
			r.GET("/fail", func(c *gin.Context) {
				_ = c.Error(tc.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/fail", http.NoBody)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			errObj := parseBody(t, rec)["error"].(map[string]interface{})
			if errObj["code"] != tc.wantCode {
				t.Errorf("expected code %s, got %v", tc.wantCode, errObj["code"])
			}
			if tc.wantCode == "INTERNAL_ERROR" && errObj["message"] != apperrors.ErrInternalServer.Message {
				t.Errorf("expected generic message, got %v", errObj["message"])
			}
		})
	}
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": RequestID(c)})
	})

	t.Run("assigns_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		id := rec.Header().Get("X-Request-ID")
		if id == "" {
			t.Fatal("expected X-Request-ID header")
		}
		if parseBody(t, rec)["request_id"] != id {
			t.Error("expected handler to see the same request ID")
		}
	})

	t.Run("reuses_incoming_id", func(t *testing.T) {
		incoming := "0190a1b2-0000-7000-8000-000000000009"
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set("X-Request-ID", incoming)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %s, got %s", incoming, got)
		}
	})

	t.Run("replaces_malformed_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
		req.Header.Set("X-Request-ID", "not a uuid")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got == "not a uuid" {
			t.Error("expected malformed request ID to be replaced")
		}
	})
}
