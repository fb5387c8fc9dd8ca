package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/pkg/binder"
	"github.com/JhonRainbow6/WebProject/pkg/requestid"
	"github.com/JhonRainbow6/WebProject/pkg/validator"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) handler.ErrorBody {
	t.Helper()
	var body handler.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req loginRequest) handler.Response {
		return handler.JSON(map[string]string{"email": req.Email})
	}

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(echo, handler.WithBinder[handler.Context, loginRequest](binder.JSON()))

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co"}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":"a@b.co"}`, w.Body.String())
	})

	t.Run("bind failure goes to error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(echo,
			handler.WithBinder[handler.Context, loginRequest](binder.JSON()),
			handler.WithErrorHandler[handler.Context, loginRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h(w, r)

		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.ErrorIs(t, got, binder.ErrFailedToParseJSON)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, loginRequest) handler.Response { return nil })

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", decodeError(t, w).Code)
	})

	t.Run("fail hands error to error handler", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(handler.Context, loginRequest) handler.Response {
			return handler.Fail(handler.ErrConflict.Wrap(errors.New("dup")))
		})

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "conflict", decodeError(t, w).Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, loginRequest] {
			return func(next handler.HandlerFunc[handler.Context, loginRequest]) handler.HandlerFunc[handler.Context, loginRequest] {
				return func(ctx handler.Context, req loginRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}

		h := handler.Wrap(echo, handler.WithDecorators(mark("outer"), mark("inner")))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, []string{"outer", "inner"}, order)
	})
}

func TestResponses(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, handler.Created(map[string]string{"userId": "u1"}).Render(w, httptest.NewRequest(http.MethodPost, "/", nil)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"userId":"u1"}`, w.Body.String())
	})

	t.Run("raw json passthrough", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		raw := []byte(`[{"dealID":"x"}]`)
		require.NoError(t, handler.RawJSON(raw).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, raw, w.Body.Bytes())
	})

	t.Run("redirect with query", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		resp := handler.RedirectWithQuery("http://localhost:3000/profile?tab=1", url.Values{"error": {"auth_error"}})
		require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusFound, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/profile", loc.Path)
		assert.Equal(t, "auth_error", loc.Query().Get("error"))
		assert.Equal(t, "1", loc.Query().Get("tab"))
	})
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{
			name:   "http error keeps public message",
			err:    handler.ErrConflict.WithMessage("Email already registered").Wrap(errors.New("E11000 duplicate key")),
			status: http.StatusConflict,
			code:   "conflict",
			msg:    "Email already registered",
		},
		{
			name:   "wrapped http error",
			err:    fmt.Errorf("steam: %w", handler.ErrBadGateway),
			status: http.StatusBadGateway,
			code:   "bad_gateway",
			msg:    "Upstream service unavailable",
		},
		{
			name:   "message falls back to status text",
			err:    handler.NewHTTPError(http.StatusForbidden, "private_profile", ""),
			status: http.StatusForbidden,
			code:   "private_profile",
			msg:    "Forbidden",
		},
		{
			name:   "malformed body",
			err:    fmt.Errorf("%w: eof", binder.ErrFailedToParseJSON),
			status: http.StatusBadRequest,
			code:   "bad_request",
			msg:    "Invalid request",
		},
		{
			name:   "wrong media type",
			err:    binder.ErrMissingContentType,
			status: http.StatusUnsupportedMediaType,
			code:   "unsupported_media_type",
			msg:    "Unsupported media type",
		},
		{
			name:   "unknown errors stay opaque",
			err:    errors.New("mongo: connection refused at 10.0.0.3"),
			status: http.StatusInternalServerError,
			code:   "internal_error",
			msg:    "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, body := handler.ClassifyError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.msg, body.Error)
			assert.Empty(t, body.Fields)
		})
	}

	t.Run("validation errors carry fields", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("email", ""),
			validator.MinLen("password", "abc", 6),
		)
		status, body := handler.ClassifyError(fmt.Errorf("register: %w", err))

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "validation_error", body.Code)
		assert.NotEmpty(t, body.Error)
		require.Len(t, body.Fields, 2)
		assert.True(t, body.Fields.HasRule("email", validator.RuleRequired))
		assert.True(t, body.Fields.HasRule("password", validator.RuleTooShort))
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	eh := handler.NewErrorHandler(log)

	t.Run("client error logs warn", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
		r = r.WithContext(requestid.WithContext(r.Context(), "req-1"))
		w := httptest.NewRecorder()

		eh(handler.NewContext(w, r), handler.ErrUnauthorized)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeError(t, w)
		assert.Equal(t, "unauthorized", body.Code)
		assert.Equal(t, "Authentication required", body.Error)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, float64(http.StatusUnauthorized), entry["status_code"])
		logs.Reset()
	})

	t.Run("server error logs error without leaking", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware := handler.ErrorResponse(eh)
		middleware(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("secret detail"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret detail")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
		assert.Equal(t, "ERROR", entry["level"])
		assert.Contains(t, entry["error"], "secret detail")
	})
}
