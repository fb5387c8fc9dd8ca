package account_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/modules/account"
	"github.com/JhonRainbow6/WebProject/pkg/auth"
	"github.com/JhonRainbow6/WebProject/pkg/auth/authtest"
	"github.com/JhonRainbow6/WebProject/pkg/file"
	"github.com/JhonRainbow6/WebProject/pkg/jwt"
	"github.com/JhonRainbow6/WebProject/pkg/logger"
)

const testSecret = "test-secret-32-chars-long-123456"

var (
	pngData = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x01}, 64)...)
	gifData = append([]byte("GIF89a"), bytes.Repeat([]byte{0x02}, 64)...)
)

type fixture struct {
	cfg      account.Config
	storage  *authtest.Storage
	tokens   *auth.JWTTokens
	accounts *auth.AccountService
	resolver *auth.Resolver
	codes    *auth.ExchangeCodes
	files    *file.LocalStorage
	eh       handler.ErrorHandler[handler.Context]
}

func newFixture(t *testing.T, users ...*auth.User) *fixture {
	t.Helper()

	svc, err := jwt.NewFromString(testSecret)
	require.NoError(t, err)
	files, err := file.NewLocalStorage(t.TempDir(), "/uploads/")
	require.NoError(t, err)

	storage := authtest.NewStorage(users...)
	tokens := auth.NewJWTTokens(svc)

	return &fixture{
		cfg: account.Config{
			JWTSecret:       testSecret,
			JWTTTL:          time.Hour,
			BcryptCost:      bcrypt.MinCost,
			FrontendURL:     "http://front.test",
			BackendURL:      "http://api.test",
			CallbackPath:    "/auth/callback",
			SteamResultPath: "/profile",
			RedirectMode:    account.RedirectModeToken,
			ExchangeCodeTTL: time.Minute,
		},
		storage:  storage,
		tokens:   tokens,
		accounts: auth.NewAccountService(storage, auth.NewBcryptHasher(bcrypt.MinCost), tokens),
		resolver: auth.NewResolver(storage),
		codes:    auth.NewExchangeCodes(auth.NewMemoryOnceStore(100, time.Minute), time.Minute),
		files:    files,
		eh:       handler.NewErrorHandler(logger.Discard()),
	}
}

// api mounts the account router under /api the way the server does.
func (f *fixture) api(opts account.RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Mount("/api", account.Router(opts))
	return r
}

func (f *fixture) passwordAPI() http.Handler {
	return f.api(account.RouterOptions{
		Password: account.NewPasswordService(f.accounts, f.tokens, f.files, f.eh, account.WithExchangeCodes(f.codes)),
	})
}

func (f *fixture) token(t *testing.T, u *auth.User) string {
	t.Helper()
	token, err := f.tokens.Issue(u.ID, u.Email)
	require.NoError(t, err)
	return token
}

func (f *fixture) seedPasswordUser(t *testing.T, id, email, password string) *auth.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &auth.User{ID: id, Email: email, PasswordHash: string(hash)}
	require.NoError(t, f.storage.Create(context.Background(), u))
	return u
}

func do(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func jsonRequest(method, target, body, token string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set(jwt.AuthTokenHeader, token)
	}
	return r
}

func imageRequest(t *testing.T, token, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		fw, err := mw.CreateFormFile("profileImage", filename)
		require.NoError(t, err)
		_, err = io.Copy(fw, bytes.NewReader(data))
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("other", "x"))
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/update-profile-image", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set(jwt.AuthTokenHeader, token)
	return r
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func location(t *testing.T, w *httptest.ResponseRecorder) *url.URL {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	u, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	return u
}
