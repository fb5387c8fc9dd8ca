package account_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JhonRainbow6/WebProject/handler"
	"github.com/JhonRainbow6/WebProject/modules/account"
	"github.com/JhonRainbow6/WebProject/pkg/jwt"
)

// countingReader records how much of the body a handler pulled.
type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

func multipartImage(t *testing.T, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("profileImage", "huge.png")
	require.NoError(t, err)
	_, err = fw.Write(append(append([]byte{}, pngData...), make([]byte, size)...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestProfileImageBodyLimit(t *testing.T) {
	t.Parallel()

	const maxImage = 1 << 10
	const limit = maxImage + 1<<20

	setup := func(t *testing.T) (http.Handler, string) {
		f := newFixture(t)
		u := f.seedPasswordUser(t, "u1", "me@example.com", "secret1")
		svc := account.NewPasswordService(f.accounts, f.tokens, f.files, f.eh, account.WithMaxImageSize(maxImage))
		return f.api(account.RouterOptions{Password: svc}), f.token(t, u)
	}

	t.Run("declared length over the limit is refused unread", func(t *testing.T) {
		t.Parallel()
		api, token := setup(t)
		buf, contentType := multipartImage(t, 2<<20)
		body := &countingReader{r: buf}

		r := httptest.NewRequest(http.MethodPost, "/api/auth/update-profile-image", body)
		r.ContentLength = int64(buf.Len())
		r.Header.Set("Content-Type", contentType)
		r.Header.Set(jwt.AuthTokenHeader, token)
		w := do(api, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "request_entity_too_large", decode[handler.ErrorBody](t, w).Code)
		assert.Zero(t, body.n.Load())
	})

	t.Run("streamed body stops at the limit", func(t *testing.T) {
		t.Parallel()
		api, token := setup(t)
		buf, contentType := multipartImage(t, 4<<20)
		total := int64(buf.Len())
		body := &countingReader{r: buf}

		r := httptest.NewRequest(http.MethodPost, "/api/auth/update-profile-image", body)
		r.ContentLength = -1
		r.Header.Set("Content-Type", contentType)
		r.Header.Set(jwt.AuthTokenHeader, token)
		w := do(api, r)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
		assert.Equal(t, "request_entity_too_large", decode[handler.ErrorBody](t, w).Code)
		assert.Less(t, body.n.Load(), total)
		assert.LessOrEqual(t, body.n.Load(), int64(limit+64<<10))
	})

	t.Run("auth runs before the limit", func(t *testing.T) {
		t.Parallel()
		api, _ := setup(t)
		buf, contentType := multipartImage(t, 2<<20)

		r := httptest.NewRequest(http.MethodPost, "/api/auth/update-profile-image", buf)
		r.Header.Set("Content-Type", contentType)
		w := do(api, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
