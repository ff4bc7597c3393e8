package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/simcar/internal/common"
)

type fakeSession struct {
	mu      sync.Mutex
	token   string
	cleared int
	err     error
}

func (f *fakeSession) Token(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, f.err
}

func (f *fakeSession) ClearAuth(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

func newTestClient(t *testing.T, h http.HandlerFunc, sess *fakeSession, opts Options) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL + "/api"
	c, err := New(sess, opts)
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(&fakeSession{}, Options{})
	require.Error(t, err)
}

func TestHTTPClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID, gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(common.AuthorizationHeaderName)
		gotReqID = r.Header.Get(common.RequestIDHeaderName)
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	}, &fakeSession{token: "abc"}, Options{})

	var out struct {
		Message string `json:"message"`
	}
	err := c.Get(context.Background(), "/cars", url.Values{"brand": {"kia"}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc", gotAuth)
	assert.NotEmpty(t, gotReqID)
	assert.Equal(t, "/api/cars", gotPath)
	assert.Equal(t, "brand=kia", gotQuery)
	assert.Equal(t, "ok", out.Message)
}

func TestHTTPClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header[common.AuthorizationHeaderName]
		w.WriteHeader(http.StatusNoContent)
	}, &fakeSession{}, Options{})

	require.NoError(t, c.Delete(context.Background(), "/favorites/1", nil))
	assert.False(t, hasAuth)
}

func TestHTTPClient_SendsJSONBody(t *testing.T) {
	var got map[string]string
	var contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}, &fakeSession{}, Options{})

	err := c.Post(context.Background(), "/members/login", map[string]string{"email": "a@b.c"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, map[string]string{"email": "a@b.c"}, got)
}

func TestHTTPClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		kind     Kind
		sentinel error
		notFound bool
		message  string
	}{
		{"bad request", http.StatusBadRequest, `{"message":"가격을 입력하세요"}`, KindClient, ErrClientError, false, "가격을 입력하세요"},
		{"not found", http.StatusNotFound, `{"message":"no car"}`, KindClient, ErrClientError, true, "no car"},
		{"conflict plain text", http.StatusConflict, "duplicate email", KindClient, ErrClientError, false, "duplicate email"},
		{"server", http.StatusInternalServerError, "<html>oops</html>", KindServer, ErrServerError, false, ""},
		{"bad gateway", http.StatusBadGateway, "", KindServer, ErrServerError, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}, &fakeSession{}, Options{})

			err := c.Get(context.Background(), "/cars/1", nil, nil)
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.notFound, errors.Is(err, ErrNotFound))
			assert.False(t, errors.Is(err, ErrUnauthorized))
		})
	}
}

func TestHTTPClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(&fakeSession{}, Options{BaseURL: base})
	require.NoError(t, err)

	err = c.Get(context.Background(), "/cars", nil, nil)
	require.ErrorIs(t, err, ErrNetwork)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
}

func TestHTTPClient_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, &fakeSession{}, Options{Timeout: 50 * time.Millisecond})
	defer close(release)

	err := c.Get(context.Background(), "/cars", nil, nil)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestHTTPClient_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id": "not-a-number"`)
	}, &fakeSession{}, Options{})

	var out struct {
		ID int64 `json:"id"`
	}
	err := c.Get(context.Background(), "/cars/1", nil, &out)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestHTTPClient_Unauthorized_ClearsSessionAndSignalsOnce(t *testing.T) {
	sess := &fakeSession{token: "abc"}
	var fired int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, sess, Options{
		OnSessionInvalidated: func(context.Context) { fired++ },
		AtLoginEntry:         func() bool { return false },
	})

	err := c.Get(context.Background(), "/members/profile", nil, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, errors.Is(err, ErrClientError))

	assert.Equal(t, 1, sess.cleared)
	assert.Empty(t, sess.token)
	assert.Equal(t, 1, fired)
}

func TestHTTPClient_Unauthorized_AtLoginEntryDoesNotSignal(t *testing.T) {
	sess := &fakeSession{token: "abc"}
	var fired int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"bad credentials"}`)
	}, sess, Options{
		OnSessionInvalidated: func(context.Context) { fired++ },
		AtLoginEntry:         func() bool { return true },
	})

	err := c.Post(context.Background(), "/members/login", map[string]string{}, nil)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, sess.cleared)
	assert.Zero(t, fired)
}

func TestHTTPClient_TokenReadFailure(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	}, &fakeSession{err: errors.New("disk gone")}, Options{})

	err := c.Get(context.Background(), "/cars", nil, nil)
	require.Error(t, err)
	assert.False(t, called)
}

func TestHTTPClient_StringResult(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"number", "42", "42"},
		{"json string", `"42"`, "42"},
		{"plain text", "42\n", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, tt.body)
			}, &fakeSession{}, Options{})

			var id string
			require.NoError(t, c.Post(context.Background(), "/cars", nil, &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestHTTPClient_PostMultipart(t *testing.T) {
	type gotPart struct {
		field, file, contentType, data string
	}
	var parts []gotPart

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			p, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(p)
			parts = append(parts, gotPart{p.FormName(), p.FileName(), p.Header.Get("Content-Type"), string(data)})
		}
		_, _ = io.WriteString(w, "7")
	}, &fakeSession{token: "t"}, Options{})

	var id string
	err := c.PostMultipart(context.Background(), "/cars", []Part{
		{Field: "request", ContentType: "application/json", Data: []byte(`{"brand":"kia"}`)},
		{Field: "images", FileName: "a.png", ContentType: "image/png", Data: []byte("png")},
		{Field: "images", FileName: "b.jpg", ContentType: "image/jpeg", Data: []byte("jpg")},
	}, &id)
	require.NoError(t, err)
	assert.Equal(t, "7", id)

	assert.Equal(t, []gotPart{
		{"request", "", "application/json", `{"brand":"kia"}`},
		{"images", "a.png", "image/png", "png"},
		{"images", "b.jpg", "image/jpeg", "jpg"},
	}, parts)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"unauthorized", &APIError{Kind: KindUnauthorized, Status: 401}, "로그인이 필요합니다. 다시 로그인해주세요."},
		{"not found", &APIError{Kind: KindClient, Status: 404}, "요청한 정보를 찾을 수 없습니다."},
		{"client with message", &APIError{Kind: KindClient, Status: 400, Message: "중복된 이메일"}, "중복된 이메일"},
		{"client without message", &APIError{Kind: KindClient, Status: 400}, "요청이 올바르지 않습니다."},
		{"validation", NewValidationError("POST", "/cars", "이미지를 1장 이상 등록해주세요."), "이미지를 1장 이상 등록해주세요."},
		{"server", &APIError{Kind: KindServer, Status: 500}, "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요."},
		{"network", &APIError{Kind: KindNetwork}, "서버에 연결할 수 없습니다. 네트워크 상태를 확인해주세요."},
		{"decode", &APIError{Kind: KindDecode}, "서버 응답을 처리할 수 없습니다."},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestValidationError_IsClientError(t *testing.T) {
	err := NewValidationError("POST", "/cars", "x")
	assert.ErrorIs(t, err, ErrClientError)
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, errors.Is(err, ErrNotFound))
}
