package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

type testAPI struct {
	t      *testing.T
	router *gin.Engine
}

func newTestAPI(t *testing.T, seed bool) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New()
	members := NewMemberService(st, "test-secret", time.Hour)
	if seed {
		require.NoError(t, Seed(context.Background(), st, members))
	}
	now := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return &testAPI{t: t, router: NewRouter(Deps{Store: st, Members: members, Now: now})}
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/members/login", "", models.LoginRequest{Email: email, Password: password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp models.LoginResponse
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(a.t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSignupLoginProfile(t *testing.T) {
	api := newTestAPI(t, false)

	signup := models.SignupRequest{Email: "kim@simcar.kr", Password: "abcd1234", Name: "김철수", Phone: "010-2222-3333"}
	w := api.do(http.MethodPost, "/api/members/join", "", signup)
	require.Equal(t, http.StatusCreated, w.Code)

	w = api.do(http.MethodPost, "/api/members/join", "", signup)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPost, "/api/members/login", "", models.LoginRequest{Email: signup.Email, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := api.login(signup.Email, signup.Password)

	w = api.do(http.MethodGet, "/api/members/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.UserProfile{Email: "kim@simcar.kr", Name: "김철수", Phone: "010-2222-3333"},
		decode[models.UserProfile](t, w))

	w = api.do(http.MethodPut, "/api/members/profile", token, models.ProfileUpdate{Name: "김영희", Phone: "010-4444-5555", Password: "newpass99"})
	require.Equal(t, http.StatusNoContent, w.Code)
	api.login(signup.Email, "newpass99")

	w = api.do(http.MethodDelete, "/api/members/profile", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodGet, "/api/members/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignup_Validation(t *testing.T) {
	api := newTestAPI(t, false)

	w := api.do(http.MethodPost, "/api/members/join", "", models.SignupRequest{Email: "x", Password: "a", Name: "k", Phone: "1"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode[models.ErrorResponse](t, w).Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/members/profile"},
		{http.MethodGet, "/api/members/favorites"},
		{http.MethodPost, "/api/favorites/1"},
		{http.MethodDelete, "/api/cars/1"},
	} {
		w := api.do(tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)

		w = api.do(tc.method, tc.path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}

func TestListCars_Filters(t *testing.T) {
	api := newTestAPI(t, true)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"chevrolet", "bmw", "kia", "hyundai"}},
		{"?brands=kia,bmw", []string{"bmw", "kia"}},
		{"?minPrice=20000000", []string{"bmw", "hyundai"}},
		{"?minYear=2020&maxYear=2020", []string{"bmw"}},
		{"?transmissions=manual", []string{"chevrolet"}},
		{"?searchTerm=santa", []string{"hyundai"}},
		{"?colors=green", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := api.do(http.MethodGet, "/api/cars"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code)

			got := []string{}
			for _, s := range decode[[]models.ListingSummary](t, w) {
				got = append(got, s.Brand)
				assert.True(t, strings.HasPrefix(s.ImageURL, "/images/"))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCarDetailAndDiagnosis(t *testing.T) {
	api := newTestAPI(t, true)

	w := api.do(http.MethodGet, "/api/cars/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[models.ListingDetail](t, w)
	assert.Equal(t, "hyundai", d.Brand)
	assert.Equal(t, "심카", d.SellerName)
	require.Len(t, d.Images, 1)

	w = api.do(http.MethodGet, d.Images[0].FilePath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	w = api.do(http.MethodGet, "/api/cars/1/diagnosis", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	diag := decode[models.Diagnosis](t, w)
	assert.Equal(t, int64(1), diag.CarID)
	assert.InDelta(t, 84.7, diag.ReliabilityScore, 0.01)
	assert.NotEmpty(t, diag.EvaluationComment)

	w = api.do(http.MethodGet, "/api/cars/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = api.do(http.MethodGet, "/api/cars/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func multipartBody(t *testing.T, fields models.CarFields, images int) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	b, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("request", string(b)))

	for i := 0; i < images; i++ {
		fw, err := mw.CreateFormFile("images", "car.png")
		require.NoError(t, err)
		img, err := swatch(10)
		require.NoError(t, err)
		_, err = fw.Write(img)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func TestRegisterUpdateDeleteCar(t *testing.T) {
	api := newTestAPI(t, true)
	token := api.login(DemoEmail, DemoPassword)

	fields := demoCars[0]
	fields.ContactNumber = "010-9999-8888"

	body, ct := multipartBody(t, fields, 2)
	req := httptest.NewRequest(http.MethodPost, "/api/cars", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "5", strings.TrimSpace(w.Body.String()))

	w = api.do(http.MethodGet, "/api/members/sales", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ListingSummary](t, w), 5)

	fields.Price = 30000000
	w = api.do(http.MethodPut, "/api/cars/5", token, fields)
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[models.ListingDetail](t, w)
	assert.Equal(t, int64(30000000), d.Price)

	w = api.do(http.MethodPut, "/api/cars/5/thumbnail/"+itoa(d.Images[1].ID), token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(http.MethodDelete, "/api/cars/5", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodDelete, "/api/cars/5", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterCar_RequiresImages(t *testing.T) {
	api := newTestAPI(t, true)
	token := api.login(DemoEmail, DemoPassword)

	fields := demoCars[0]
	fields.ContactNumber = "010-9999-8888"
	body, ct := multipartBody(t, fields, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/cars", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFavoritesRoundTrip(t *testing.T) {
	api := newTestAPI(t, true)
	token := api.login(DemoEmail, DemoPassword)

	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/favorites/2", token, nil).Code)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodPost, "/api/favorites/2", token, nil).Code)

	w := api.do(http.MethodGet, "/api/members/favorites", token, nil)
	favs := decode[[]models.ListingSummary](t, w)
	require.Len(t, favs, 1)
	assert.Equal(t, int64(2), favs[0].ID)

	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/favorites/2", token, nil).Code)
	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/favorites/2", token, nil).Code)

	w = api.do(http.MethodGet, "/api/members/favorites", token, nil)
	assert.Empty(t, decode[[]models.ListingSummary](t, w))

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/api/favorites/999", token, nil).Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	api := newTestAPI(t, false)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = api.do(http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
