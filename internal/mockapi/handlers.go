package mockapi

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/validate"
	"github.com/dmitrijs2005/simcar/internal/common"
	"github.com/dmitrijs2005/simcar/internal/logging"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

type handler struct {
	store   *store.Store
	members *MemberService
	logger  logging.Logger
	now     func() time.Time
}

func errorBody(msg string) models.ErrorResponse {
	return models.ErrorResponse{Message: msg}
}

// fail maps service errors to status codes.
func (h *handler) fail(c *gin.Context, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, errorBody(verrs.Error()))
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorBody("요청한 정보를 찾을 수 없습니다."))
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, errorBody("이미 가입된 이메일입니다."))
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, errorBody("권한이 없습니다."))
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, errorBody("이메일 또는 비밀번호가 올바르지 않습니다."))
	default:
		h.logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorBody("서버 오류가 발생했습니다."))
	}
}

func (h *handler) bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("요청 형식이 올바르지 않습니다."))
		return false
	}
	if err := validate.Struct(v); err != nil {
		h.fail(c, err)
		return false
	}
	return true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody("잘못된 식별자입니다."))
		return 0, false
	}
	return id, true
}

func (h *handler) signup(c *gin.Context) {
	var req models.SignupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if _, err := h.members.Signup(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (h *handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("요청 형식이 올바르지 않습니다."))
		return
	}
	token, err := h.members.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}

func (h *handler) profile(c *gin.Context) {
	p, err := h.members.Profile(c.Request.Context(), memberIDFromContext(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) updateProfile(c *gin.Context) {
	var upd models.ProfileUpdate
	if !h.bindJSON(c, &upd) {
		return
	}
	if err := h.members.UpdateProfile(c.Request.Context(), memberIDFromContext(c), upd); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) deleteProfile(c *gin.Context) {
	if err := h.members.Delete(c.Request.Context(), memberIDFromContext(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listCars(c *gin.Context) {
	cars := h.store.Cars(c.Request.Context(), matcher(c.Request.URL.Query()))
	c.JSON(http.StatusOK, summariesOf(cars))
}

func (h *handler) mySales(c *gin.Context) {
	seller := memberIDFromContext(c)
	cars := h.store.Cars(c.Request.Context(), func(car *store.Car) bool { return car.SellerID == seller })
	c.JSON(http.StatusOK, summariesOf(cars))
}

func (h *handler) carDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	car, err := h.store.Car(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(c, car))
}

func (h *handler) detail(c *gin.Context, car *store.Car) models.ListingDetail {
	var seller string
	if m, err := h.store.MemberByID(c.Request.Context(), car.SellerID); err == nil {
		seller = m.Name
	}
	return detailOf(car, seller)
}

func (h *handler) diagnosis(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	car, err := h.store.Car(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, diagnose(car, h.now()))
}

// registerCar accepts a "request" JSON part and 1..5 "images" parts and
// answers with the bare id of the new listing.
func (h *handler) registerCar(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("multipart 형식이 아닙니다."))
		return
	}

	var fields models.CarFields
	raw, err := requestPart(form)
	if err != nil || json.Unmarshal(raw, &fields) != nil {
		c.JSON(http.StatusBadRequest, errorBody("차량 정보가 올바르지 않습니다."))
		return
	}
	if err := validate.Struct(fields); err != nil {
		h.fail(c, err)
		return
	}

	files := form.File["images"]
	if len(files) < 1 || len(files) > 5 {
		c.JSON(http.StatusBadRequest, errorBody("이미지는 1장 이상 5장 이하로 등록해주세요."))
		return
	}

	uploads := make([]store.Upload, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			h.fail(c, err)
			return
		}
		uploads = append(uploads, store.Upload{FileName: fh.Filename, Data: data})
	}

	car, err := h.store.CreateCar(c.Request.Context(), memberIDFromContext(c), fields, uploads)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, car.ID)
}

// requestPart returns the listing JSON whether it was sent as a plain field
// or as a file part.
func requestPart(form *multipart.Form) ([]byte, error) {
	if v := form.Value["request"]; len(v) > 0 {
		return []byte(v[0]), nil
	}
	if f := form.File["request"]; len(f) > 0 {
		return readFile(f[0])
	}
	return nil, errors.New("missing request part")
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *handler) updateCar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var fields models.CarFields
	if !h.bindJSON(c, &fields) {
		return
	}
	car, err := h.store.UpdateCar(c.Request.Context(), id, memberIDFromContext(c), fields)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(c, car))
}

func (h *handler) deleteCar(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteCar(c.Request.Context(), id, memberIDFromContext(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) setThumbnail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := idParam(c, "imageId")
	if !ok {
		return
	}
	if err := h.store.SetThumbnail(c.Request.Context(), id, memberIDFromContext(c), imageID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) favorites(c *gin.Context) {
	cars := h.store.Favorites(c.Request.Context(), memberIDFromContext(c))
	c.JSON(http.StatusOK, summariesOf(cars))
}

func (h *handler) addFavorite(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.AddFavorite(c.Request.Context(), memberIDFromContext(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) removeFavorite(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.RemoveFavorite(c.Request.Context(), memberIDFromContext(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) image(c *gin.Context) {
	data, err := h.store.Image(c.Request.Context(), "/images"+c.Param("path"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
