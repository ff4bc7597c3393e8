package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrijs2005/simcar/internal/client/client"
	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/transform"
)

// Upload limits enforced before a listing is registered.
const (
	MinImages    = 1
	MaxImages    = 5
	MaxImageSize = 5 << 20
)

// CarService is the listings gateway.
type CarService interface {
	List(ctx context.Context, filter *models.ListingFilter) ([]models.ListingSummary, error)
	Get(ctx context.Context, id int64) (*models.ListingDetail, error)
	Register(ctx context.Context, fields models.CarFields, images []models.ImageFile) (int64, error)
	Update(ctx context.Context, id int64, fields models.CarFields) (*models.ListingDetail, error)
	Delete(ctx context.Context, id int64) error
	SetThumbnail(ctx context.Context, carID, imageID int64) error
	Diagnosis(ctx context.Context, id int64) (*models.Diagnosis, error)
	MySales(ctx context.Context) ([]models.ListingSummary, error)
}

type carService struct {
	api API
	tr  *transform.Transformer
}

func NewCarService(api API, tr *transform.Transformer) CarService {
	return &carService{api: api, tr: tr}
}

func carPath(id int64) string {
	return "/cars/" + strconv.FormatInt(id, 10)
}

// List searches listings. A nil or empty filter lists everything.
func (s *carService) List(ctx context.Context, filter *models.ListingFilter) ([]models.ListingSummary, error) {
	var items []models.ListingSummary
	if err := s.api.Get(ctx, "/cars", filter.Query(), &items); err != nil {
		return nil, fmt.Errorf("list cars: %w", err)
	}
	return s.tr.Summaries(items), nil
}

func (s *carService) Get(ctx context.Context, id int64) (*models.ListingDetail, error) {
	var d models.ListingDetail
	if err := s.api.Get(ctx, carPath(id), nil, &d); err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	d = s.tr.Detail(d)
	return &d, nil
}

// Register uploads a new listing and returns its id. The image bounds are
// checked before anything is sent.
func (s *carService) Register(ctx context.Context, fields models.CarFields, images []models.ImageFile) (int64, error) {
	parts, err := uploadParts(fields, images)
	if err != nil {
		return 0, err
	}

	var raw string
	if err := s.api.PostMultipart(ctx, "/cars", parts, &raw); err != nil {
		return 0, fmt.Errorf("register car: %w", err)
	}

	id, err := strconv.ParseInt(strings.Trim(raw, `" `), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("register car: %w", &client.APIError{
			Kind: client.KindDecode, Method: http.MethodPost, Path: "/cars", Err: err,
		})
	}
	return id, nil
}

func uploadParts(fields models.CarFields, images []models.ImageFile) ([]client.Part, error) {
	invalid := func(msg string) error {
		return client.NewValidationError(http.MethodPost, "/cars", msg)
	}

	switch {
	case len(images) < MinImages:
		return nil, invalid("이미지를 1장 이상 등록해주세요.")
	case len(images) > MaxImages:
		return nil, invalid(fmt.Sprintf("이미지는 최대 %d장까지 등록할 수 있습니다.", MaxImages))
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode car fields: %w", err)
	}
	parts := []client.Part{{Field: "request", ContentType: "application/json", Data: body}}

	for _, img := range images {
		if len(img.Data) > MaxImageSize {
			return nil, invalid(fmt.Sprintf("%s: 이미지 크기는 5MB 이하여야 합니다.", img.Name))
		}
		mt := mimetype.Detect(img.Data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return nil, invalid(fmt.Sprintf("%s: 이미지 파일만 업로드할 수 있습니다.", img.Name))
		}
		parts = append(parts, client.Part{
			Field:       "images",
			FileName:    img.Name,
			ContentType: mt.String(),
			Data:        img.Data,
		})
	}
	return parts, nil
}

// Update replaces every editable field of a listing and returns the
// refreshed record. When the server answers without a body the record is
// fetched again.
func (s *carService) Update(ctx context.Context, id int64, fields models.CarFields) (*models.ListingDetail, error) {
	var d models.ListingDetail
	if err := s.api.Put(ctx, carPath(id), fields, &d); err != nil {
		return nil, fmt.Errorf("update car %d: %w", id, err)
	}
	if d.ID == 0 {
		return s.Get(ctx, id)
	}
	d = s.tr.Detail(d)
	return &d, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, carPath(id), nil); err != nil {
		return fmt.Errorf("delete car %d: %w", id, err)
	}
	return nil
}

func (s *carService) SetThumbnail(ctx context.Context, carID, imageID int64) error {
	path := carPath(carID) + "/thumbnail/" + strconv.FormatInt(imageID, 10)
	if err := s.api.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("set thumbnail of car %d: %w", carID, err)
	}
	return nil
}

func (s *carService) Diagnosis(ctx context.Context, id int64) (*models.Diagnosis, error) {
	var d models.Diagnosis
	if err := s.api.Get(ctx, carPath(id)+"/diagnosis", nil, &d); err != nil {
		return nil, fmt.Errorf("diagnose car %d: %w", id, err)
	}
	return &d, nil
}

// MySales lists the listings registered by the current member.
func (s *carService) MySales(ctx context.Context) ([]models.ListingSummary, error) {
	var items []models.ListingSummary
	if err := s.api.Get(ctx, "/members/sales", nil, &items); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return s.tr.Summaries(items), nil
}
