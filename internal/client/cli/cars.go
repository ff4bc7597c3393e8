package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/client/transform"
	"github.com/dmitrijs2005/simcar/internal/client/validate"
	"github.com/dmitrijs2005/simcar/internal/filex"
)

// favoriteSet returns the cached favorite ids for list markers. It is
// empty for anonymous users and on a cache read failure.
func (a *App) favoriteSet(ctx context.Context) map[int64]bool {
	set := map[int64]bool{}
	if !a.isLoggedIn() {
		return set
	}
	ids, err := a.session.FavoriteIDs(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading favorites cache", "error", err)
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Search runs a listing search through the car slice and prints the
// resolved items.
func (a *App) Search(ctx context.Context, args []string) error {
	f, err := parseFilter(args)
	if err != nil {
		return err
	}

	cars := a.store.Cars()
	cars.SetFilter(f)
	if err := cars.FetchCars(ctx, &f); err != nil {
		return err
	}
	renderSummaries(a.out, cars.State().Items, a.favoriteSet(ctx))
	return nil
}

// targetID is the id given in args, else the listing last shown, else
// prompted.
func (a *App) targetID(args []string) (int64, error) {
	if len(args) == 0 {
		if sel := a.store.Cars().State().Selected; sel != nil {
			return sel.ID, nil
		}
	}
	return parseID(a.reader, args, a.out)
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(a.reader, args, a.out)
	if err != nil {
		return err
	}

	cars := a.store.Cars()
	if err := cars.FetchCarDetail(ctx, id); err != nil {
		return err
	}
	renderDetail(a.out, cars.State().Selected, a.favoriteSet(ctx)[id])
	return nil
}

func (a *App) Diagnose(ctx context.Context, args []string) error {
	id, err := a.targetID(args)
	if err != nil {
		return err
	}
	d, err := a.cars.Diagnosis(ctx, id)
	if err != nil {
		return err
	}
	a.printf("신뢰도 점수: %.1f / 100\n%s\n", d.ReliabilityScore, d.EvaluationComment)
	return nil
}

// carForm prompts for every listing field, offering cur as defaults.
func (a *App) carForm(cur models.CarFields) (models.CarFields, error) {
	var (
		f   = cur
		err error
	)

	text := []struct {
		label string
		dst   *string
	}{
		{"차종 (예: SUV, sedan)", &f.Type},
		{"브랜드 (예: hyundai, kia)", &f.Brand},
		{"모델", &f.Model},
		{"연료 (gasoline, diesel, hybrid, electric)", &f.FuelType},
		{"변속기 (auto, manual)", &f.Transmission},
		{"색상", &f.Color},
		{"지역 (예: Seoul)", &f.Region},
		{"차량번호", &f.CarNumber},
		{"연락처", &f.ContactNumber},
	}
	for _, t := range text {
		if *t.dst, err = getDefault(a.reader, t.label, *t.dst, a.out); err != nil {
			return f, err
		}
	}

	if f.Price, err = getInt64(a.reader, "가격 (원)", strconv.FormatInt(cur.Price, 10), a.out); err != nil {
		return f, err
	}
	if f.Mileage, err = getInt64(a.reader, "주행거리 (km)", strconv.FormatInt(cur.Mileage, 10), a.out); err != nil {
		return f, err
	}

	ints := []struct {
		label string
		dst   *int
	}{
		{"연식", &f.Year},
		{"보험 이력 (회)", &f.InsuranceHistory},
		{"점검 이력 (회)", &f.InspectionHistory},
	}
	for _, t := range ints {
		n, err := getInt64(a.reader, t.label, strconv.Itoa(*t.dst), a.out)
		if err != nil {
			return f, err
		}
		*t.dst = int(n)
	}

	return f, validate.Struct(f)
}

// Sell registers a listing. Image arguments may be files or directories;
// when none are given they are prompted for.
func (a *App) Sell(ctx context.Context, args []string) error {
	defaults := models.CarFields{Year: now().Year()}
	if user := a.store.State().Auth.User; user != nil {
		defaults.ContactNumber = user.Phone
	}

	fields, err := a.carForm(defaults)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		line, err := getSimpleText(a.reader, "사진 파일 또는 폴더 (공백으로 구분, 최대 5장)", a.out)
		if err != nil {
			return err
		}
		paths = strings.Fields(line)
	}
	files, err := filex.ExpandFiles(paths)
	if err != nil {
		return err
	}
	images := make([]models.ImageFile, 0, len(files))
	for _, p := range files {
		img, err := models.LoadImageFile(p)
		if err != nil {
			return err
		}
		images = append(images, img)
	}

	id, err := a.cars.Register(ctx, fields, images)
	if err != nil {
		return err
	}
	a.printf("차량이 등록되었습니다. (ID %d)\n", id)
	return nil
}

// fieldsOf turns a fetched listing back into request fields. Brand and
// region were localized on the way in and are mapped back to codes.
func fieldsOf(d *models.ListingDetail) models.CarFields {
	return models.CarFields{
		Type:              d.Type,
		Price:             d.Price,
		Brand:             transform.BrandCode(d.Brand),
		Model:             d.Model,
		Year:              d.Year,
		Mileage:           d.Mileage,
		FuelType:          d.FuelType,
		CarNumber:         d.CarNumber,
		InsuranceHistory:  d.InsuranceHistory,
		InspectionHistory: d.InspectionHistory,
		Color:             d.Color,
		Transmission:      d.Transmission,
		Region:            transform.RegionCode(d.Region),
		ContactNumber:     d.ContactNumber,
	}
}

// Edit replaces every field of a listing; the current values are the
// defaults.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.targetID(args)
	if err != nil {
		return err
	}
	cur, err := a.cars.Get(ctx, id)
	if err != nil {
		return err
	}

	fields, err := a.carForm(fieldsOf(cur))
	if err != nil {
		return err
	}
	d, err := a.cars.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	a.store.Cars().SetSelected(*d)
	a.println("수정되었습니다.")
	renderDetail(a.out, d, a.favoriteSet(ctx)[id])
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := a.targetID(args)
	if err != nil {
		return err
	}
	ok, err := confirm(a.reader, fmt.Sprintf("차량 %d을(를) 삭제하시겠습니까?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	if err := a.cars.Delete(ctx, id); err != nil {
		return err
	}
	a.store.Cars().ClearSelectedCar()
	a.println("삭제되었습니다.")
	return nil
}

// Thumbnail picks the cover image of a listing. Without an image id the
// images are listed and one is prompted for.
func (a *App) Thumbnail(ctx context.Context, args []string) error {
	id, err := parseID(a.reader, args, a.out)
	if err != nil {
		return err
	}

	var raw string
	if len(args) > 1 {
		raw = args[1]
	} else {
		d, err := a.cars.Get(ctx, id)
		if err != nil {
			return err
		}
		for _, img := range d.Images {
			a.printf("  #%d %s\n", img.ID, img.OriginalFileName)
		}
		if raw, err = getSimpleText(a.reader, "대표 이미지 ID", a.out); err != nil {
			return err
		}
	}
	imageID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("잘못된 이미지 ID: %q", raw)
	}

	if err := a.cars.SetThumbnail(ctx, id, imageID); err != nil {
		return err
	}
	a.println("대표 이미지가 변경되었습니다.")
	return nil
}

func (a *App) Sales(ctx context.Context, _ []string) error {
	items, err := a.cars.MySales(ctx)
	if err != nil {
		return err
	}
	renderSummaries(a.out, items, a.favoriteSet(ctx))
	return nil
}
