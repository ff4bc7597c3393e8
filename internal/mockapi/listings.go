package mockapi

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

const timeLayout = "2006-01-02T15:04:05"

func summaryOf(c *store.Car) models.ListingSummary {
	s := models.ListingSummary{
		ID:        c.ID,
		Type:      c.Fields.Type,
		Price:     c.Fields.Price,
		Brand:     c.Fields.Brand,
		Model:     c.Fields.Model,
		Year:      c.Fields.Year,
		Mileage:   c.Fields.Mileage,
		Region:    c.Fields.Region,
		CreatedAt: c.CreatedAt.Format(timeLayout),
	}
	d := detailOf(c, "")
	if img, ok := d.Thumbnail(); ok {
		s.ImageURL = img.FilePath
	}
	return s
}

func summariesOf(cars []*store.Car) []models.ListingSummary {
	out := make([]models.ListingSummary, 0, len(cars))
	for _, c := range cars {
		out = append(out, summaryOf(c))
	}
	return out
}

func detailOf(c *store.Car, sellerName string) models.ListingDetail {
	f := c.Fields
	return models.ListingDetail{
		ID:                c.ID,
		Type:              f.Type,
		Price:             f.Price,
		Brand:             f.Brand,
		Model:             f.Model,
		Year:              f.Year,
		Mileage:           f.Mileage,
		FuelType:          f.FuelType,
		Images:            c.Images,
		CarNumber:         f.CarNumber,
		InsuranceHistory:  f.InsuranceHistory,
		InspectionHistory: f.InspectionHistory,
		Color:             f.Color,
		Transmission:      f.Transmission,
		Region:            f.Region,
		ContactNumber:     f.ContactNumber,
		SellerName:        sellerName,
		CreatedAt:         c.CreatedAt.Format(timeLayout),
		UpdatedAt:         c.UpdatedAt.Format(timeLayout),
	}
}

// matcher builds the listing predicate of GET /cars. Set-valued parameters
// are comma-joined and matched case-insensitively; searchTerm matches any of
// its space-separated words against brand and model.
func matcher(q url.Values) func(*store.Car) bool {
	terms := strings.Fields(strings.ToLower(q.Get("searchTerm")))
	minPrice, hasMinPrice := intParam(q, "minPrice")
	maxPrice, hasMaxPrice := intParam(q, "maxPrice")
	minYear, hasMinYear := intParam(q, "minYear")
	maxYear, hasMaxYear := intParam(q, "maxYear")

	brands := setParam(q, "brands")
	types := setParam(q, "types")
	transmissions := setParam(q, "transmissions")
	fuelTypes := setParam(q, "fuelTypes")
	colors := setParam(q, "colors")

	return func(c *store.Car) bool {
		f := c.Fields
		if len(terms) > 0 {
			hay := strings.ToLower(f.Brand + " " + f.Model)
			if !slices.ContainsFunc(terms, func(t string) bool { return strings.Contains(hay, t) }) {
				return false
			}
		}
		switch {
		case hasMinPrice && f.Price < minPrice,
			hasMaxPrice && f.Price > maxPrice,
			hasMinYear && int64(f.Year) < minYear,
			hasMaxYear && int64(f.Year) > maxYear:
			return false
		}
		return inSet(brands, f.Brand) && inSet(types, f.Type) && inSet(transmissions, f.Transmission) &&
			inSet(fuelTypes, f.FuelType) && inSet(colors, f.Color)
	}
}

func intParam(q url.Values, key string) (int64, bool) {
	v, err := strconv.ParseInt(q.Get(key), 10, 64)
	return v, err == nil
}

func setParam(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func inSet(set []string, v string) bool {
	return len(set) == 0 || slices.Contains(set, strings.ToLower(v))
}

// diagnose scores a listing from age, mileage and accident records.
func diagnose(c *store.Car, now time.Time) models.Diagnosis {
	f := c.Fields
	age := max(now.Year()-f.Year, 0)

	score := 100.0 - float64(age)*3 - float64(f.Mileage)/10000*1.5 -
		float64(f.InsuranceHistory)*8 + float64(min(f.InspectionHistory, 5))
	score = math.Round(math.Max(0, math.Min(100, score))*10) / 10

	var comment string
	switch {
	case score >= 85:
		comment = "차량 상태가 매우 우수합니다."
	case score >= 70:
		comment = "전반적으로 양호한 차량입니다."
	case score >= 50:
		comment = "구매 전 정비 이력을 확인하는 것이 좋습니다."
	default:
		comment = "사고 및 노후로 인한 점검이 필요합니다."
	}
	return models.Diagnosis{CarID: c.ID, ReliabilityScore: score, EvaluationComment: comment}
}
