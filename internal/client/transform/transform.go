// Package transform maps raw API listing records into display records:
// brand and region codes become Korean display names and image paths become
// absolute URLs. Every function is total; unknown input is passed through.
package transform

import (
	"strings"

	"github.com/dmitrijs2005/simcar/internal/client/models"
)

// brandNames is keyed by lower-case brand code.
var brandNames = map[string]string{
	"genesis":    "제네시스",
	"hyundai":    "현대",
	"kia":        "기아",
	"bmw":        "BMW",
	"benz":       "벤츠",
	"audi":       "아우디",
	"toyota":     "토요타",
	"honda":      "혼다",
	"volkswagen": "폭스바겐",
	"tesla":      "테슬라",
	"chevrolet":  "쉐보레",
	"ford":       "포드",
	"nissan":     "닛산",
	"lexus":      "렉서스",
	"volvo":      "볼보",
}

// regionNames is keyed by the exact region code.
var regionNames = map[string]string{
	"Seoul":     "서울",
	"Busan":     "부산",
	"Daegu":     "대구",
	"Incheon":   "인천",
	"Gwangju":   "광주",
	"Daejeon":   "대전",
	"Ulsan":     "울산",
	"Sejong":    "세종",
	"Gyeonggi":  "경기",
	"Gangwon":   "강원",
	"Chungbuk":  "충북",
	"Chungnam":  "충남",
	"Jeonbuk":   "전북",
	"Jeonnam":   "전남",
	"Gyeongbuk": "경북",
	"Gyeongnam": "경남",
	"Jeju":      "제주",
}

// LocalizeBrand returns the display name of a brand code. Lookup is
// case-insensitive; a miss returns code unchanged.
func LocalizeBrand(code string) string {
	if name, ok := brandNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// LocalizeRegion returns the display name of a region code, or code itself.
func LocalizeRegion(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return code
}

// BrandCode reverses LocalizeBrand so a displayed record can be sent back.
// Names that are not display names are returned unchanged.
func BrandCode(name string) string {
	return reverse(brandNames, name)
}

// RegionCode reverses LocalizeRegion.
func RegionCode(name string) string {
	return reverse(regionNames, name)
}

func reverse(table map[string]string, name string) string {
	for code, display := range table {
		if display == name {
			return code
		}
	}
	return name
}

// AbsolutizeImageURL prefixes relative image paths with origin. Empty paths
// stay empty and paths that already carry a scheme are returned as is.
func AbsolutizeImageURL(origin, path string) string {
	if path == "" {
		return ""
	}
	if hasScheme(path) {
		return path
	}
	origin = strings.TrimRight(origin, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return origin + path
}

func hasScheme(path string) bool {
	i := strings.Index(path, "://")
	if i <= 0 {
		return false
	}
	for _, r := range path[:i] {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isExtra := (r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.'
		if !isAlpha && !isExtra {
			return false
		}
	}
	return true
}

// Transformer applies the mappings with a fixed image origin.
type Transformer struct {
	origin string
}

func New(origin string) *Transformer {
	return &Transformer{origin: origin}
}

func (t *Transformer) Summary(s models.ListingSummary) models.ListingSummary {
	s.Brand = LocalizeBrand(s.Brand)
	s.Region = LocalizeRegion(s.Region)
	s.ImageURL = AbsolutizeImageURL(t.origin, s.ImageURL)
	return s
}

// Summaries transforms a slice in place and returns it. A nil input yields
// an empty, non-nil slice.
func (t *Transformer) Summaries(items []models.ListingSummary) []models.ListingSummary {
	if items == nil {
		return []models.ListingSummary{}
	}
	for i := range items {
		items[i] = t.Summary(items[i])
	}
	return items
}

func (t *Transformer) Detail(d models.ListingDetail) models.ListingDetail {
	d.Brand = LocalizeBrand(d.Brand)
	d.Region = LocalizeRegion(d.Region)

	images := make([]models.CarImage, len(d.Images))
	for i, img := range d.Images {
		img.FilePath = AbsolutizeImageURL(t.origin, img.FilePath)
		images[i] = img
	}
	d.Images = images
	return d
}
