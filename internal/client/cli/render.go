package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/simcar/internal/client/models"
)

// groupDigits formats n with thousands separators, as ko-KR does.
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func formatWon(n int64) string { return groupDigits(n) + "원" }
func formatKm(n int64) string  { return groupDigits(n) + "km" }

func renderSummaries(w io.Writer, items []models.ListingSummary, favorites map[int64]bool) {
	if len(items) == 0 {
		fmt.Fprintln(w, "검색 결과가 없습니다.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t차량\t연식\t주행거리\t가격\t지역\t")
	for _, it := range items {
		mark := ""
		if favorites[it.ID] {
			mark = " ♥"
		}
		fmt.Fprintf(tw, "%d%s\t%s %s\t%d년식\t%s\t%s\t%s\t\n",
			it.ID, mark, it.Brand, it.Model, it.Year, formatKm(it.Mileage), formatWon(it.Price), it.Region)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "총 %d대\n", len(items))
}

func renderDetail(w io.Writer, d *models.ListingDetail, favorite bool) {
	title := fmt.Sprintf("[%d] %s %s", d.ID, d.Brand, d.Model)
	if favorite {
		title += " ♥"
	}
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"가격", formatWon(d.Price)},
		{"차종", d.Type},
		{"연식", fmt.Sprintf("%d년식", d.Year)},
		{"주행거리", formatKm(d.Mileage)},
		{"연료", d.FuelType},
		{"변속기", d.Transmission},
		{"색상", d.Color},
		{"차량번호", d.CarNumber},
		{"보험 이력", fmt.Sprintf("%d회", d.InsuranceHistory)},
		{"점검 이력", fmt.Sprintf("%d회", d.InspectionHistory)},
		{"지역", d.Region},
		{"판매자", d.SellerName},
		{"연락처", d.ContactNumber},
		{"등록일", d.CreatedAt},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\n", r[0], r[1])
	}
	_ = tw.Flush()

	if len(d.Images) == 0 {
		return
	}
	fmt.Fprintln(w, "  이미지:")
	for _, img := range d.Images {
		mark := ""
		if img.Thumbnail {
			mark = " (대표)"
		}
		fmt.Fprintf(w, "    #%d %s%s\n", img.ID, img.FilePath, mark)
	}
}
