package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/simcar/internal/client/models"
)

// parseFilter turns search arguments into a filter. key=value arguments set
// fields (set-valued keys take comma lists); every other word joins the
// search term.
func parseFilter(args []string) (models.ListingFilter, error) {
	var (
		f     models.ListingFilter
		terms []string
	)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			terms = append(terms, arg)
			continue
		}

		switch strings.ToLower(key) {
		case "brand", "brands":
			f.Brands = append(f.Brands, splitList(value)...)
		case "type", "types":
			f.Types = append(f.Types, splitList(value)...)
		case "transmission", "transmissions":
			f.Transmissions = append(f.Transmissions, splitList(value)...)
		case "fuel", "fueltype", "fueltypes":
			f.FuelTypes = append(f.FuelTypes, splitList(value)...)
		case "color", "colors":
			f.Colors = append(f.Colors, splitList(value)...)
		case "minprice":
			n, err := parseInt64(key, value)
			if err != nil {
				return f, err
			}
			f.MinPrice = &n
		case "maxprice":
			n, err := parseInt64(key, value)
			if err != nil {
				return f, err
			}
			f.MaxPrice = &n
		case "minyear":
			n, err := strconv.Atoi(value)
			if err != nil {
				return f, fmt.Errorf("%s: 숫자를 입력해 주세요", key)
			}
			f.MinYear = &n
		case "maxyear":
			n, err := strconv.Atoi(value)
			if err != nil {
				return f, fmt.Errorf("%s: 숫자를 입력해 주세요", key)
			}
			f.MaxYear = &n
		default:
			return f, fmt.Errorf("알 수 없는 검색 조건: %s", key)
		}
	}
	f.SearchTerm = strings.Join(terms, " ")
	return f, nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func parseInt64(key, v string) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(v, ",", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: 숫자를 입력해 주세요", key)
	}
	return n, nil
}
