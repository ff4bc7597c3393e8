package mockapi

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/mockapi/store"
)

// Demo account created by Seed.
const (
	DemoEmail    = "demo@simcar.kr"
	DemoPassword = "demo1234"
)

var demoCars = []models.CarFields{
	{Type: "SUV", Price: 32000000, Brand: "hyundai", Model: "Santa Fe", Year: 2021, Mileage: 42000, FuelType: "diesel",
		CarNumber: "12가3456", InsuranceHistory: 0, InspectionHistory: 3, Color: "white", Transmission: "auto", Region: "Seoul"},
	{Type: "sedan", Price: 18500000, Brand: "kia", Model: "K5", Year: 2019, Mileage: 78000, FuelType: "gasoline",
		CarNumber: "34나5678", InsuranceHistory: 1, InspectionHistory: 4, Color: "black", Transmission: "auto", Region: "Gyeonggi"},
	{Type: "sedan", Price: 45000000, Brand: "bmw", Model: "520i", Year: 2020, Mileage: 36000, FuelType: "gasoline",
		CarNumber: "56다7890", InsuranceHistory: 0, InspectionHistory: 2, Color: "blue", Transmission: "auto", Region: "Busan"},
	{Type: "compact", Price: 9800000, Brand: "chevrolet", Model: "Spark", Year: 2017, Mileage: 91000, FuelType: "gasoline",
		CarNumber: "78라1234", InsuranceHistory: 2, InspectionHistory: 5, Color: "red", Transmission: "manual", Region: "Daegu"},
}

// Seed creates the demo account and a few listings owned by it.
func Seed(ctx context.Context, st *store.Store, members *MemberService) error {
	m, err := members.Signup(ctx, models.SignupRequest{
		Email:    DemoEmail,
		Password: DemoPassword,
		Name:     "심카",
		Phone:    "010-1234-5678",
	})
	if err != nil {
		return fmt.Errorf("seed member: %w", err)
	}

	for i, f := range demoCars {
		f.ContactNumber = "010-1234-5678"
		img, err := swatch(uint8(60 * i))
		if err != nil {
			return err
		}
		if _, err := st.CreateCar(ctx, m.ID, f, []store.Upload{{FileName: fmt.Sprintf("car%d.png", i+1), Data: img}}); err != nil {
			return fmt.Errorf("seed car: %w", err)
		}
	}
	return nil
}

func swatch(shade uint8) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: shade, G: 128, B: 255 - shade, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
