// Package models defines the marketplace records exchanged with the API.
package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// ListingSummary is one row of a listing search.
type ListingSummary struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Price     int64  `json:"price"`
	Brand     string `json:"brand"`
	Model     string `json:"model"`
	Year      int    `json:"year"`
	Mileage   int64  `json:"mileage"`
	ImageURL  string `json:"imageUrl"`
	Region    string `json:"region"`
	CreatedAt string `json:"createdAt"`
}

// CarImage is an uploaded photo of a listing.
type CarImage struct {
	ID               int64  `json:"id"`
	OriginalFileName string `json:"originalFileName"`
	FilePath         string `json:"filePath"`
	Thumbnail        bool   `json:"thumbnail"`
}

// ListingDetail is the full record shown on a listing page.
type ListingDetail struct {
	ID                int64      `json:"id"`
	Type              string     `json:"type"`
	Price             int64      `json:"price"`
	Brand             string     `json:"brand"`
	Model             string     `json:"model"`
	Year              int        `json:"year"`
	Mileage           int64      `json:"mileage"`
	FuelType          string     `json:"fuelType"`
	Images            []CarImage `json:"images"`
	CarNumber         string     `json:"carNumber"`
	InsuranceHistory  int        `json:"insuranceHistory"`
	InspectionHistory int        `json:"inspectionHistory"`
	Color             string     `json:"color"`
	Transmission      string     `json:"transmission"`
	Region            string     `json:"region"`
	ContactNumber     string     `json:"contactNumber"`
	SellerName        string     `json:"sellerName"`
	CreatedAt         string     `json:"createdAt"`
	UpdatedAt         string     `json:"updatedAt"`
}

// Thumbnail returns the image flagged as thumbnail, or the first image.
func (d *ListingDetail) Thumbnail() (CarImage, bool) {
	for _, img := range d.Images {
		if img.Thumbnail {
			return img, true
		}
	}
	if len(d.Images) > 0 {
		return d.Images[0], true
	}
	return CarImage{}, false
}

// CarFields is the body of listing registration and full-replace updates.
// Every field is editable and always sent.
type CarFields struct {
	Type              string `json:"type" validate:"required"`
	Price             int64  `json:"price" validate:"gt=0"`
	Brand             string `json:"brand" validate:"required"`
	Model             string `json:"model" validate:"required"`
	Year              int    `json:"year" validate:"gte=1950,lte=2100"`
	Mileage           int64  `json:"mileage" validate:"gte=0"`
	FuelType          string `json:"fuelType" validate:"required"`
	CarNumber         string `json:"carNumber" validate:"required"`
	InsuranceHistory  int    `json:"insuranceHistory" validate:"gte=0"`
	InspectionHistory int    `json:"inspectionHistory" validate:"gte=0"`
	Color             string `json:"color" validate:"required"`
	Transmission      string `json:"transmission" validate:"required"`
	Region            string `json:"region" validate:"required"`
	ContactNumber     string `json:"contactNumber" validate:"required,phone"`
}

// Diagnosis is the reliability evaluation of a listing.
type Diagnosis struct {
	CarID             int64   `json:"carId"`
	ReliabilityScore  float64 `json:"reliabilityScore"`
	EvaluationComment string  `json:"evaluationComment"`
}

// ImageFile is a photo staged for upload.
type ImageFile struct {
	Name string
	Data []byte
}

// LoadImageFile reads a photo from disk.
func LoadImageFile(path string) (ImageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImageFile{}, fmt.Errorf("read image %s: %w", path, err)
	}
	return ImageFile{Name: filepath.Base(path), Data: data}, nil
}
