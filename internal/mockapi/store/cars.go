package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/simcar/internal/client/models"
	"github.com/dmitrijs2005/simcar/internal/common"
)

// Car is a stored listing. Brand and Region hold the raw codes.
type Car struct {
	ID        int64
	SellerID  int64
	Fields    models.CarFields
	Images    []models.CarImage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Upload is an image received with a new listing.
type Upload struct {
	FileName string
	Data     []byte
}

func (c *Car) clone() *Car {
	out := *c
	out.Images = slices.Clone(c.Images)
	return &out
}

func (s *Store) CreateCar(ctx context.Context, sellerID int64, fields models.CarFields, uploads []Upload) (*Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[sellerID]; !ok {
		return nil, common.ErrorNotFound
	}

	s.nextCarID++
	now := time.Now().UTC()
	c := &Car{ID: s.nextCarID, SellerID: sellerID, Fields: fields, CreatedAt: now, UpdatedAt: now}

	for i, u := range uploads {
		s.nextImageID++
		path := fmt.Sprintf("/images/%d/%d-%s", c.ID, s.nextImageID, u.FileName)
		s.blobs[path] = u.Data
		c.Images = append(c.Images, models.CarImage{
			ID:               s.nextImageID,
			OriginalFileName: u.FileName,
			FilePath:         path,
			Thumbnail:        i == 0,
		})
	}

	s.cars[c.ID] = c
	return c.clone(), nil
}

func (s *Store) Car(ctx context.Context, id int64) (*Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.cars[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c.clone(), nil
}

// Cars returns the listings accepted by match, newest first.
func (s *Store) Cars(ctx context.Context, match func(*Car) bool) []*Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Car, 0, len(s.cars))
	for _, c := range s.cars {
		if match == nil || match(c) {
			out = append(out, c.clone())
		}
	}
	slices.SortFunc(out, func(a, b *Car) int { return int(b.ID - a.ID) })
	return out
}

// UpdateCar replaces the fields of a listing owned by sellerID.
func (s *Store) UpdateCar(ctx context.Context, id, sellerID int64, fields models.CarFields) (*Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if c.SellerID != sellerID {
		return nil, ErrForbidden
	}
	c.Fields = fields
	c.UpdatedAt = time.Now().UTC()
	return c.clone(), nil
}

func (s *Store) DeleteCar(ctx context.Context, id, sellerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[id]
	if !ok {
		return common.ErrorNotFound
	}
	if c.SellerID != sellerID {
		return ErrForbidden
	}
	s.deleteCarLocked(id)
	return nil
}

func (s *Store) deleteCarLocked(id int64) {
	if c, ok := s.cars[id]; ok {
		for _, img := range c.Images {
			delete(s.blobs, img.FilePath)
		}
	}
	delete(s.cars, id)
	for _, favs := range s.favorites {
		delete(favs, id)
	}
}

// SetThumbnail flags imageID as the only thumbnail of the listing.
func (s *Store) SetThumbnail(ctx context.Context, carID, sellerID, imageID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cars[carID]
	if !ok {
		return common.ErrorNotFound
	}
	if c.SellerID != sellerID {
		return ErrForbidden
	}
	if !slices.ContainsFunc(c.Images, func(img models.CarImage) bool { return img.ID == imageID }) {
		return common.ErrorNotFound
	}
	for i := range c.Images {
		c.Images[i].Thumbnail = c.Images[i].ID == imageID
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) Image(ctx context.Context, path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[path]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return b, nil
}
