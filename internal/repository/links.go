package repository

import (
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/models"

	"gorm.io/gorm"
)

// LinkStore is the sole authority over persisted links. Lookups that miss
// return gorm.ErrRecordNotFound; the service layer translates that into its
// own error taxonomy.
type LinkStore struct {
	db *gorm.DB
}

func NewLinkStore(db *gorm.DB) *LinkStore {
	return &LinkStore{db: db}
}

// WithTx returns a store bound to the given transaction handle.
func (s *LinkStore) WithTx(tx *gorm.DB) *LinkStore {
	return &LinkStore{db: tx}
}

func (s *LinkStore) Create(link *models.Link) error {
	return s.db.Create(link).Error
}

func (s *LinkStore) FindByShortcut(shortcut string) (*models.Link, error) {
	var link models.Link
	if err := s.db.Where("shortcut = ?", shortcut).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// FindOwned returns the link only when it exists and belongs to ownerID.
// A foreign owner is indistinguishable from absence so callers cannot probe
// other users' link ids.
func (s *LinkStore) FindOwned(id, ownerID uint) (*models.Link, error) {
	var link models.Link
	if err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *LinkStore) CountForUser(ownerID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Link{}).Where("user_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (s *LinkStore) CountAll() (int64, error) {
	var count int64
	err := s.db.Model(&models.Link{}).Count(&count).Error
	return count, err
}

// Oldest returns the globally oldest link by creation time.
func (s *LinkStore) Oldest() (*models.Link, error) {
	var link models.Link
	if err := s.db.Order("created_at asc").First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *LinkStore) ListForUser(ownerID uint) ([]models.Link, error) {
	var links []models.Link
	err := s.db.Where("user_id = ?", ownerID).Order("created_at desc").Find(&links).Error
	return links, err
}

// DeleteOlderThan removes every link created at or before cutoff and
// reports how many rows were deleted.
func (s *LinkStore) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := s.db.Where("created_at <= ?", cutoff).Delete(&models.Link{})
	return res.RowsAffected, res.Error
}

func (s *LinkStore) Delete(id uint) error {
	return s.db.Delete(&models.Link{}, id).Error
}
