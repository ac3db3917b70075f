package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/BoulehmiHoussem/Logient/internal/models"
	"github.com/BoulehmiHoussem/Logient/internal/repository"
	"github.com/BoulehmiHoussem/Logient/pkg/utils"

	"gorm.io/gorm"
)

// ShortcutLength is the length of generated shortcut codes.
const ShortcutLength = 6

// maxShortcutAttempts bounds the regenerate-and-retry loop on shortcut
// collisions. With a 62-symbol alphabet and 6 characters, exhausting it
// means something is badly misconfigured, so it surfaces as an error.
const maxShortcutAttempts = 5

type LinkService struct {
	db            *gorm.DB
	store         *repository.LinkStore
	accessLogger  *AccessLogger
	logger        *slog.Logger
	maxPerUser    int64
	maxTotal      int64
	codeGenerator func(int) string
	nowFunc       func() time.Time
}

func NewLinkService(db *gorm.DB, accessLogger *AccessLogger, logger *slog.Logger, maxPerUser, maxTotal int) *LinkService {
	return &LinkService{
		db:            db,
		store:         repository.NewLinkStore(db),
		accessLogger:  accessLogger,
		logger:        logger,
		maxPerUser:    int64(maxPerUser),
		maxTotal:      int64(maxTotal),
		codeGenerator: utils.GenerateShortcut,
		nowFunc:       time.Now,
	}
}

// Create validates the target URL and the caller's quota, evicts the
// globally oldest link when the store is at capacity, then inserts a link
// under a fresh shortcut. The per-user check runs before eviction: a user
// at their own cap is rejected even when global capacity would allow it.
// The whole decision runs in one transaction so two concurrent creates
// cannot both pass the capacity check before either evicts.
func (s *LinkService) Create(ownerID uint, target string) (*models.Link, error) {
	target = strings.TrimSpace(target)
	if !isAbsoluteURL(target) {
		return nil, &ValidationError{Field: "link", Message: "The link must be a valid URL."}
	}

	var created *models.Link
	err := s.db.Transaction(func(tx *gorm.DB) error {
		store := s.store.WithTx(tx)

		userCount, err := store.CountForUser(ownerID)
		if err != nil {
			return err
		}
		if userCount >= s.maxPerUser {
			return &ValidationError{
				Field:   "link",
				Message: fmt.Sprintf("You can't create more than %d links.", s.maxPerUser),
			}
		}

		total, err := store.CountAll()
		if err != nil {
			return err
		}
		if total >= s.maxTotal {
			oldest, err := store.Oldest()
			if err != nil {
				return err
			}
			if err := store.Delete(oldest.ID); err != nil {
				return err
			}
			s.logger.Info("Evicted oldest link to stay under global capacity",
				"shortcut", oldest.Shortcut, "owner", oldest.UserID)
		}

		created, err = s.insertWithFreshShortcut(store, ownerID, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *LinkService) insertWithFreshShortcut(store *repository.LinkStore, ownerID uint, target string) (*models.Link, error) {
	for attempt := 0; attempt < maxShortcutAttempts; attempt++ {
		shortcut := s.codeGenerator(ShortcutLength)

		_, err := store.FindByShortcut(shortcut)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		link := &models.Link{
			UserID:    ownerID,
			Shortcut:  shortcut,
			TargetURL: target,
			CreatedAt: s.nowFunc(),
		}
		err = store.Create(link)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race on the unique index; try a new code.
			continue
		}
		if err != nil {
			return nil, err
		}
		return link, nil
	}

	return nil, fmt.Errorf("could not allocate a unique shortcut after %d attempts", maxShortcutAttempts)
}

// List returns the owner's links, newest first.
func (s *LinkService) List(ownerID uint) ([]models.Link, error) {
	return s.store.ListForUser(ownerID)
}

// Get looks up a link by shortcut without recording an access.
func (s *LinkService) Get(shortcut string) (*models.Link, error) {
	link, err := s.store.FindByShortcut(shortcut)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Destroy deletes the owner's link. Links that do not exist and links owned
// by someone else both come back as ErrNotFound.
func (s *LinkService) Destroy(ownerID, id uint) error {
	link, err := s.store.FindOwned(id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.store.Delete(link.ID)
}

// Resolve returns the target URL for a shortcut and records the access as a
// fire-and-forget side effect. Access logging never blocks or fails the
// redirect.
func (s *LinkService) Resolve(shortcut string, entry AccessEntry) (string, error) {
	link, err := s.store.FindByShortcut(shortcut)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	if entry.Time.IsZero() {
		entry.Time = s.nowFunc()
	}
	if s.accessLogger != nil {
		s.accessLogger.Log(entry)
	}

	return link.TargetURL, nil
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
