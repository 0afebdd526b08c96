// services/users.go
package services

import (
	"context"
	"errors"
	"fmt"

	"ecometer/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfiles reads and updates the local users table.
type GormProfiles struct {
	DB *gorm.DB
}

func NewGormProfiles(db *gorm.DB) *GormProfiles {
	return &GormProfiles{DB: db}
}

// GetProfile returns the stored user, or a bare user when none exists yet.
func (p *GormProfiles) GetProfile(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	err := p.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{ID: userID}, nil
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// CompleteSetup writes the baseline once; later calls return the stored row.
func (p *GormProfiles) CompleteSetup(ctx context.Context, userID, location string, householdSize int, baseline float64) (models.User, error) {
	var out models.User
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", userID).First(&u).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = models.User{ID: userID, Name: userID}
		case err != nil:
			return err
		case u.SetupComplete:
			out = u
			return nil
		}

		u.Location = location
		u.HouseholdSize = householdSize
		u.BaselineFootprint = baseline
		u.SetupComplete = true
		if err := tx.Save(&u).Error; err != nil {
			return fmt.Errorf("save setup: %w", err)
		}
		out = u
		return nil
	})
	return out, err
}

// GormLeaderboard ranks users by their stored points total.
type GormLeaderboard struct {
	DB    *gorm.DB
	Limit int
}

func NewGormLeaderboard(db *gorm.DB, limit int) *GormLeaderboard {
	return &GormLeaderboard{DB: db, Limit: limit}
}

func (l *GormLeaderboard) Fetch(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var users []models.User
	q := l.DB.WithContext(ctx).Model(&models.User{}).
		Select("id", "name", "total_points").
		Where("total_points > 0").
		Order("total_points DESC").Order("id ASC")
	if l.Limit > 0 {
		q = q.Limit(l.Limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = models.LeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name,
			Points: u.TotalPoints,
		}
	}
	return entries, nil
}
