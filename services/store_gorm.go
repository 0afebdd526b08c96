package services

import (
	"context"
	"errors"
	"fmt"

	"ecometer/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row types keep the snapshot's slice order in the tables.
type entryRow struct {
	models.DailyEntry `gorm:"embedded"`
	Seq               int `gorm:"index;not null"`
}

func (entryRow) TableName() string { return "daily_entries" }

type goalRow struct {
	models.Goal `gorm:"embedded"`
	Position    int `gorm:"not null"`
}

func (goalRow) TableName() string { return "goals" }

type badgeRow struct {
	models.Badge `gorm:"embedded"`
	Position     int `gorm:"not null"`
}

func (badgeRow) TableName() string { return "badges" }

// AutoMigrate creates or updates every table the gorm collaborators use.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&entryRow{},
		&goalRow{},
		&badgeRow{},
	)
}

// GormStore keeps snapshots as rows; Commit writes entries, goals, badges
// and users.total_points in one transaction.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Load(ctx context.Context, userID string) (models.UserState, bool, error) {
	db := s.DB.WithContext(ctx)

	var goals []goalRow
	if err := db.Where("user_id = ?", userID).Order("position ASC").Find(&goals).Error; err != nil {
		return models.UserState{}, false, fmt.Errorf("load goals: %w", err)
	}
	var badges []badgeRow
	if err := db.Where("user_id = ?", userID).Order("position ASC").Find(&badges).Error; err != nil {
		return models.UserState{}, false, fmt.Errorf("load badges: %w", err)
	}
	if len(goals) == 0 && len(badges) == 0 {
		return models.UserState{}, false, nil
	}
	var entries []entryRow
	if err := db.Where("user_id = ?", userID).Order("seq ASC").Find(&entries).Error; err != nil {
		return models.UserState{}, false, fmt.Errorf("load entries: %w", err)
	}
	var user models.User
	err := db.Select("total_points").Where("id = ?", userID).Take(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserState{}, false, fmt.Errorf("load points: %w", err)
	}

	state := models.UserState{
		DailyData:   make([]models.DailyEntry, len(entries)),
		Goals:       make([]models.Goal, len(goals)),
		Badges:      make([]models.Badge, len(badges)),
		TotalPoints: user.TotalPoints,
	}
	for i, r := range entries {
		state.DailyData[i] = r.DailyEntry
	}
	for i, r := range goals {
		state.Goals[i] = r.Goal
	}
	for i, r := range badges {
		state.Badges[i] = r.Badge
	}
	return state, true, nil
}

func (s *GormStore) Commit(ctx context.Context, userID string, state models.UserState) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(state.DailyData) > 0 {
			rows := make([]entryRow, len(state.DailyData))
			for i, e := range state.DailyData {
				e.UserID = userID
				rows[i] = entryRow{DailyEntry: e, Seq: i}
			}
			// Entries are append-only: existing rows are never rewritten.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 200).Error; err != nil {
				return fmt.Errorf("insert entries: %w", err)
			}
		}

		if len(state.Goals) > 0 {
			rows := make([]goalRow, len(state.Goals))
			for i, g := range state.Goals {
				g.UserID = userID
				rows[i] = goalRow{Goal: g, Position: i}
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
				UpdateAll: true,
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("upsert goals: %w", err)
			}
		}

		if len(state.Badges) > 0 {
			rows := make([]badgeRow, len(state.Badges))
			for i, b := range state.Badges {
				b.UserID = userID
				rows[i] = badgeRow{Badge: b, Position: i}
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
				UpdateAll: true,
			}).Create(&rows).Error; err != nil {
				return fmt.Errorf("upsert badges: %w", err)
			}
		}

		// The user row belongs to the profile service; create a stub only if it is missing.
		user := models.User{ID: userID, Name: userID, TotalPoints: state.TotalPoints}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_points", "updated_at"}),
		}).Create(&user).Error; err != nil {
			return fmt.Errorf("update points: %w", err)
		}
		return nil
	})
}
