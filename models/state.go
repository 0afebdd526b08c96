package models

// UserState is the persisted per-user snapshot. It is committed as a whole
// on every mutation so readers never see a partial update.
type UserState struct {
	DailyData   []DailyEntry `json:"dailyData"`
	Goals       []Goal       `json:"goals"`
	Badges      []Badge      `json:"badges"`
	TotalPoints int          `json:"totalPoints"`
}

// Clone returns a deep copy safe to mutate.
func (s UserState) Clone() UserState {
	out := UserState{TotalPoints: s.TotalPoints}
	if s.DailyData != nil {
		out.DailyData = append(make([]DailyEntry, 0, len(s.DailyData)), s.DailyData...)
	}
	if s.Goals != nil {
		out.Goals = make([]Goal, len(s.Goals))
		for i, g := range s.Goals {
			if g.DateCompleted != nil {
				t := *g.DateCompleted
				g.DateCompleted = &t
			}
			if g.GeneratedAt != nil {
				t := *g.GeneratedAt
				g.GeneratedAt = &t
			}
			out.Goals[i] = g
		}
	}
	if s.Badges != nil {
		out.Badges = make([]Badge, len(s.Badges))
		for i, b := range s.Badges {
			if b.EarnedDate != nil {
				t := *b.EarnedDate
				b.EarnedDate = &t
			}
			out.Badges[i] = b
		}
	}
	return out
}

// NewUserState seeds a fresh state from the goal and badge catalogs.
func NewUserState(userID string) UserState {
	s := UserState{
		DailyData: []DailyEntry{},
		Goals:     make([]Goal, 0, len(GoalCatalog)),
		Badges:    make([]Badge, 0, len(BadgeCatalog)),
	}
	for _, g := range GoalCatalog {
		g.UserID = userID
		s.Goals = append(s.Goals, g)
	}
	for _, t := range BadgeCatalog {
		b := t.NewBadge()
		b.UserID = userID
		s.Badges = append(s.Badges, b)
	}
	return s
}
