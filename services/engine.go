package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ecometer/models"
	"ecometer/utils"
)

// Engine owns the per-user state snapshots. Mutations for one user are
// serialized and published only after the store commit succeeds; reads
// copy the last published snapshot.
type Engine struct {
	store       StateStore
	profiles    ProfileStore
	leaderboard LeaderboardSource
	catalog     []models.BadgeType
	factors     EmissionFactors
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	writeMu sync.Mutex
	loaded  atomic.Bool

	snapMu sync.RWMutex
	state  models.UserState
}

func (s *session) snapshot() models.UserState {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.state.Clone()
}

func (s *session) publish(state models.UserState) {
	s.snapMu.Lock()
	s.state = state
	s.snapMu.Unlock()
}

type Option func(*Engine)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithBadgeCatalog replaces models.BadgeCatalog.
func WithBadgeCatalog(catalog []models.BadgeType) Option {
	return func(e *Engine) { e.catalog = catalog }
}

// WithEmissionFactors replaces DefaultEmissionFactors for activity conversion.
func WithEmissionFactors(f EmissionFactors) Option {
	return func(e *Engine) { e.factors = f }
}

func NewEngine(store StateStore, profiles ProfileStore, leaderboard LeaderboardSource, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		profiles:    profiles,
		leaderboard: leaderboard,
		catalog:     models.BadgeCatalog,
		factors:     DefaultEmissionFactors,
		now:         time.Now,
		sessions:    map[string]*session{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession loads the user's state. Other operations call it implicitly.
func (e *Engine) StartSession(ctx context.Context, userID string) error {
	_, err := e.session(ctx, userID)
	return err
}

// EndSession drops the cached snapshot; the next call reloads from the store.
func (e *Engine) EndSession(userID string) {
	e.mu.Lock()
	delete(e.sessions, userID)
	e.mu.Unlock()
}

func (e *Engine) session(ctx context.Context, userID string) (*session, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	e.mu.Lock()
	s, ok := e.sessions[userID]
	if !ok {
		s = &session{}
		e.sessions[userID] = s
	}
	e.mu.Unlock()

	if s.loaded.Load() {
		return s, nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.loaded.Load() {
		return s, nil
	}

	state, found, err := e.store.Load(ctx, userID)
	if err != nil {
		return nil, unavailable("load state", err)
	}
	if !found {
		state = models.NewUserState(userID)
		if err := e.store.Commit(ctx, userID, state); err != nil {
			return nil, unavailable("seed state", err)
		}
		utils.Logger.Info().Str("user_id", userID).Msg("🌱 seeded goals and badges")
	}
	if err := VerifyPoints(state); err != nil {
		utils.Logger.Warn().Err(err).Str("user_id", userID).Msg("⚠️ stored points disagree with completed goals")
	}

	s.publish(state)
	s.loaded.Store(true)
	return s, nil
}

// mutate applies fn to a copy of the user's state. When fn reports a change
// the copy is committed and then published; on any error nothing is published.
func (e *Engine) mutate(ctx context.Context, userID string, fn func(*models.UserState) (bool, error)) error {
	s, err := e.session(ctx, userID)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.snapshot()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}
	if err := e.store.Commit(ctx, userID, next); err != nil {
		return unavailable("commit state", err)
	}
	s.publish(next)
	return nil
}

// Snapshot returns a copy of the user's current state.
func (e *Engine) Snapshot(ctx context.Context, userID string) (models.UserState, error) {
	s, err := e.session(ctx, userID)
	if err != nil {
		return models.UserState{}, err
	}
	return s.snapshot(), nil
}

// Setup computes and stores the baseline footprint once. A user who already
// completed setup gets the stored profile back unchanged.
func (e *Engine) Setup(ctx context.Context, userID, location string, householdSize int) (models.User, error) {
	baseline, err := ComputeBaseline(location, householdSize)
	if err != nil {
		return models.User{}, err
	}
	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return models.User{}, unavailable("get profile", err)
	}
	if profile.SetupComplete {
		return profile, nil
	}
	user, err := e.profiles.CompleteSetup(ctx, userID, location, householdSize, baseline)
	if err != nil {
		return models.User{}, unavailable("complete setup", err)
	}
	utils.Logger.Info().Str("user_id", userID).Str("location", location).
		Int("household_size", householdSize).Float64("baseline", baseline).
		Msg("🏠 baseline footprint set")
	return user, nil
}

// AddEntry validates and appends a daily entry. A zero date means today.
func (e *Engine) AddEntry(ctx context.Context, userID string, date time.Time, c models.Categories) (models.DailyEntry, error) {
	if date.IsZero() {
		date = e.now()
	}
	entry, err := newEntry(userID, date, c)
	if err != nil {
		return models.DailyEntry{}, err
	}
	err = e.mutate(ctx, userID, func(s *models.UserState) (bool, error) {
		s.DailyData = append(s.DailyData, entry)
		return true, nil
	})
	if err != nil {
		return models.DailyEntry{}, err
	}
	utils.Logger.Debug().Str("user_id", userID).Str("entry_id", entry.ID).
		Float64("total", entry.TotalFootprint).Msg("📈 entry recorded")
	return entry, nil
}

// AddActivity converts raw activity quantities with the engine's emission
// factors and records the result.
func (e *Engine) AddActivity(ctx context.Context, userID string, date time.Time, raw models.Categories) (models.DailyEntry, error) {
	c, err := ConvertActivity(raw, e.factors)
	if err != nil {
		return models.DailyEntry{}, err
	}
	return e.AddEntry(ctx, userID, date, c)
}

// Entries returns the recorded entries in insertion order.
func (e *Engine) Entries(ctx context.Context, userID string) ([]models.DailyEntry, error) {
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.DailyData, nil
}

// BuildSeries parses filter and projects the user's entries into a chart series.
func (e *Engine) BuildSeries(ctx context.Context, userID, filter string) ([]models.ChartPoint, error) {
	f, err := ParseChartFilter(filter)
	if err != nil {
		return nil, err
	}
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildSeries(s.DailyData, f), nil
}

// DailyFact returns today's fact.
func (e *Engine) DailyFact() string {
	return DailyFact(e.now())
}

func (e *Engine) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Goals, nil
}

// AddGoal appends a custom active goal.
func (e *Engine) AddGoal(ctx context.Context, userID string, in GoalInput) (models.Goal, error) {
	g, err := newCustomGoal(userID, in)
	if err != nil {
		return models.Goal{}, err
	}
	err = e.mutate(ctx, userID, func(s *models.UserState) (bool, error) {
		s.Goals = append(s.Goals, g)
		return true, nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	return g, nil
}

// Completion reports the outcome of CompleteGoal.
type Completion struct {
	Goal             models.Goal    `json:"goal"`
	AlreadyCompleted bool           `json:"already_completed"`
	AwardedPoints    int            `json:"awarded_points"`
	TotalPoints      int            `json:"new_total_points"`
	NewBadges        []models.Badge `json:"new_badges"`
}

// CompleteGoal marks a goal completed and awards its points once. Goals,
// points and badges are committed together. Repeating the call is a no-op.
func (e *Engine) CompleteGoal(ctx context.Context, userID, goalID string) (Completion, error) {
	var out Completion
	err := e.mutate(ctx, userID, func(s *models.UserState) (bool, error) {
		now := e.now()
		g, changed, err := completeGoal(s, goalID, now)
		if err != nil {
			return false, err
		}
		out.Goal = g
		out.TotalPoints = s.TotalPoints
		if !changed {
			out.AlreadyCompleted = true
			return false, nil
		}
		out.AwardedPoints = g.Points

		res := EvaluateBadges(FactsFromState(*s), e.catalog, s.Badges, now)
		s.Badges = res.All()
		out.NewBadges = res.NewlyEarned
		return true, nil
	})
	if err != nil {
		return Completion{}, err
	}

	if !out.AlreadyCompleted {
		utils.Logger.Info().Str("user_id", userID).Str("goal_id", goalID).
			Int("points", out.AwardedPoints).Int("total_points", out.TotalPoints).
			Msg("🎯 goal completed")
		for _, b := range out.NewBadges {
			utils.Logger.Info().Str("user_id", userID).Str("badge", b.Name).Msg("🎖️ badge awarded")
		}
	}
	return out, nil
}

// Points returns the user's points total.
func (e *Engine) Points(ctx context.Context, userID string) (int, error) {
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.TotalPoints, nil
}

// EvaluateBadges projects the current snapshot onto the badge catalog.
// Badges that became earned without a goal completion, e.g. after a catalog
// change, are committed so their earned date stays fixed.
func (e *Engine) EvaluateBadges(ctx context.Context, userID string) (BadgeResult, error) {
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return BadgeResult{}, err
	}
	res := EvaluateBadges(FactsFromState(s), e.catalog, s.Badges, e.now())
	if len(res.NewlyEarned) == 0 {
		return res, nil
	}

	err = e.mutate(ctx, userID, func(s *models.UserState) (bool, error) {
		res = EvaluateBadges(FactsFromState(*s), e.catalog, s.Badges, e.now())
		if len(res.NewlyEarned) == 0 {
			return false, nil
		}
		s.Badges = res.All()
		return true, nil
	})
	if err != nil {
		return BadgeResult{}, err
	}
	for _, b := range res.NewlyEarned {
		utils.Logger.Info().Str("user_id", userID).Str("badge", b.Name).Msg("🎖️ badge awarded")
	}
	return res, nil
}

// GenerateGoals adds goals built from the last two weeks of entries, at
// most once per GenerationCooldown.
func (e *Engine) GenerateGoals(ctx context.Context, userID string) (Generation, error) {
	var out Generation
	err := e.mutate(ctx, userID, func(s *models.UserState) (bool, error) {
		gen, err := generateGoals(userID, *s, e.now())
		if err != nil {
			return false, err
		}
		out = gen
		if gen.Skipped || len(gen.Goals) == 0 {
			return false, nil
		}
		s.Goals = append(s.Goals, gen.Goals...)
		return true, nil
	})
	if err != nil {
		return Generation{}, err
	}
	if !out.Skipped {
		utils.Logger.Info().Str("user_id", userID).Int("goals", len(out.Goals)).Msg("🪄 goals generated")
	}
	return out, nil
}

// Rank places the user on the external leaderboard.
func (e *Engine) Rank(ctx context.Context, userID string) (LeaderboardResult, error) {
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return LeaderboardResult{}, err
	}
	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return LeaderboardResult{}, unavailable("get profile", err)
	}
	roster, err := e.leaderboard.Fetch(ctx)
	if err != nil {
		return LeaderboardResult{}, unavailable("fetch leaderboard", err)
	}
	name := profile.Name
	if name == "" {
		name = "You"
	}
	return RankLeaderboard(userID, name, s.TotalPoints, roster), nil
}

// Recommendations summarizes the most recent entries.
func (e *Engine) Recommendations(ctx context.Context, userID string, window int) (CategorySummary, error) {
	s, err := e.Snapshot(ctx, userID)
	if err != nil {
		return CategorySummary{}, err
	}
	return Summarize(s.DailyData, window), nil
}
