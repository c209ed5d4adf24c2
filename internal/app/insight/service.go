// internal/app/insight/service.go
package insight

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/studymatch/internal/app/match"
	groupstore "github.com/dalemusser/studymatch/internal/app/store/groups"
	insightstore "github.com/dalemusser/studymatch/internal/app/store/insights"
	userstore "github.com/dalemusser/studymatch/internal/app/store/users"
	"github.com/dalemusser/studymatch/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Service generates and serves daily insights.
type Service struct {
	users    *userstore.Store
	groups   *groupstore.Store
	insights *insightstore.Store
	log      *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

func NewService(users *userstore.Store, groups *groupstore.Store, insights *insightstore.Store, log *zap.Logger) *Service {
	return &Service{
		users:    users,
		groups:   groups,
		insights: insights,
		log:      log,
		now:      time.Now,
	}
}

// GetToday returns the user's current insight, regenerating it when none
// is stored or the stored one has expired.
func (s *Service) GetToday(ctx context.Context, userID primitive.ObjectID) (*models.Insight, error) {
	stored, err := s.insights.Get(ctx, userID)
	switch {
	case err == nil:
		if stored.Valid(s.now()) {
			return stored, nil
		}
	case errors.Is(err, mongo.ErrNoDocuments):
		// fall through to generation
	default:
		return nil, err
	}
	return s.Generate(ctx, userID)
}

// Generate builds a fresh insight for the user and stores it, replacing
// any previous one. If a concurrent generation wins the insert race, the
// winner's insight is returned instead of an error.
func (s *Service) Generate(ctx context.Context, userID primitive.ObjectID) (*models.Insight, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	ins := models.Insight{
		UserID:      userID,
		GeneratedAt: now,
		ExpiresAt:   now.Add(models.InsightValidity),
	}

	if !user.IsProfileComplete {
		ins.Primary = OnboardingInsight()
	} else {
		others, err := s.users.ListActiveExcept(ctx, userID)
		if err != nil {
			return nil, err
		}
		open, err := s.groups.ListOpen(ctx)
		if err != nil {
			return nil, err
		}
		stats := match.Analyze(user, others, open)
		ins.Primary = Compose(stats)
		ins.SecondaryTip = ComposeTip(stats)
		ins.Metadata = models.InsightMetadata{
			MatchPercentage: stats.MatchPercentage,
			SkillGaps:       stats.SkillGaps,
			SuggestedSkills: stats.SuggestedSkills,
			MatchCount:      stats.MatchCount,
		}
	}

	saved, err := s.insights.Upsert(ctx, ins)
	if err != nil {
		if errors.Is(err, insightstore.ErrConflict) {
			s.log.Debug("insight insert lost race, re-reading",
				zap.String("user_id", userID.Hex()))
			return s.insights.Get(ctx, userID)
		}
		return nil, err
	}
	return &saved, nil
}
