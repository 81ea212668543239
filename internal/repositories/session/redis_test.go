package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) makeSession() *models.Session {
	return &models.Session{
		ID:              "test-session-id",
		Name:            "Friday Kolkhoz",
		CreatorID:       "participant-1",
		Status:          models.SessionStatusWaiting,
		MaxParticipants: 4,
		Participants: []*models.Participant{
			{
				ID:          "participant-1",
				SessionID:   "test-session-id",
				UserID:      "user-1",
				DisplayName: "Creator",
				Role:        models.ParticipantRoleCreator,
				Active:      true,
				JoinedAt:    s.testNow,
			},
		},
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := s.makeSession()

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: session.ID})
	s.Require().NoError(err)

	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Name, retrieved.Name)
	s.Equal(session.Status, retrieved.Status)
	s.Require().Len(retrieved.Participants, 1)
	s.Equal("participant-1", retrieved.Participants[0].ID)
	s.Equal(models.ParticipantRoleCreator, retrieved.Participants[0].Role)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: "missing"})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestStatusIndexFollowsUpdates() {
	session := s.makeSession()
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	waiting, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusWaiting,
	})
	s.Require().NoError(err)
	s.Require().Len(waiting.Sessions, 1)

	session.Status = models.SessionStatusInProgress
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	waiting, err = s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusWaiting,
	})
	s.Require().NoError(err)
	s.Empty(waiting.Sessions)

	inProgress, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusInProgress,
	})
	s.Require().NoError(err)
	s.Require().Len(inProgress.Sessions, 1)
	s.Equal(session.ID, inProgress.Sessions[0].ID)
}

func (s *RedisRepositoryTestSuite) TestDeleteSession() {
	session := s.makeSession()
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: session}))

	err := s.repo.DeleteSession(context.Background(), &DeleteSessionInput{SessionID: session.ID})
	s.Require().NoError(err)

	_, err = s.repo.GetSession(context.Background(), &GetSessionInput{SessionID: session.ID})
	s.Require().ErrorIs(err, ErrSessionNotFound)

	waiting, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Status: models.SessionStatusWaiting,
	})
	s.Require().NoError(err)
	s.Empty(waiting.Sessions)
}
