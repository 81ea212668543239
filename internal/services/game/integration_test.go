package game

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/artelbilliards/kolkhoz/internal/common/clock"
	"github.com/artelbilliards/kolkhoz/internal/common/uuid"
	"github.com/artelbilliards/kolkhoz/internal/models"
	"github.com/artelbilliards/kolkhoz/internal/queue"
	gameRepo "github.com/artelbilliards/kolkhoz/internal/repositories/game"
	queueHistoryRepo "github.com/artelbilliards/kolkhoz/internal/repositories/queuehistory"
	sessionRepo "github.com/artelbilliards/kolkhoz/internal/repositories/session"
	"github.com/artelbilliards/kolkhoz/internal/settlement"
)

// orchestratorIntegrationSuite runs the service against real repositories
// backed by miniredis and the real turn order generator, exercising a full
// session from creation through settled games.
type orchestratorIntegrationSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	service *service
	ctx     context.Context
}

func (s *orchestratorIntegrationSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{Addr: s.mr.Addr()})

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	games, err := gameRepo.NewRedis(&gameRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	history, err := queueHistoryRepo.NewRedis(&queueHistoryRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	svc, err := NewService(&Config{
		SessionRepo:      sessions,
		GameRepo:         games,
		QueueHistoryRepo: history,
		Generator:        queue.New(&queue.Config{Seed: 42}),
		Calculator: settlement.New(&settlement.Config{
			PointValueMinorUnits: 100,
			PaymentDirection:     settlement.DirectionPreviousPaysNext,
		}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.service = svc
	s.ctx = context.Background()
}

func (s *orchestratorIntegrationSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestOrchestratorIntegrationSuite(t *testing.T) {
	suite.Run(t, new(orchestratorIntegrationSuite))
}

// createThreePlayerSession returns the session ID and the participant IDs
// in join order.
func (s *orchestratorIntegrationSuite) createThreePlayerSession() (string, []string) {
	created, err := s.service.CreateSession(s.ctx, &CreateSessionInput{
		Name:               "Friday Kolkhoz",
		CreatorUserID:      "user-a",
		CreatorDisplayName: "A",
	})
	s.Require().NoError(err)
	sessionID := created.Session.ID
	ids := []string{created.Session.CreatorID}

	for _, name := range []string{"B", "C"} {
		joined, err := s.service.AddParticipant(s.ctx, &AddParticipantInput{
			SessionID:   sessionID,
			UserID:      "user-" + strings.ToLower(name),
			DisplayName: name,
		})
		s.Require().NoError(err)
		ids = append(ids, joined.Participant.ID)
	}
	return sessionID, ids
}

func (s *orchestratorIntegrationSuite) TestNoRepeatCycleAcrossGames() {
	sessionID, _ := s.createThreePlayerSession()

	// Six no-repeat draws for a 3-player roster must cover all 3! orderings
	seen := make(map[string]struct{})
	for i := 0; i < 6; i++ {
		created, err := s.service.CreateGame(s.ctx, &CreateGameInput{
			SessionID: sessionID,
			Policy:    models.QueuePolicyRandomNoRepeat,
		})
		s.Require().NoError(err)
		s.Equal(i+1, created.Game.GameNumber)

		key := strings.Join(created.Game.TurnOrder, "|")
		_, dup := seen[key]
		s.False(dup, "draw %d repeated ordering %s", i+1, key)
		seen[key] = struct{}{}

		_, err = s.service.CompleteGame(s.ctx, &CompleteGameInput{GameID: created.Game.ID})
		s.Require().NoError(err)
	}
	s.Len(seen, 6)

	// The seventh draw starts a new cycle within the six known orderings
	seventh, err := s.service.CreateGame(s.ctx, &CreateGameInput{
		SessionID: sessionID,
		Policy:    models.QueuePolicyRandomNoRepeat,
	})
	s.Require().NoError(err)
	s.Contains(seen, strings.Join(seventh.Game.TurnOrder, "|"))
	s.Equal(7, seventh.Game.GameNumber)
}

func (s *orchestratorIntegrationSuite) TestSecondCreateGameConflicts() {
	sessionID, _ := s.createThreePlayerSession()

	_, err := s.service.CreateGame(s.ctx, &CreateGameInput{
		SessionID: sessionID,
		Policy:    models.QueuePolicyAlwaysRandom,
	})
	s.Require().NoError(err)

	_, err = s.service.CreateGame(s.ctx, &CreateGameInput{
		SessionID: sessionID,
		Policy:    models.QueuePolicyAlwaysRandom,
	})
	s.ErrorIs(err, ErrGameInProgress)
}

func (s *orchestratorIntegrationSuite) TestManualGameSettlesAndFoldsCounters() {
	sessionID, ids := s.createThreePlayerSession()
	a, b, c := ids[0], ids[1], ids[2]

	created, err := s.service.CreateGame(s.ctx, &CreateGameInput{
		SessionID:   sessionID,
		Policy:      models.QueuePolicyManual,
		CustomOrder: []string{a, b, c},
	})
	s.Require().NoError(err)
	s.Equal([]string{a, b, c}, created.Game.TurnOrder)

	// Queue positions mirror the assigned order
	session, err := s.service.GetSession(s.ctx, &GetSessionInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(1, session.Session.Participant(a).QueuePosition)
	s.Equal(2, session.Session.Participant(b).QueuePosition)
	s.Equal(3, session.Session.Participant(c).QueuePosition)

	gameID := created.Game.ID
	record := func(participantID string, eventType models.EventType, points, penalty int) {
		_, err := s.service.RecordEvent(s.ctx, &RecordEventInput{
			GameID:        gameID,
			ParticipantID: participantID,
			Type:          eventType,
			Points:        points,
			Penalty:       penalty,
		})
		s.Require().NoError(err)
	}
	record(a, models.EventTypeBallPotted, 5, 0)
	record(b, models.EventTypeFoul, 0, 1)
	record(b, models.EventTypeBallPotted, 3, 0)

	completed, err := s.service.CompleteGame(s.ctx, &CompleteGameInput{GameID: gameID})
	s.Require().NoError(err)
	s.Equal(a, completed.Result.WinnerID)
	s.Equal(5, completed.Result.PerParticipant[0].PointsScored)
	s.Equal(2, completed.Result.PerParticipant[1].PointsScored)

	// Session counters reflect the settled game, and the balances zero out
	session, err = s.service.GetSession(s.ctx, &GetSessionInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(1, session.Session.Participant(a).GamesPlayed)
	s.Equal(1, session.Session.Participant(a).BallsPotted)
	var net int64
	for _, p := range session.Session.Participants {
		net += p.BalanceMinorUnits
	}
	s.Zero(net)
	s.Empty(session.Session.CurrentGameID)
}

func (s *orchestratorIntegrationSuite) TestActiveGameLookup() {
	sessionID, _ := s.createThreePlayerSession()

	created, err := s.service.CreateGame(s.ctx, &CreateGameInput{
		SessionID: sessionID,
		Policy:    models.QueuePolicyAlwaysRandom,
	})
	s.Require().NoError(err)

	active, err := s.service.GetActiveGame(s.ctx, &GetActiveGameInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Equal(created.Game.ID, active.Game.ID)

	_, err = s.service.CancelGame(s.ctx, &CancelGameInput{GameID: created.Game.ID})
	s.Require().NoError(err)

	_, err = s.service.GetActiveGame(s.ctx, &GetActiveGameInput{SessionID: sessionID})
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *orchestratorIntegrationSuite) TestSessionGamesListedNewestFirst() {
	sessionID, _ := s.createThreePlayerSession()

	for i := 0; i < 3; i++ {
		created, err := s.service.CreateGame(s.ctx, &CreateGameInput{
			SessionID: sessionID,
			Policy:    models.QueuePolicyAlwaysRandom,
		})
		s.Require().NoError(err)
		_, err = s.service.CompleteGame(s.ctx, &CompleteGameInput{GameID: created.Game.ID})
		s.Require().NoError(err)
	}

	listed, err := s.service.GetSessionGames(s.ctx, &GetSessionGamesInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Require().Len(listed.Games, 3)
	s.Equal(3, listed.Games[0].GameNumber)
	s.Equal(1, listed.Games[2].GameNumber)
}
