package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/artelbilliards/kolkhoz/internal/models"
	svcgame "github.com/artelbilliards/kolkhoz/internal/services/game"
	svcmocks "github.com/artelbilliards/kolkhoz/internal/services/game/mocks"
	"github.com/artelbilliards/kolkhoz/internal/settlement"
)

func testSession() *models.Session {
	now := time.Date(2024, 6, 15, 19, 30, 0, 0, time.UTC)
	return &models.Session{
		ID:              "session-1",
		Name:            "Friday Kolkhoz",
		CreatorID:       "participant-1",
		Status:          models.SessionStatusWaiting,
		MaxParticipants: 4,
		Participants: []*models.Participant{
			{ID: "participant-1", SessionID: "session-1", DisplayName: "Sasha", Role: models.ParticipantRoleCreator, Active: true, JoinedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testGame() *models.Game {
	now := time.Date(2024, 6, 15, 19, 45, 0, 0, time.UTC)
	return &models.Game{
		ID:         "game-1",
		SessionID:  "session-1",
		GameNumber: 1,
		Status:     models.GameStatusActive,
		Policy:     models.QueuePolicyAlwaysRandom,
		TurnOrder:  []string{"participant-1", "participant-2"},
		Events:     []*models.Event{},
		CreatedAt:  now,
	}
}

func doRequest(t *testing.T, svc svcgame.Service, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	NewRouter(svc).ServeHTTP(rec, req)
	return rec
}

func TestCreateSessionEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		CreateSession(gomock.Any(), &svcgame.CreateSessionInput{
			Name:               "Friday Kolkhoz",
			MaxParticipants:    4,
			CreatorUserID:      "user-1",
			CreatorDisplayName: "Sasha",
		}).
		Return(&svcgame.CreateSessionOutput{Session: testSession()}, nil)

	rec := doRequest(t, svc, http.MethodPost, "/api/sessions",
		`{"name":"Friday Kolkhoz","max_participants":4,"creator_user_id":"user-1","creator_display_name":"Sasha"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp sessionJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "session-1", resp.ID)
	assert.Equal(t, "waiting", resp.Status)
	assert.Len(t, resp.Participants, 1)
}

func TestCreateSessionValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		Return(nil, svcgame.ErrInvalidSessionName)

	rec := doRequest(t, svc, http.MethodPost, "/api/sessions", `{"name":""}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_session_name", resp["error"])
}

func TestCreateSessionInvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	rec := doRequest(t, svc, http.MethodPost, "/api/sessions", `{not json`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		GetSession(gomock.Any(), &svcgame.GetSessionInput{SessionID: "missing"}).
		Return(nil, svcgame.ErrSessionNotFound)

	rec := doRequest(t, svc, http.MethodGet, "/api/sessions/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "session_not_found", resp["error"])
}

func TestListSessionsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		ListSessions(gomock.Any(), &svcgame.ListSessionsInput{
			Status: models.SessionStatusWaiting,
		}).
		Return(&svcgame.ListSessionsOutput{
			Sessions: []*models.Session{testSession()},
		}, nil)

	rec := doRequest(t, svc, http.MethodGet, "/api/sessions?status=waiting", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []sessionJSON `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "session-1", resp.Items[0].ID)
}

func TestListSessionsUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		ListSessions(gomock.Any(), gomock.Any()).
		Return(nil, svcgame.ErrInvalidStatus)

	rec := doRequest(t, svc, http.MethodGet, "/api/sessions?status=paused", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_status", resp["error"])
}

func TestAddParticipantConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		AddParticipant(gomock.Any(), gomock.Any()).
		Return(nil, svcgame.ErrSessionFull)

	rec := doRequest(t, svc, http.MethodPost, "/api/sessions/session-1/participants",
		`{"user_id":"user-5","display_name":"Late"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "session_full", resp["error"])
}

func TestCreateGameEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		CreateGame(gomock.Any(), &svcgame.CreateGameInput{
			SessionID:   "session-1",
			Policy:      models.QueuePolicyManual,
			CustomOrder: []string{"participant-2", "participant-1"},
		}).
		Return(&svcgame.CreateGameOutput{Game: testGame()}, nil)

	rec := doRequest(t, svc, http.MethodPost, "/api/sessions/session-1/games",
		`{"policy":"manual","custom_order":["participant-2","participant-1"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp gameJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "game-1", resp.ID)
	assert.Equal(t, 1, resp.GameNumber)
	assert.Equal(t, []string{"participant-1", "participant-2"}, resp.TurnOrder)
}

func TestCreateGameWhileInProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		CreateGame(gomock.Any(), gomock.Any()).
		Return(nil, svcgame.ErrGameInProgress)

	rec := doRequest(t, svc, http.MethodPost, "/api/sessions/session-1/games",
		`{"policy":"always_random"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "game_in_progress", resp["error"])
}

func TestRecordEventEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	game := testGame()
	event := &models.Event{
		ID:             "event-1",
		GameID:         "game-1",
		ParticipantID:  "participant-1",
		Type:           models.EventTypeBallPotted,
		Points:         1,
		SequenceNumber: 1,
	}
	game.Events = append(game.Events, event)

	svc.EXPECT().
		RecordEvent(gomock.Any(), &svcgame.RecordEventInput{
			GameID:        "game-1",
			ParticipantID: "participant-1",
			Type:          models.EventTypeBallPotted,
			Points:        1,
		}).
		Return(&svcgame.RecordEventOutput{Game: game, Event: event}, nil)

	rec := doRequest(t, svc, http.MethodPost, "/api/games/game-1/events",
		`{"participant_id":"participant-1","type":"ball_potted","points":1}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp gameJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, 1, resp.Events[0].SequenceNumber)
}

func TestRecordEventOnFinishedGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		RecordEvent(gomock.Any(), gomock.Any()).
		Return(nil, svcgame.ErrGameNotActive)

	rec := doRequest(t, svc, http.MethodPost, "/api/games/game-1/events",
		`{"participant_id":"participant-1","type":"ball_potted","points":1}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "game_not_active", resp["error"])
}

func TestDeleteEventEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	game := testGame()
	game.Events = []*models.Event{
		{ID: "event-1", SequenceNumber: 1, Deleted: true},
	}

	svc.EXPECT().
		SoftDeleteEvent(gomock.Any(), &svcgame.SoftDeleteEventInput{
			GameID:  "game-1",
			EventID: "event-1",
		}).
		Return(&svcgame.SoftDeleteEventOutput{Game: game}, nil)

	rec := doRequest(t, svc, http.MethodDelete, "/api/games/game-1/events/event-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp gameJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.True(t, resp.Events[0].Deleted)
}

func TestCompleteGameEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	game := testGame()
	game.Status = models.GameStatusCompleted
	game.WinnerID = "participant-1"
	result := &settlement.Result{
		WinnerID: "participant-1",
		PerParticipant: []*models.GameResult{
			{ParticipantID: "participant-1", QueuePosition: 1, PointsScored: 5, NetAmount: 15000},
			{ParticipantID: "participant-2", QueuePosition: 2, PointsScored: 2, NetAmount: -15000},
		},
	}

	svc.EXPECT().
		CompleteGame(gomock.Any(), &svcgame.CompleteGameInput{GameID: "game-1"}).
		Return(&svcgame.CompleteGameOutput{Game: game, Result: result}, nil)

	rec := doRequest(t, svc, http.MethodPost, "/api/games/game-1/complete", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Game       gameJSON `json:"game"`
		Settlement struct {
			WinnerID string       `json:"winner_id"`
			Results  []resultJSON `json:"results"`
		} `json:"settlement"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "participant-1", resp.Settlement.WinnerID)
	require.Len(t, resp.Settlement.Results, 2)
	assert.Equal(t, int64(15000), resp.Settlement.Results[0].NetAmount)
}

func TestListGamesEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	svc.EXPECT().
		GetSessionGames(gomock.Any(), &svcgame.GetSessionGamesInput{
			SessionID: "session-1",
			Limit:     10,
			Offset:    0,
		}).
		Return(&svcgame.GetSessionGamesOutput{Games: []*models.Game{testGame()}}, nil)

	rec := doRequest(t, svc, http.MethodGet, "/api/sessions/session-1/games?limit=10", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []gameJSON `json:"items"`
		Limit int        `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 10, resp.Limit)
}

func TestScoresEndpointLiveGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	game := testGame()
	game.Events = []*models.Event{
		{ID: "event-1", ParticipantID: "participant-1", Type: models.EventTypeBallPotted, Points: 2, SequenceNumber: 1},
		{ID: "event-2", ParticipantID: "participant-2", Type: models.EventTypeFoul, Penalty: 1, SequenceNumber: 2},
		{ID: "event-3", ParticipantID: "participant-1", Type: models.EventTypeBallPotted, Points: 3, SequenceNumber: 3, Deleted: true},
	}

	svc.EXPECT().
		GetGame(gomock.Any(), &svcgame.GetGameInput{GameID: "game-1"}).
		Return(&svcgame.GetGameOutput{Game: game}, nil)

	rec := doRequest(t, svc, http.MethodGet, "/api/games/game-1/scores", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Status  string          `json:"status"`
		Results []liveScoreJSON `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp.Status)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.Results[0].PointsScored)
	assert.Equal(t, 1, resp.Results[0].BallsPotted)
	assert.Equal(t, -1, resp.Results[1].PointsScored)
}

func TestScoresEndpointCompletedGame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	game := testGame()
	game.Status = models.GameStatusCompleted
	game.WinnerID = "participant-1"
	game.Results = []*models.GameResult{
		{ParticipantID: "participant-1", QueuePosition: 1, PointsScored: 5, NetAmount: 15000},
		{ParticipantID: "participant-2", QueuePosition: 2, PointsScored: 2, NetAmount: -15000},
	}

	svc.EXPECT().
		GetGame(gomock.Any(), &svcgame.GetGameInput{GameID: "game-1"}).
		Return(&svcgame.GetGameOutput{Game: game}, nil)

	rec := doRequest(t, svc, http.MethodGet, "/api/games/game-1/scores", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		WinnerID string       `json:"winner_id"`
		Results  []resultJSON `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "participant-1", resp.WinnerID)
	require.Len(t, resp.Results, 2)
}

func TestHealthEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := svcmocks.NewMockService(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	NewRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
