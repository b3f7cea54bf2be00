package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/climblink/backend/internal/delivery/http/handler"
	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/identity"
	"github.com/climblink/backend/internal/logger"
	"github.com/climblink/backend/internal/repository/repositorytest"
	"github.com/climblink/backend/internal/token"
	"github.com/climblink/backend/internal/usecase/match"
	"github.com/climblink/backend/internal/usecase/message"
	"github.com/climblink/backend/internal/usecase/profile"
	"github.com/climblink/backend/internal/usecase/stack"
	"github.com/climblink/backend/internal/usecase/swipe"
)

type testEnv struct {
	engine   *gin.Engine
	profiles *repositorytest.ProfileRepo
	swipes   *repositorytest.SwipeRepo
	messages *repositorytest.MessageRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := repositorytest.NewProfileRepo()
	swipes := repositorytest.NewSwipeRepo()
	messages := repositorytest.NewMessageRepo()
	matches := repositorytest.NewMatchRepo(swipes)

	log := logger.NewNop()
	provider := identity.DeviceToken{}

	stackUC := stack.NewUseCase(profiles, swipes, log)
	swipeUC := swipe.NewUseCase(swipes, profiles, log)
	profileUC := profile.NewUseCase(profiles, log)
	messageUC := message.NewUseCase(messages, profiles, log)
	matchUC := match.NewUseCase(matches, profiles, log)

	router := NewRouter(
		handler.NewStackHandler(stackUC, provider, log),
		handler.NewSwipeHandler(swipeUC, provider, log),
		handler.NewProfileHandler(profileUC, provider, log),
		handler.NewMessageHandler(messageUC, provider, log),
		handler.NewMatchHandler(matchUC, provider, log),
		nil, // no redis in tests, rate limiting passes through
		0,
		time.Minute,
		log,
	)

	return &testEnv{
		engine:   router.Setup(),
		profiles: profiles,
		swipes:   swipes,
		messages: messages,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedCandidate(e *testEnv, id int, name string) {
	lat, lon := 40.0150, -105.2705
	maxDist := 100.0
	e.profiles.Add(&domain.Profile{
		ID:               id,
		DeviceID:         fmt.Sprintf("device-%d", id),
		Name:             name,
		Age:              30,
		Gender:           domain.GenderWoman,
		Latitude:         &lat,
		Longitude:        &lon,
		WantsSport:       true,
		DoesSport:        true,
		MinAgePreference: 20,
		MaxAgePreference: 45,
		GenderPreference: domain.PrefAllGenders,
		MaxDistanceKm:    &maxDist,
	})
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decodeBody(t, w)["status"])

	w = env.do(t, http.MethodHead, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetStackAnonymousServesDefaultStack(t *testing.T) {
	env := newTestEnv(t)
	seedCandidate(env, 1, "Sierra")

	w := env.do(t, http.MethodGet, "/getStack", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, float64(1), body["count"])

	cards, ok := body["stack"].([]interface{})
	require.True(t, ok)
	require.Len(t, cards, 1)

	card := cards[0].(map[string]interface{})
	require.Equal(t, token.Encode(1), card["id"])
	require.Equal(t, "Sierra", card["name"])
	require.Equal(t, float64(30), card["age"])
	require.Contains(t, card, "skillLevel")
	require.Contains(t, card, "preferredTypes")
	require.Contains(t, card, "profileImageName")
}

func TestRecordSwipeValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/swipes", map[string]string{
		"swiperDeviceId": "device-a",
		"action":         "like",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/swipes", map[string]string{
		"swiperDeviceId":  "device-a",
		"swipedProfileId": "1",
		"action":          "superlike",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordSwipeMutualLike(t *testing.T) {
	env := newTestEnv(t)
	seedCandidate(env, 1, "Sierra")
	seedCandidate(env, 2, "Quinn")

	w := env.do(t, http.MethodPost, "/swipes", map[string]string{
		"swiperDeviceId":  "device-1",
		"swipedProfileId": token.Encode(2),
		"action":          "like",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, false, decodeBody(t, w)["matched"])

	w = env.do(t, http.MethodPost, "/swipes", map[string]string{
		"swiperDeviceId":  "device-2",
		"swipedProfileId": token.Encode(1),
		"action":          "like",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["matched"])
	require.NotNil(t, body["match"])
}

func TestGetProfileCreatesStarterProfile(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/user/profile/device-new", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "device-new", body["device_id"])
	require.Equal(t, "New Climber", body["name"])
	require.Equal(t, false, body["is_onboarding_complete"])
}

func TestSendMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	seedCandidate(env, 1, "Sierra")
	seedCandidate(env, 2, "Quinn")

	w := env.do(t, http.MethodPost, "/messages", map[string]string{
		"senderDeviceId":    "device-1",
		"recipientDeviceId": "device-2",
		"content":           "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/messages", map[string]string{
		"senderDeviceId":    "device-1",
		"recipientDeviceId": "device-2",
		"content":           "   ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/messages", map[string]string{
		"senderDeviceId":    "device-1",
		"recipientDeviceId": "device-2",
		"content":           "Eldo this weekend?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestConversationFlow(t *testing.T) {
	env := newTestEnv(t)
	seedCandidate(env, 1, "Sierra")
	seedCandidate(env, 2, "Quinn")

	w := env.do(t, http.MethodPost, "/messages", map[string]string{
		"senderDeviceId":    "device-1",
		"recipientDeviceId": "device-2",
		"content":           "Psyched for Saturday",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodGet, "/messages/conversation?deviceId1=device-2&deviceId2=device-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	msgs := body["messages"].([]interface{})
	require.Len(t, msgs, 1)

	w = env.do(t, http.MethodGet, "/messages/conversations/device-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	convs := body["conversations"].([]interface{})
	require.Len(t, convs, 1)
	summary := convs[0].(map[string]interface{})
	require.Equal(t, "device-1", summary["otherUserDeviceId"])
	require.Equal(t, float64(1), summary["unreadCount"])

	w = env.do(t, http.MethodPost, "/messages/read", map[string]string{
		"deviceId":      "device-2",
		"otherDeviceId": "device-1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestGetMatches(t *testing.T) {
	env := newTestEnv(t)
	seedCandidate(env, 1, "Sierra")
	seedCandidate(env, 2, "Quinn")

	env.do(t, http.MethodPost, "/swipes", map[string]string{
		"swiperDeviceId":  "device-1",
		"swipedProfileId": token.Encode(2),
		"action":          "like",
	})
	env.do(t, http.MethodPost, "/swipes", map[string]string{
		"swiperDeviceId":  "device-2",
		"swipedProfileId": token.Encode(1),
		"action":          "like",
	})

	w := env.do(t, http.MethodGet, "/matches/device-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	matches := body["matches"].([]interface{})
	require.Len(t, matches, 1)
	m := matches[0].(map[string]interface{})
	require.Equal(t, "Quinn", m["name"])
	require.Equal(t, "device-2", m["deviceId"])
}

func TestGetConversationRequiresBothDevices(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/messages/conversation?deviceId1=device-1", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownProfileTokenIs404(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/profile/"+token.Encode(99)+"/deviceId", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
