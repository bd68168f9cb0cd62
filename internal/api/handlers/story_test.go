package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Aayush1011/poker-planning-backend/internal/domain"
	"github.com/Aayush1011/poker-planning-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStoryEndpoints_ModeratorGate(t *testing.T) {
	ts := testutil.NewTestServer(t)

	moderator := loginAs(t, ts)
	member := loginAs(t, ts)
	session := testutil.NewSessionBuilder().Build(t, ts.DB.DB)
	testutil.AddParticipant(t, ts.DB.DB, session.ID, moderator.userID, domain.RoleModerator)
	testutil.AddParticipant(t, ts.DB.DB, session.ID, member.userID, domain.RoleMember)

	storyPath := fmt.Sprintf("/sessions/%s/story", session.ID)

	addBody := func(userID uint) map[string]interface{} {
		return map[string]interface{}{
			"userId":      userID,
			"name":        "login flow",
			"description": "as a user I can log in",
		}
	}

	t.Run("member is forbidden", func(t *testing.T) {
		resp := member.do(http.MethodPost, storyPath, addBody(member.userID))
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Forbidden")
	})

	t.Run("non-participant is forbidden", func(t *testing.T) {
		outsider := loginAs(t, ts)
		resp := outsider.do(http.MethodPost, storyPath, addBody(outsider.userID))
		defer resp.Body.Close()

		testutil.AssertErrorResponse(t, resp, http.StatusForbidden, "Forbidden")
	})

	t.Run("moderator adds", func(t *testing.T) {
		resp := moderator.do(http.MethodPost, storyPath, addBody(moderator.userID))
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusCreated)
		var body struct {
			Message string `json:"message"`
			ID      uint   `json:"id"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "new story added", body.Message)
		assert.NotZero(t, body.ID)
	})
}

func TestStoryEndpoints_CRUD(t *testing.T) {
	ts := testutil.NewTestServer(t)

	moderator := loginAs(t, ts)
	session := testutil.NewSessionBuilder().Build(t, ts.DB.DB)
	otherSession := testutil.NewSessionBuilder().WithName("unrelated session").Build(t, ts.DB.DB)
	testutil.AddParticipant(t, ts.DB.DB, session.ID, moderator.userID, domain.RoleModerator)
	testutil.AddParticipant(t, ts.DB.DB, otherSession.ID, moderator.userID, domain.RoleModerator)

	story := testutil.AddStory(t, ts.DB.DB, session.ID, moderator.userID, "checkout flow")

	t.Run("list", func(t *testing.T) {
		resp := moderator.do(http.MethodGet, fmt.Sprintf("/sessions/%s/stories", session.ID), nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
		var body struct {
			Message string `json:"message"`
			Stories []struct {
				ID   uint   `json:"id"`
				Name string `json:"name"`
			} `json:"stories"`
		}
		testutil.AssertJSONResponse(t, resp, &body)
		assert.Equal(t, "stories fetched", body.Message)
		assert.Len(t, body.Stories, 1)
		assert.Equal(t, "checkout flow", body.Stories[0].Name)
	})

	t.Run("edit", func(t *testing.T) {
		resp := moderator.do(http.MethodPut,
			fmt.Sprintf("/sessions/%s/stories/%d", session.ID, story.ID),
			map[string]string{"name": "checkout flow v2", "description": "revised scope"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})

	t.Run("edit unknown story", func(t *testing.T) {
		resp := moderator.do(http.MethodPut,
			fmt.Sprintf("/sessions/%s/stories/%d", session.ID, 999999),
			map[string]string{"name": "ghost", "description": "does not exist"})
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("delete scoped to the wrong session", func(t *testing.T) {
		resp := moderator.do(http.MethodDelete,
			fmt.Sprintf("/sessions/%s/stories/%d", otherSession.ID, story.ID), nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		resp := moderator.do(http.MethodDelete,
			fmt.Sprintf("/sessions/%s/stories/%d", session.ID, story.ID), nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		listResp := moderator.do(http.MethodGet, fmt.Sprintf("/sessions/%s/stories", session.ID), nil)
		defer listResp.Body.Close()
		var body struct {
			Stories []struct{} `json:"stories"`
		}
		testutil.AssertJSONResponse(t, listResp, &body)
		assert.Empty(t, body.Stories)
	})
}
