package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

func completionServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestEnhanceTask(t *testing.T) {
	srv := completionServer(t, `{
		"improvedDescription": "Do the thing properly",
		"acceptanceCriteria": ["it works", "it is tested"],
		"suggestedPriority": "High",
		"urgency": "Medium"
	}`, http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	out, err := client.EnhanceTask(context.Background(), "do the thing", "somehow")
	require.NoError(t, err)
	assert.Equal(t, "Do the thing properly", out.ImprovedDescription)
	assert.Len(t, out.AcceptanceCriteria, 2)
	assert.Equal(t, "High", out.SuggestedPriority)
}

func TestSuggestSubtasksStripsFences(t *testing.T) {
	// models emit fenced JSON despite instructions; the fence is tolerated
	srv := completionServer(t, "```json\n{\"subtasks\": [\"plan\", \"build\", \"verify\"]}\n```", http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	out, err := client.SuggestSubtasks(context.Background(), "release", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"plan", "build", "verify"}, out.Subtasks)
}

func TestParseTaskFromText(t *testing.T) {
	srv := completionServer(t, `{
		"title": "Ship the release",
		"description": "",
		"priority": "High",
		"assigneeName": "Bob",
		"dueDate": "null"
	}`, http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	out, err := client.ParseTaskFromText(context.Background(), "remind Bob to ship the release", []models.User{{Name: "Bob"}})
	require.NoError(t, err)
	assert.Equal(t, "Ship the release", out.Title)
	assert.Equal(t, "Bob", out.AssigneeName)
	assert.Equal(t, "null", out.DueDate)
}

func TestMalformedResponseIsHardFailure(t *testing.T) {
	srv := completionServer(t, "Sure! Here is the JSON you asked for: {oops", http.StatusOK)
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	_, err := client.EnhanceTask(context.Background(), "x", "")
	require.Error(t, err)
	assert.Equal(t, apperr.InvalidAIResponse, apperr.KindOf(err))
}

func TestUpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", "test-model", 5*time.Second)
	_, err := client.SuggestSubtasks(context.Background(), "x", "")
	require.Error(t, err)
	assert.Equal(t, apperr.Unexpected, apperr.KindOf(err))
}

func TestParseStrictJSON(t *testing.T) {
	var out SubtaskSuggestion
	require.NoError(t, parseStrictJSON("```JSON\n{\"subtasks\":[\"a\"]}\n```", &out))
	assert.Equal(t, []string{"a"}, out.Subtasks)

	err := parseStrictJSON("not json at all", &out)
	assert.Equal(t, apperr.InvalidAIResponse, apperr.KindOf(err))
}
