package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/apperr"
	"github.com/Whitedevil-cloud-ux/Task-Workflow-Manager-Backend/internal/models"
)

// Client talks to an OpenAI-compatible chat-completions endpoint (Groq by
// default). Single attempt per call, no retry; malformed output is a hard
// InvalidAIResponse failure, never partially trusted.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

type Enhancement struct {
	ImprovedDescription string   `json:"improvedDescription"`
	AcceptanceCriteria  []string `json:"acceptanceCriteria"`
	SuggestedPriority   string   `json:"suggestedPriority"`
	Urgency             string   `json:"urgency"`
}

type SubtaskSuggestion struct {
	Subtasks []string `json:"subtasks"`
}

type RiskExplanation struct {
	Summary         string   `json:"summary"`
	Reasons         []string `json:"reasons"`
	SuggestedAction string   `json:"suggestedAction"`
}

type ParsedTask struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	AssigneeName string `json:"assigneeName"`
	DueDate      string `json:"dueDate"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// jsonField encodes a user-controlled value for prompt embedding. Marshalling
// keeps attacker-controlled text inside a quoted JSON string so it cannot
// break out into the instruction section of the prompt.
func jsonField(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `""`
	}
	return string(b)
}

func (c *Client) EnhanceTask(ctx context.Context, title, description string) (*Enhancement, error) {
	prompt := fmt.Sprintf(`You are an AI productivity assistant for a task management system.

Return STRICT JSON ONLY.
NO markdown.
NO backticks.

Keys:
- improvedDescription (string)
- acceptanceCriteria (array of strings)
- suggestedPriority (Low | Medium | High | Critical)
- urgency (Low | Medium | High)

Input (JSON): {"title": %s, "description": %s}`,
		jsonField(title), jsonField(description))

	out := &Enhancement{}
	if err := c.complete(ctx, prompt, 0.2, 400, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SuggestSubtasks(ctx context.Context, title, description string) (*SubtaskSuggestion, error) {
	prompt := fmt.Sprintf(`You are an expert software project manager.

Generate 4 to 8 clear, actionable sub-tasks.

Return STRICT JSON ONLY.
NO markdown.
NO explanations.

Format:
{
  "subtasks": ["string", "string"]
}

Input (JSON): {"title": %s, "description": %s}`,
		jsonField(title), jsonField(description))

	out := &SubtaskSuggestion{}
	if err := c.complete(ctx, prompt, 0.3, 300, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ExplainTaskRisk(ctx context.Context, risk models.RiskResult) (*RiskExplanation, error) {
	prompt := fmt.Sprintf(`You are a project risk analyst.

Explain the following task risk assessment to a team lead.

Return STRICT JSON ONLY.
NO markdown.

Keys:
- summary (string, one sentence)
- reasons (array of strings)
- suggestedAction (string)

Risk assessment (JSON): %s`, jsonField(risk))

	out := &RiskExplanation{}
	if err := c.complete(ctx, prompt, 0.2, 400, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ParseTaskFromText(ctx context.Context, text string, users []models.User) (*ParsedTask, error) {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}

	prompt := fmt.Sprintf(`You are a task parser for a task management system.

Extract a task from the user's text.

Return STRICT JSON ONLY.
NO markdown.

Keys:
- title (string)
- description (string or "")
- priority (Low | Medium | High | Critical, default Medium)
- assigneeName (one of the known user names, or "")
- dueDate (RFC3339 timestamp or "null")

Known users (JSON): %s
Text (JSON): %s`, jsonField(names), jsonField(text))

	out := &ParsedTask{}
	if err := c.complete(ctx, prompt, 0.2, 400, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float64, maxTokens int, out interface{}) error {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "encode AI request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "build AI request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "AI request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Wrap(apperr.Unexpected, err, "read AI response")
	}
	if resp.StatusCode != http.StatusOK {
		return apperr.New(apperr.Unexpected, fmt.Sprintf("AI endpoint returned status %d", resp.StatusCode))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil || len(cr.Choices) == 0 {
		return apperr.New(apperr.InvalidAIResponse, "invalid AI response format")
	}

	return parseStrictJSON(cr.Choices[0].Message.Content, out)
}

// parseStrictJSON tolerates markdown fences some models emit despite
// instructions, but nothing else.
func parseStrictJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return apperr.New(apperr.InvalidAIResponse, "invalid AI response format")
	}
	return nil
}
