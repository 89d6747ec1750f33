package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "http://localhost:8080"

// Client talks to the listy API server. Every operation issues exactly
// one HTTP request; there is no retry or backoff.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given API origin. An empty origin
// falls back to the local development server.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: NormalizeBaseURL(baseURL),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NormalizeBaseURL ensures the origin carries a scheme and no trailing
// slash. Origins without a scheme default to https.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return strings.TrimRight(raw, "/")
}

// BaseURL returns the normalized API origin
func (c *Client) BaseURL() string { return c.baseURL }

// Todos fetches every todo
func (c *Client) Todos(ctx context.Context) ([]Todo, error) {
	return c.fetchTodos(ctx, "/api/todos", "fetch todos")
}

// PendingTodos fetches todos that are not done
func (c *Client) PendingTodos(ctx context.Context) ([]Todo, error) {
	return c.fetchTodos(ctx, "/api/todos/pending", "fetch pending todos")
}

// CompletedTodos fetches todos that are done
func (c *Client) CompletedTodos(ctx context.Context) ([]Todo, error) {
	return c.fetchTodos(ctx, "/api/todos/completed", "fetch completed todos")
}

// TodosByList fetches the todos belonging to a named list
func (c *Client) TodosByList(ctx context.Context, listID string) ([]Todo, error) {
	return c.fetchTodos(ctx, "/api/todos/list/"+listID, "fetch list "+listID)
}

// Lists fetches the identifiers of all known lists
func (c *Client) Lists(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/lists", nil, "fetch lists")
	if err != nil {
		return nil, err
	}
	var lists []string
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, &RequestError{Op: "fetch lists", Message: "unexpected response payload", Err: err}
	}
	return lists, nil
}

// Create adds a new todo. A nil listID puts it in the main collection.
func (c *Client) Create(ctx context.Context, item string, listID *string) (*Todo, error) {
	if strings.TrimSpace(item) == "" {
		return nil, &ValidationError{Message: "todo text cannot be empty"}
	}
	body := CreateTodoRequest{Item: item, ListID: listID}
	data, err := c.do(ctx, http.MethodPost, "/api/todos", body, "create todo")
	if err != nil {
		return nil, err
	}
	return decodeTodo(data, "create todo")
}

// Update changes a todo's text and/or done flag
func (c *Client) Update(ctx context.Context, id int, req UpdateTodoRequest) (*Todo, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/todos/"+strconv.Itoa(id), req, "update todo")
	if err != nil {
		return nil, err
	}
	return decodeTodo(data, "update todo")
}

// Delete removes a todo
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/todos/"+strconv.Itoa(id), nil, "delete todo")
	return err
}

// Toggle flips a todo's done flag server-side
func (c *Client) Toggle(ctx context.Context, id int) (*Todo, error) {
	data, err := c.do(ctx, http.MethodPatch, "/api/todos/"+strconv.Itoa(id)+"/toggle", nil, "toggle todo")
	if err != nil {
		return nil, err
	}
	return decodeTodo(data, "toggle todo")
}

// Health checks that the API server is reachable and responding
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil, "health check")
	return err
}

// GenerateBreakdown asks the server to expand a goal into task drafts.
// A successful call may legitimately return zero drafts.
func (c *Client) GenerateBreakdown(ctx context.Context, goal string) ([]TaskDraft, error) {
	return c.generate(ctx, "/api/todos/ai/breakdown", map[string]string{"goal": goal})
}

// GenerateSubtasks asks the server to break a single task into subtasks.
// An empty result means the task was judged atomic, not that the call failed.
func (c *Client) GenerateSubtasks(ctx context.Context, task string) ([]TaskDraft, error) {
	return c.generate(ctx, "/api/todos/ai/subtasks", map[string]string{"task": task})
}

// CreateGenerated materializes accepted drafts into real todos. A nil
// listID puts them in the main collection.
func (c *Client) CreateGenerated(ctx context.Context, drafts []TaskDraft, listID *string) ([]Todo, error) {
	body := CreateTasksRequest{Tasks: drafts, ListID: listID}
	data, err := c.do(ctx, http.MethodPost, "/api/todos/ai/create", body, "create generated tasks")
	if err != nil {
		return nil, err
	}
	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, &RequestError{Op: "create generated tasks", Message: "unexpected response payload", Err: err}
	}
	return todos, nil
}

func (c *Client) fetchTodos(ctx context.Context, path, op string) ([]Todo, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, op)
	if err != nil {
		return nil, err
	}
	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, &RequestError{Op: op, Message: "unexpected response payload", Err: err}
	}
	return todos, nil
}

func (c *Client) generate(ctx context.Context, path string, body interface{}) ([]TaskDraft, error) {
	resp, err := c.request(ctx, http.MethodPost, path, body, "generate tasks")
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GenerationError{Message: "failed to read generation response", Err: err}
	}

	var parsed breakdownResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &GenerationError{Message: "failed to parse generation response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error
		if msg == "" {
			msg = parsed.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("generation failed (status %d)", resp.StatusCode)
		}
		return nil, &GenerationError{Message: msg}
	}

	// success:false on a 2xx is still a failure. Without this check a
	// reported failure would be indistinguishable from a legitimately
	// empty suggestion set.
	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = parsed.Message
		}
		if msg == "" {
			msg = "generation failed"
		}
		return nil, &GenerationError{Message: msg}
	}

	return parsed.SuggestedTasks, nil
}

// do issues a request and returns the envelope's data payload, mapping
// failures to the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, op string) (json.RawMessage, error) {
	resp, err := c.request(ctx, method, path, body, op)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Message: "failed to read response", Err: err}
	}

	var env envelope
	// A body that does not parse as the envelope is only fatal on a
	// successful status; error statuses fall through to status mapping.
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.message()
		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, &NotFoundError{Op: op, Message: msg}
		case http.StatusBadRequest:
			if msg == "" {
				msg = "invalid request"
			}
			return nil, &ValidationError{Message: msg}
		default:
			return nil, &RequestError{Op: op, Status: resp.StatusCode, Message: msg}
		}
	}

	if parseErr != nil {
		return nil, &RequestError{Op: op, Message: "unexpected response payload", Err: parseErr}
	}
	if !env.Success {
		return nil, &ApplicationError{Op: op, Message: env.message()}
	}
	return env.Data, nil
}

func (c *Client) request(ctx context.Context, method, path string, body interface{}, op string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Op: op, Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &RequestError{Op: op, Message: "failed to build request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &RequestError{Op: op, Message: "failed to reach API server", Err: err}
	}
	return resp, nil
}

func decodeTodo(data json.RawMessage, op string) (*Todo, error) {
	var todo Todo
	if err := json.Unmarshal(data, &todo); err != nil {
		return nil, &RequestError{Op: op, Message: "unexpected response payload", Err: err}
	}
	return &todo, nil
}
