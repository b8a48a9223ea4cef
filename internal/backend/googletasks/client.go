// Package googletasks implements remote.Remote using the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"checklist/internal/config"
	"checklist/internal/remote"
)

const (
	// PageSize is the number of items requested per page.
	PageSize = 100

	// APITimeout is the timeout for each API call.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"
)

// Client implements remote.Remote using Google Tasks API.
type Client struct {
	svc     *tasks.Service
	timeout time.Duration
}

// LoadOAuthConfig reads the OAuth client credentials from the config dir.
func LoadOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored OAuth token.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken writes an OAuth token with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := LoadOAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	// Token source refreshes automatically
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client and options (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, timeout: APITimeout}, nil
}

// EnsureList finds a list by title (case-insensitive, trimmed) or creates it.
func (c *Client) EnsureList(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	want := strings.ToLower(strings.TrimSpace(title))

	var matches []string
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == want {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: strings.TrimSpace(title)}).Context(ctx).Do()
		if err != nil {
			return "", wrapError(err)
		}
		return created.Id, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous list name: %s", title)
	}
}

// ClearTasks deletes every task in the list, including completed and hidden ones.
// Listing and each delete get their own timeout so long lists can be cleared.
func (c *Client) ClearTasks(ctx context.Context, listID string) error {
	ids, err := c.taskIDs(ctx, listID)
	if err != nil {
		return wrapError(err)
	}

	for _, id := range ids {
		if err := c.deleteTask(ctx, listID, id); err != nil {
			return wrapError(err)
		}
	}
	return nil
}

func (c *Client) taskIDs(ctx context.Context, listID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var ids []string
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				ids = append(ids, t.Id)
			}
			return nil
		})
	return ids, err
}

func (c *Client) deleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do()
}

// InsertTask creates a task at the top of the list.
func (c *Client) InsertTask(ctx context.Context, listID, title string, completed bool) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	status := statusNeedsAction
	if completed {
		status = statusCompleted
	}
	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title, Status: status}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	// Check for timeout
	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	// Check for auth errors
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: checklist login)")
	}

	// Check for not found
	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}

var _ remote.Remote = (*Client)(nil)
