package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/vitalink-health/vitalink/pkg/domain"
)

// Client is the Vitalink portal API client. It talks to the external
// backend services (auth, records, predictor, assistant, diary) behind a
// single base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client. token may be empty for anonymous use;
// call SetToken after a successful login.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token attached to authenticated requests.
// An empty token reverts the client to anonymous.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// --- Auth ---

// AuthResponse is the payload returned by login and signup.
type AuthResponse struct {
	User    domain.User    `json:"user"`
	Session domain.Session `json:"session"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login authenticates with email and password. The payload deliberately
// carries no role field; role is a client-side concept.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, password, fullName string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/auth/signup", signupRequest{Email: email, Password: password, FullName: fullName}, &resp); err != nil {
		return nil, fmt.Errorf("client.Signup: %w", err)
	}
	return &resp, nil
}

// Logout invalidates the session server-side. Best-effort: callers are
// expected to clear local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// GetProfile returns the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/auth/profile", &u); err != nil {
		return nil, fmt.Errorf("client.GetProfile: %w", err)
	}
	return &u, nil
}

// UpdateProfileRequest carries the editable profile fields. Empty fields
// are omitted and left unchanged server-side.
type UpdateProfileRequest struct {
	FullName    string `json:"full_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// UpdateProfile patches the authenticated user's profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	var u domain.User
	if err := c.doRequest(ctx, http.MethodPut, "/auth/profile", req, &u); err != nil {
		return nil, fmt.Errorf("client.UpdateProfile: %w", err)
	}
	return &u, nil
}

// --- Medical records ---

// ListDocuments returns the caller's stored medical documents.
func (c *Client) ListDocuments(ctx context.Context) ([]domain.MedicalDocument, error) {
	var docs []domain.MedicalDocument
	if err := c.get(ctx, "/documents", &docs); err != nil {
		return nil, fmt.Errorf("client.ListDocuments: %w", err)
	}
	return docs, nil
}

// UploadDocument streams a file to the records service as multipart form
// data under the "file" field.
func (c *Client) UploadDocument(ctx context.Context, name string, r io.Reader) (*domain.MedicalDocument, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("client.UploadDocument: create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("client.UploadDocument: read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("client.UploadDocument: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents", &buf)
	if err != nil {
		return nil, fmt.Errorf("client.UploadDocument: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	var doc domain.MedicalDocument
	if err := c.send(req, &doc); err != nil {
		return nil, fmt.Errorf("client.UploadDocument: %w", err)
	}
	return &doc, nil
}

// DeleteDocument removes a stored document by ID.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteDocument: %w", err)
	}
	return nil
}

// --- Disease predictor ---

// ListSymptoms returns the symptoms the predictor model understands.
func (c *Client) ListSymptoms(ctx context.Context) ([]domain.Symptom, error) {
	var symptoms []domain.Symptom
	if err := c.get(ctx, "/predictor/symptoms", &symptoms); err != nil {
		return nil, fmt.Errorf("client.ListSymptoms: %w", err)
	}
	return symptoms, nil
}

// Predict runs the disease predictor for the given symptom IDs.
func (c *Client) Predict(ctx context.Context, symptoms []string) (*domain.Prediction, error) {
	var pred domain.Prediction
	if err := c.post(ctx, "/predictor/predict", map[string][]string{"symptoms": symptoms}, &pred); err != nil {
		return nil, fmt.Errorf("client.Predict: %w", err)
	}
	return &pred, nil
}

// --- Assistant ---

type chatRequest struct {
	Message string               `json:"message"`
	History []domain.ChatMessage `json:"history,omitempty"`
}

// SendChat sends one user message (with prior turns for context) to the
// assistant service and returns its reply.
func (c *Client) SendChat(ctx context.Context, message string, history []domain.ChatMessage) (*domain.ChatMessage, error) {
	var reply domain.ChatMessage
	if err := c.post(ctx, "/assistant/chat", chatRequest{Message: message, History: history}, &reply); err != nil {
		return nil, fmt.Errorf("client.SendChat: %w", err)
	}
	return &reply, nil
}

// --- Health diary ---

// CreateDiaryEntryRequest is the payload for a new diary entry.
type CreateDiaryEntryRequest struct {
	Mood      string  `json:"mood,omitempty"`
	Note      string  `json:"note,omitempty"`
	WeightKg  float64 `json:"weight_kg,omitempty"`
	HeartRate int     `json:"heart_rate,omitempty"`
}

// ListDiaryEntries returns the caller's diary entries, newest first.
func (c *Client) ListDiaryEntries(ctx context.Context) ([]domain.DiaryEntry, error) {
	var entries []domain.DiaryEntry
	if err := c.get(ctx, "/diary/entries", &entries); err != nil {
		return nil, fmt.Errorf("client.ListDiaryEntries: %w", err)
	}
	return entries, nil
}

// CreateDiaryEntry records a new diary entry.
func (c *Client) CreateDiaryEntry(ctx context.Context, req CreateDiaryEntryRequest) (*domain.DiaryEntry, error) {
	var entry domain.DiaryEntry
	if err := c.post(ctx, "/diary/entries", req, &entry); err != nil {
		return nil, fmt.Errorf("client.CreateDiaryEntry: %w", err)
	}
	return &entry, nil
}

// --- Transport core ---

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.bearer(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: "request failed: " + http.StatusText(resp.StatusCode)}
		}
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    extractMessage(respBody, http.StatusText(resp.StatusCode)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
