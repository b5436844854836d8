package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"stickyboard/internal/note/model"
	"stickyboard/middleware"
	"stickyboard/socket"

	"github.com/gorilla/websocket"
)

// Client mirrors the note route handlers one function per endpoint. It does
// no retries, no caching and applies no timeout of its own; pass a context
// if you need one.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string // session token, sent as the session cookie
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: http.DefaultClient,
		Token:      token,
	}
}

func (c *Client) FetchNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes, "Failed to fetch notes"); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, req model.CreateNoteRequest) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", req, &note, "Failed to create note"); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, updates model.UpdateNoteRequest) (*model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPatch, "/api/notes/"+id, updates, &note, "Failed to update note"); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil, "Failed to delete note")
}

// Subscribe opens the change feed for the notes table and delivers events
// until the connection drops or the context ends. The returned channel is
// closed on either.
func (c *Client) Subscribe(ctx context.Context) (<-chan socket.Event, error) {
	wsURL := "ws" + strings.TrimPrefix(c.BaseURL, "http") + "/ws?table=" + socket.TableNotes

	header := http.Header{}
	if c.Token != "" {
		header.Set("Cookie", middleware.SessionCookie+"="+c.Token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, err
	}

	events := make(chan socket.Event)
	done := make(chan struct{})

	go func() {
		defer close(events)
		defer close(done)
		for {
			var ev socket.Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
			conn.Close()
		}
	}()

	return events, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, fallback string) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: c.Token})
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = fallback
		}
		return errors.New(e.Error)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
