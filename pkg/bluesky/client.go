package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "nostrsky/internal/errors"
)

const defaultPDS = "https://bsky.social"

// Client is a minimal AT Protocol client covering the three XRPC calls the
// cross-poster needs: session creation, blob upload and post creation.
type Client struct {
	pds        string
	httpClient *http.Client

	// populated after Login
	accessJwt string
	did       string
}

// NewClient creates a Bluesky client. If pds is empty it defaults to
// https://bsky.social.
func NewClient(pds string, timeout time.Duration) *Client {
	if pds == "" {
		pds = defaultPDS
	}
	return &Client{
		pds:        pds,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Login authenticates with the PDS and stores the session token. Use an App
// Password, not the account password.
func (c *Client) Login(ctx context.Context, identifier, appPassword string) error {
	body := map[string]string{
		"identifier": identifier,
		"password":   appPassword,
	}

	var resp createSessionResponse
	if err := c.post(ctx, "/xrpc/com.atproto.server.createSession", body, &resp); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	c.accessJwt = resp.AccessJwt
	c.did = resp.DID
	return nil
}

// DID returns the authenticated user's DID. Only valid after Login.
func (c *Client) DID() string {
	return c.did
}

// BlobRef is an AT Protocol blob reference returned by uploadBlob and
// embedded verbatim into the post record.
type BlobRef struct {
	Type string `json:"$type"`
	Ref  struct {
		Link string `json:"$link"`
	} `json:"ref"`
	MimeType string `json:"mimeType"`
	Size     int    `json:"size"`
}

// ImageEmbed is one attached image inside an app.bsky.embed.images embed.
type ImageEmbed struct {
	Alt   string   `json:"alt"`
	Image *BlobRef `json:"image"`
}

// UploadBlob uploads raw image bytes and returns the blob reference. The
// PDS garbage-collects blobs not referenced by a record within a window, so
// the post must follow promptly.
func (c *Client) UploadBlob(ctx context.Context, data []byte, mimeType string) (*BlobRef, error) {
	if c.accessJwt == "" {
		return nil, fmt.Errorf("not authenticated: call Login first")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pds+"/xrpc/com.atproto.repo.uploadBlob", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewBlueskyAPIError("/xrpc/com.atproto.repo.uploadBlob", resp.StatusCode, fmt.Errorf("%s", respBody))
	}

	var result uploadBlobResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result.Blob, nil
}

// PublishPost creates an app.bsky.feed.post record with the given text and
// optional image gallery.
func (c *Client) PublishPost(ctx context.Context, text string, images []ImageEmbed) error {
	if c.accessJwt == "" {
		return fmt.Errorf("not authenticated: call Login first")
	}

	record := postRecord{
		Type:      "app.bsky.feed.post",
		Text:      text,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if len(images) > 0 {
		record.Embed = &imagesEmbed{
			Type:   "app.bsky.embed.images",
			Images: images,
		}
	}

	body := createRecordRequest{
		Repo:       c.did,
		Collection: "app.bsky.feed.post",
		Record:     record,
	}

	var resp json.RawMessage
	if err := c.post(ctx, "/xrpc/com.atproto.repo.createRecord", body, &resp); err != nil {
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pds+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessJwt)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewBlueskyAPIError(path, resp.StatusCode, fmt.Errorf("%s", respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

type createSessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
}

type postRecord struct {
	Type      string       `json:"$type"`
	Text      string       `json:"text"`
	CreatedAt string       `json:"createdAt"`
	Embed     *imagesEmbed `json:"embed,omitempty"`
}

type imagesEmbed struct {
	Type   string       `json:"$type"`
	Images []ImageEmbed `json:"images"`
}

type createRecordRequest struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Record     any    `json:"record"`
}

type uploadBlobResponse struct {
	Blob BlobRef `json:"blob"`
}
