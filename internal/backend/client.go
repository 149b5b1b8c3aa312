package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/pitchreel/pitchreel/internal/deck"
	"github.com/pitchreel/pitchreel/internal/errdefs"
	"github.com/pitchreel/pitchreel/internal/log"
	"github.com/pitchreel/pitchreel/internal/upload"
)

// Service describes the three pipeline stages the wizard drives. The
// workflow runner depends on this interface, not on the concrete client.
type Service interface {
	Enhance(ctx context.Context, text string, att *upload.Attachment) (string, error)
	GeneratePPTX(ctx context.Context, text string, template deck.TemplateID) (string, error)
	ConvertVideo(ctx context.Context, pptxPath string) (string, error)
}

// Client talks to the generation backend over its three POST endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	fsys       afero.Fs
}

var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithFs overrides the filesystem attachments are read from.
func WithFs(fsys afero.Fs) Option {
	return func(c *Client) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a backend client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("backend base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		fsys:       afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type enhanceResponse struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Text     string `json:"text"`
	Template string `json:"template"`
}

type generateResponse struct {
	PPTXPath string `json:"pptx_path"`
}

type convertRequest struct {
	PPTXPath string `json:"pptx_path"`
}

type convertResponse struct {
	VideoURL string `json:"video_url"`
}

// Enhance submits the editor text, plus the optional CSV attachment, as a
// multipart form and returns the enhanced text.
func (c *Client) Enhance(ctx context.Context, text string, att *upload.Attachment) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errdefs.Validationf("no text to enhance")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("text", text); err != nil {
		return "", errdefs.Unexpected("could not build the enhancement request")
	}
	if att != nil {
		part, err := writer.CreateFormFile("csv_file", att.Name)
		if err != nil {
			return "", errdefs.Unexpected("could not attach the CSV file")
		}
		f, err := c.fsys.Open(att.Path)
		if err != nil {
			log.Errorf("open attachment %s: %v", att.Path, err)
			return "", errdefs.Validationf("cannot read %s: %v", att.Path, err)
		}
		_, copyErr := io.Copy(part, f)
		f.Close()
		if copyErr != nil {
			log.Errorf("stream attachment %s: %v", att.Path, copyErr)
			return "", errdefs.Unexpected("could not attach the CSV file")
		}
	}
	if err := writer.Close(); err != nil {
		return "", errdefs.Unexpected("could not build the enhancement request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/enhance", &body)
	if err != nil {
		return "", errdefs.Unexpected("could not build the enhancement request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out enhanceResponse
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.Text == "" {
		return "", errdefs.Unexpected("the enhancement service returned an empty result")
	}
	return out.Text, nil
}

// GeneratePPTX asks the backend to build a deck from the enhanced text and
// returns the opaque deck reference.
func (c *Client) GeneratePPTX(ctx context.Context, text string, template deck.TemplateID) (string, error) {
	var out generateResponse
	err := c.postJSON(ctx, "/generate-pptx", generateRequest{Text: text, Template: string(template)}, &out)
	if err != nil {
		return "", err
	}
	if out.PPTXPath == "" {
		return "", errdefs.Unexpected("the build service returned no deck reference")
	}
	return out.PPTXPath, nil
}

// ConvertVideo turns a built deck into a video and returns its URL.
func (c *Client) ConvertVideo(ctx context.Context, pptxPath string) (string, error) {
	var out convertResponse
	err := c.postJSON(ctx, "/convert-video", convertRequest{PPTXPath: pptxPath}, &out)
	if err != nil {
		return "", err
	}
	if out.VideoURL == "" {
		return "", errdefs.Unexpected("the conversion service returned no video reference")
	}
	return out.VideoURL, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return errdefs.Unexpected("could not encode the request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return errdefs.Unexpected("could not build the request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("%s %s: %v", req.Method, req.URL.Path, err)
		return errdefs.Unexpected("could not reach the generation service")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("%s %s: malformed response: %v", req.Method, req.URL.Path, err)
		return errdefs.Unexpected("the generation service returned a malformed response")
	}
	return nil
}

// errorFromResponse extracts a user-facing message from a failed stage call.
// JSON bodies carry the message in an "error" field; anything else is read
// as plain text.
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
			return errdefs.Remote(payload.Error)
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && mediaType != "application/json" {
		return errdefs.Remote(text)
	}
	return errdefs.Unexpected(fmt.Sprintf("request failed (status %d)", resp.StatusCode))
}
