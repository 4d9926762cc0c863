// Package sender is the HTTP collaborator that carries a finished frame
// buffer to the panel firmware: status polling, frame upload, and local
// network discovery. It never touches pixel data.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/AnyUserName/inkframe-cli/internal/device"
	"github.com/AnyUserName/inkframe-cli/internal/frame"
)

// DefaultTimeout bounds one upload. Panel refreshes are slow; the
// firmware answers only after the frame is accepted.
const DefaultTimeout = 30 * time.Second

const userAgent = "inkframe/1.0"

// Status is the firmware's status document.
type Status struct {
	Service           string `json:"service"`
	State             string `json:"status"`
	Uptime            string `json:"uptime_formatted"`
	HardwareAvailable bool   `json:"hardware_available"`
	// FrameSize is the buffer length the firmware expects, in bytes.
	// Zero when the firmware predates the field.
	FrameSize int `json:"frame_size"`
}

// UploadResult is the firmware's response to a frame upload.
type UploadResult struct {
	Message     string `json:"message"`
	FrameNumber int    `json:"frame_number"`
	Error       string `json:"error"`
}

// Client talks to one device.
type Client struct {
	baseURL string
	prof    device.Profile
	http    *http.Client
	log     *slog.Logger
}

// New builds a client for the device at host (IP or hostname), using the
// profile's port and paths.
func New(host string, prof device.Profile, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, prof.Port),
		prof:    prof,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BaseURL returns the device base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Status fetches the device status document.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+c.prof.StatusPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %s: HTTP %d", c.baseURL, resp.StatusCode)
	}

	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("status %s: parse response: %w", c.baseURL, err)
	}
	return &st, nil
}

// CheckFrameSize compares a local buffer length against the size the
// firmware reported. A disagreement is the encoder's own size invariant
// failing, not a transport error.
func CheckFrameSize(st *Status, n int) error {
	if st.FrameSize > 0 && st.FrameSize != n {
		return fmt.Errorf("%w: device expects %d bytes, encoded %d",
			frame.ErrSizeMismatch, st.FrameSize, n)
	}
	return nil
}

// SendFrame uploads a packed frame buffer. By default the buffer goes as
// a raw octet-stream body; useMultipart switches to a multipart file
// field named "frame" for firmwares that parse form uploads.
func (c *Client) SendFrame(ctx context.Context, buf []byte, useMultipart bool) (*UploadResult, error) {
	var body io.Reader
	contentType := "application/octet-stream"

	if useMultipart {
		var mb bytes.Buffer
		w := multipart.NewWriter(&mb)
		part, err := w.CreateFormFile("frame", "frame.bin")
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(buf); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		body = &mb
		contentType = w.FormDataContentType()
	} else {
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.prof.FramePath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug("uploading frame", "url", c.baseURL+c.prof.FramePath,
		"bytes", len(buf), "multipart", useMultipart)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("upload %s: parse response: %w", c.baseURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := result.Error
		if msg == "" {
			msg = result.Message
		}
		return nil, fmt.Errorf("upload %s: HTTP %d: %s", c.baseURL, resp.StatusCode, msg)
	}

	c.log.Debug("frame accepted", "frame", result.FrameNumber,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return &result, nil
}
