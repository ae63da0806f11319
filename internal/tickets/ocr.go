package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OCRClient sends page images to an OCR.space compatible HTTP API.
type OCRClient struct {
	url    string
	apiKey string
	http   *http.Client
}

func NewOCRClient(url, apiKey string, timeout time.Duration) *OCRClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OCRClient{url: url, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

type ocrResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// Text uploads the image at path and returns the recognised text of all its results.
func (c *OCRClient) Text(ctx context.Context, path string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("OCR_API_KEY is not set")
	}
	body, contentType, err := multipartFile(path)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ocr status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ocr response: %w", err)
	}
	if out.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr failed: %s", string(out.ErrorMessage))
	}
	var sb strings.Builder
	for _, r := range out.ParsedResults {
		sb.WriteString(r.ParsedText)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func multipartFile(path string) (*bytes.Buffer, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	_ = w.WriteField("language", "eng")
	_ = w.WriteField("scale", "true")
	_ = w.WriteField("OCREngine", "2")
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
