// Package client submits finished audio to an inference endpoint and
// archives uploads under timestamped storage paths.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ModelKind selects the downstream model a submission is routed to.
type ModelKind string

const (
	// ModelEndToEnd classifies the audio directly.
	ModelEndToEnd ModelKind = "audio_to_audio"

	// ModelASR transcribes first, then classifies the text. It has no
	// endpoint wired yet; submitting to it fails with
	// ErrModelUnavailable before any network traffic.
	ModelASR ModelKind = "asr_classification"
)

// Prediction is the parsed response of a successful submission.
type Prediction struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result"`
}

// InferenceClient posts audio to the inference endpoint as a multipart
// form. A submission is a single attempt: a failure surfaces to the
// caller instead of being retried, so the caller decides whether the
// recording is worth sending again.
type InferenceClient struct {
	url  string
	http *http.Client
}

func NewInferenceClient(url string) *InferenceClient {
	return &InferenceClient{
		url:  url,
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit routes audio to the model kind's endpoint. The audio travels
// as the binary "audio" form field with the model kind alongside it as
// "model_type".
func (c *InferenceClient) Submit(ctx context.Context, audio []byte, name string, kind ModelKind) (Prediction, error) {
	switch kind {
	case ModelEndToEnd:
	case ModelASR:
		return Prediction{}, ErrModelUnavailable
	default:
		return Prediction{}, fmt.Errorf("%w: %q", ErrInvalidModel, kind)
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("audio", name)
	if err != nil {
		return Prediction{}, fmt.Errorf("submit: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return Prediction{}, fmt.Errorf("submit: %w", err)
	}
	if err := form.WriteField("model_type", string(kind)); err != nil {
		return Prediction{}, fmt.Errorf("submit: %w", err)
	}
	if err := form.Close(); err != nil {
		return Prediction{}, fmt.Errorf("submit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return Prediction{}, fmt.Errorf("submit: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Prediction{}, fmt.Errorf("submit: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("submit: endpoint answered %s: %s", resp.Status, payload)
	}

	var pred Prediction
	if err := json.Unmarshal(payload, &pred); err != nil {
		return Prediction{}, fmt.Errorf("submit: decode response: %w", err)
	}

	return pred, nil
}
