// Package ai adapts the generative-AI service for clinical assistance:
// image analysis, document summarization, disease prediction and report
// drafting. Every call passes a client-side rolling-window rate limiter
// and both prompt context and generated output are sanitized.
package ai

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/divyaanshikaushik/Sahayak/internal/platform/errs"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client calls the generateContent API of the hosted model.
type Client struct {
	http    *resty.Client
	apiKey  string
	model   string
	limiter *Limiter
	log     zerolog.Logger
}

func NewClient(apiKey, model string, limiter *Limiter, log zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(defaultBaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		model:   model,
		limiter: limiter,
		log:     log,
	}
}

// Enabled reports whether the API credential is configured.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func textPart(text string) part {
	return part{Text: text}
}

func imagePart(mimeType string, data []byte) part {
	return part{InlineData: &inlineData{
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}}
}

// generate runs one generateContent call through the credential check and
// the rate limiter, and normalizes the response to sanitized text.
func (c *Client) generate(ctx context.Context, op string, parts []part) (string, error) {
	if !c.Enabled() {
		return "", errs.E(errs.KindConfiguration, op, "AI API key is not configured")
	}
	if !c.limiter.Allow() {
		return "", errs.E(errs.KindRateLimit, op, "too many AI requests, please wait a moment")
	}

	var out generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{Contents: []content{{Parts: parts}}}).
		SetResult(&out).
		SetError(&out).
		Post("/v1beta/models/" + c.model + ":generateContent")
	if err != nil {
		return "", errs.Wrap(errs.KindUpstreamAI, op, err)
	}
	if resp.IsError() {
		msg := "model request failed"
		if out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		return "", errs.Errorf(errs.KindUpstreamAI, op, "%s (status %d)", msg, resp.StatusCode())
	}

	text := ""
	if len(out.Candidates) > 0 && len(out.Candidates[0].Content.Parts) > 0 {
		text = out.Candidates[0].Content.Parts[0].Text
	}
	text = Sanitize(text)
	if text == "" {
		return "", errs.E(errs.KindUpstreamAI, op, "no analysis generated")
	}

	c.log.Debug().Str("op", op).Int("remaining", c.limiter.Remaining()).Msg("AI call completed")
	return text, nil
}
