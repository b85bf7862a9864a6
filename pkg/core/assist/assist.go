// Package assist provides candidate classifiers the engine consults as
// extra votes: an OpenAI-backed analyzer with structured output and a
// local release-name parser. Both are optional; the rule engine produces
// a complete record without them.
package assist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	log "github.com/sirupsen/logrus"

	"github.com/angelospk/mediasort/pkg/core/classify"
	"github.com/angelospk/mediasort/pkg/core/resolve"
	"github.com/angelospk/mediasort/pkg/core/tokenize"
)

// Analysis is the structured response requested from the model. Fields
// the model cannot determine stay at their zero value.
type Analysis struct {
	Kind         string   `json:"kind" jsonschema_description:"One of: movie, tv_episode, music, software, ebook, audiobook, unknown"`
	Title        string   `json:"title"`
	Year         int      `json:"year"`
	Show         string   `json:"show"`
	Season       int      `json:"season"`
	Episode      int      `json:"episode"`
	EpisodeTitle string   `json:"episode_title"`
	Authors      []string `json:"authors"`
	SeriesName   string   `json:"series_name"`
	SeriesNumber int      `json:"series_number"`
	Franchise    string   `json:"franchise"`
	ExtraType    string   `json:"extra_type"`
}

// GenerateSchema builds a structured-output JSON schema for T.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var analysisSchema = GenerateSchema[Analysis]()

const systemPrompt = `You analyze media library file paths. Given a file path and its
title words, identify the content and fill the JSON response. Use empty
strings and zeros for anything you cannot determine. For bonus content
(behind the scenes, interviews, deleted scenes) set extra_type and name
the parent work in title. For books report authors and any series name
and number.`

// Client proposes classifications via the OpenAI chat completions API
// with a strict structured-output schema.
type Client struct {
	client openai.Client
	model  openai.ChatModel
	logger *log.Logger
}

// NewClient builds an OpenAI-backed candidate classifier. An empty model
// falls back to GPT-4o mini.
func NewClient(apiKey, model string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.StandardLogger()
	}
	chatModel := openai.ChatModelGPT4oMini
	if model != "" {
		chatModel = openai.ChatModel(model)
	}
	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  chatModel,
		logger: logger,
	}
}

// Propose implements classify.CandidateClassifier. Any transport or
// decoding failure is returned as an error for the engine to log and
// ignore; the model's answer is only ever a vote.
func (c *Client) Propose(ctx context.Context, path string, titleWords []tokenize.Token) (*classify.Candidate, error) {
	words := resolve.JoinWords(tokenize.Words(titleWords))

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "media_analysis",
		Description: openai.String("Structured analysis of a media file path"),
		Schema:      analysisSchema,
		Strict:      openai.Bool(true),
	}

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Path: %s\nTitle words: %s", path, words)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Model: c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, nil
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(response.Choices[0].Message.Content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}
	return candidateFrom(analysis), nil
}

func candidateFrom(a Analysis) *classify.Candidate {
	candidate := &classify.Candidate{
		Title:        a.Title,
		Year:         a.Year,
		Show:         a.Show,
		Season:       a.Season,
		Episode:      a.Episode,
		EpisodeTitle: a.EpisodeTitle,
		Authors:      a.Authors,
		Series:       a.SeriesName,
		SeriesIndex:  a.SeriesNumber,
		Franchise:    a.Franchise,
		ExtraType:    a.ExtraType,
	}
	switch a.Kind {
	case "movie":
		candidate.Kind = classify.Movie
	case "tv_episode":
		candidate.Kind = classify.TVEpisode
	case "music":
		candidate.Kind = classify.MusicTrack
	case "software":
		candidate.Kind = classify.Software
	case "ebook":
		candidate.Kind = classify.Ebook
	case "audiobook":
		candidate.Kind = classify.Audiobook
	}
	return candidate
}
