// Package scorer rates lead quality with an LLM. The model is treated as an
// opaque oracle behind the Scorer interface; its raw output is clamped to
// the scoring rubric before anything downstream sees it.
package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/zopdev/leadscout/internal/domain"
	"github.com/zopdev/leadscout/pkg/logger"
)

// DefaultModel is used when the configuration does not name one.
const DefaultModel = string(anthropic.ModelClaudeSonnet4_5)

const systemPrompt = `You are a B2B sales intelligence analyst for Zopdev, which makes two cloud cost management products:

1. **ZopNight** - Automatically shuts down non-production cloud resources during off-hours (nights, weekends) to reduce cloud costs by up to 60%.
2. **ZopDay** - Provides real-time cloud cost monitoring, anomaly detection, and optimization recommendations during business hours.

Your job is to score LinkedIn posts/profiles for lead quality. The ideal lead is:
- A decision maker (CTO, CEO, VP Engineering, Director of Infrastructure, CFO)
- Posting about cloud cost problems, high cloud bills, FinOps challenges
- At a company that likely spends significant amounts on cloud infrastructure
- Recently active and engaged

Score each lead on these 5 dimensions:
- painPointAlignment (0-25): How closely their post mentions cloud billing/cost pain points
- decisionMakerRole (0-25): CTO/CEO/VP = 20-25, Director = 15-20, Manager = 10-15, IC = 0-10
- companyFit (0-25): Enterprise/mid-market with heavy cloud usage = high, small startup = lower
- recency (0-15): Very recent posts = higher score
- engagementSignal (0-10): Indicators of genuine pain vs just sharing articles

Also provide:
- reasoning: 1-2 sentence explanation of the score
- suggestedOutreach: A personalized outreach angle referencing their specific pain point

IMPORTANT: Return valid JSON only. No markdown, no code blocks, just the JSON array.`

// Scorer rates a batch of posts for lead quality.
type Scorer interface {
	ScoreLeads(ctx context.Context, posts []domain.LinkedInPost) ([]domain.AIScore, error)
}

// Config configures the LLM scorer.
type Config struct {
	// APIKey is the Anthropic API key. Required.
	APIKey string

	// Model overrides the model name. Defaults to DefaultModel.
	Model string

	// Logger is used for request logging. Defaults to a nop logger.
	Logger logger.Logger
}

// Client scores leads through the Anthropic messages API.
type Client struct {
	client anthropic.Client
	model  string
	logger logger.Logger
}

// New creates an LLM scorer. Fails fast when the API key is missing.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("scorer: API key is required (set scorer.api_key or ANTHROPIC_API_KEY)")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

// ScoreLeads scores the given posts in one model call and returns one score
// per post, in order.
func (c *Client) ScoreLeads(ctx context.Context, posts []domain.LinkedInPost) ([]domain.AIScore, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(posts))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scorer: model call failed: %w", err)
	}

	if len(message.Content) == 0 {
		return nil, fmt.Errorf("scorer: empty model response")
	}

	scores, err := parseScores(message.Content[0].Text)
	if err != nil {
		return nil, err
	}

	if len(scores) != len(posts) {
		c.logger.Warn("Score count mismatch",
			logger.Int("posts", len(posts)),
			logger.Int("scores", len(scores)),
		)
	}

	return scores, nil
}

func buildPrompt(posts []domain.LinkedInPost) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score the following %d LinkedIn post(s) for lead quality. Return a JSON array of scoring objects.\n\nPosts to score:\n", len(posts))

	for i, p := range posts {
		author := p.Author
		if author == "" {
			author = "Unknown"
		}
		fmt.Fprintf(&b, "\nPost %d:\n- URL: %s\n- Title: %s\n- Snippet: %s\n- Author: %s\n", i+1, p.URL, p.Title, p.Snippet, author)
	}

	fmt.Fprintf(&b, `
Return a JSON array with exactly %d objects, each having:
{
  "overall": <number 0-100>,
  "breakdown": {
    "painPointAlignment": <number 0-25>,
    "decisionMakerRole": <number 0-25>,
    "companyFit": <number 0-25>,
    "recency": <number 0-15>,
    "engagementSignal": <number 0-10>
  },
  "reasoning": "<string>",
  "suggestedOutreach": "<string>"
}`, len(posts))

	return b.String()
}

// parseScores decodes the model output, tolerating a single object or a
// wrapper object instead of the requested array, and clamps every dimension
// to its rubric budget.
func parseScores(content string) ([]domain.AIScore, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw []domain.AIScore
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		var wrapper struct {
			Scores  []domain.AIScore `json:"scores"`
			Results []domain.AIScore `json:"results"`
		}
		if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
			return nil, fmt.Errorf("scorer: decode model response: %w", err)
		}
		raw = wrapper.Scores
		if len(raw) == 0 {
			raw = wrapper.Results
		}
		if len(raw) == 0 {
			var single domain.AIScore
			if err := json.Unmarshal([]byte(content), &single); err != nil {
				return nil, fmt.Errorf("scorer: decode model response: %w", err)
			}
			raw = []domain.AIScore{single}
		}
	}

	scores := make([]domain.AIScore, len(raw))
	for i, s := range raw {
		scores[i] = Clamp(s)
	}
	return scores, nil
}

// Clamp forces every scoring dimension into its rubric budget and fills in
// fallback text for missing fields.
func Clamp(s domain.AIScore) domain.AIScore {
	s.Overall = clampInt(s.Overall, 0, 100)
	s.Breakdown.PainPointAlignment = clampInt(s.Breakdown.PainPointAlignment, 0, 25)
	s.Breakdown.DecisionMakerRole = clampInt(s.Breakdown.DecisionMakerRole, 0, 25)
	s.Breakdown.CompanyFit = clampInt(s.Breakdown.CompanyFit, 0, 25)
	s.Breakdown.Recency = clampInt(s.Breakdown.Recency, 0, 15)
	s.Breakdown.EngagementSignal = clampInt(s.Breakdown.EngagementSignal, 0, 10)
	if s.Reasoning == "" {
		s.Reasoning = "No reasoning provided"
	}
	if s.SuggestedOutreach == "" {
		s.SuggestedOutreach = "No outreach suggestion available"
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
