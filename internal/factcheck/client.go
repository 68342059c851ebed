package factcheck

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/clipverity/internal/answer"
	"github.com/ppiankov/clipverity/internal/model"
)

// Checker fact-checks a single claim
type Checker interface {
	Check(ctx context.Context, claim string) (*model.FactCheckRecord, error)
}

// Limiter gates outbound calls per upstream
type Limiter interface {
	Wait(ctx context.Context, key string) error
}

// BuildPrompt embeds the claim in the fixed fact-check template
func BuildPrompt(claim string) string {
	return fmt.Sprintf(`Please fact-check this claim and provide your response in this exact format:

%s [A very short title for the claim]
%s [A description of the claim like a news sub-headline without fluff]
%s [A number from 1-5 where 1=Untrue, 2=Mostly Untrue, 3=Mix of Truth, 4=Mostly True, 5=True]
%s [Your detailed analysis explaining why the claim is true or untrue]

Claim to fact-check: %s`, markerTitle, markerDescription, markerScore, markerAnalysis, claim)
}

// Client fact-checks claims against an answer provider.
// It never retries; retry policy belongs to the caller.
type Client struct {
	provider answer.Provider
	limiter  Limiter
}

// NewClient creates a fact-check client. limiter may be nil.
func NewClient(provider answer.Provider, limiter Limiter) *Client {
	return &Client{provider: provider, limiter: limiter}
}

// Check queries the provider and parses its answer into a record
func (c *Client) Check(ctx context.Context, claim string) (*model.FactCheckRecord, error) {
	record, _, err := c.CheckRaw(ctx, claim)
	return record, err
}

// CheckRaw is Check that also returns the provider's raw answer
func (c *Client) CheckRaw(ctx context.Context, claim string) (*model.FactCheckRecord, *model.AnswerResponse, error) {
	name := c.provider.Name()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, name); err != nil {
			return nil, nil, &UnavailableError{Provider: name, Err: err}
		}
	}

	resp, err := c.provider.Answer(ctx, BuildPrompt(claim))
	if err != nil {
		return nil, nil, classify(name, err)
	}

	record, err := Parse(resp.Answer, claim)
	if err != nil {
		return nil, resp, &ResponseFormatError{Provider: name, Err: err}
	}

	record.Sources = resp.Citations
	if record.Sources == nil {
		record.Sources = []model.Citation{}
	}

	return record, resp, nil
}

// classify maps provider errors onto the fact-check error taxonomy
func classify(provider string, err error) error {
	var statusErr *answer.StatusError
	if errors.As(err, &statusErr) {
		return &UpstreamError{Provider: provider, Status: statusErr.StatusCode, Body: statusErr.Body}
	}
	if errors.Is(err, answer.ErrMalformedResponse) {
		return &ResponseFormatError{Provider: provider, Err: err}
	}
	return &UnavailableError{Provider: provider, Err: err}
}
