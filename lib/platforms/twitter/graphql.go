package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// runOperation executes one named operation against the API, trying each
// candidate query id in order. A "not found" response marks that candidate
// as stale and advances to the next one, any other failure is surfaced
// immediately. Exhausting every candidate on stale ids escalates to one
// global registry refresh followed by exactly one more full pass.
func (c *Client) runOperation(ctx context.Context, name string, variables any) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()

	serialized, err := json.Marshal(variables)
	if err != nil {
		span.SetStatus(codes.Error, "failed to serialize variables")
		return nil, err
	}
	span.SetAttributes(attribute.KeyValue{
		Key:   "custom.variables",
		Value: attribute.StringValue(string(serialized)),
	})

	features, err := json.Marshal(defaultFeatures)
	if err != nil {
		return nil, err
	}
	fieldToggles, err := json.Marshal(defaultFieldToggles)
	if err != nil {
		return nil, err
	}

	var lastStale error
	for pass := 0; pass < 2; pass++ {
		if pass == 1 {
			// stale ids are the one failure the protocol self-heals
			// from: refresh once, globally, then retry
			c.registry.Refresh(ctx, OperationNames(), true)
		}

		for _, queryID := range c.registry.Resolve(name) {
			data, err := c.attempt(ctx, name, queryID, serialized, features, fieldToggles)
			if err == nil {
				return data, nil
			}
			if isStale(err) {
				lastStale = err
				continue
			}
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	if lastStale == nil {
		span.SetStatus(codes.Error, "no candidate query ids")
		return nil, fmt.Errorf("operation %s has no known query ids", name)
	}
	span.SetStatus(codes.Error, "all candidate query ids rejected")
	return nil, fmt.Errorf("operation %s exhausted all query ids: %w", name, lastStale)
}

// staleError wraps the underlying response failure while still matching
// ErrStaleQueryID via errors.Is.
type staleError struct {
	cause error
}

func (e *staleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStaleQueryID.Error(), e.cause.Error())
}

func (e *staleError) Is(target error) bool {
	return target == ErrStaleQueryID
}

func (e *staleError) Unwrap() error {
	return e.cause
}

func isStale(err error) bool {
	_, ok := err.(*staleError)
	return ok
}

func (c *Client) attempt(
	ctx context.Context,
	name, queryID string,
	variables, features, fieldToggles []byte,
) (json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("variables", string(variables)).
		SetQueryParam("features", string(features)).
		SetQueryParam("fieldToggles", string(fieldToggles)).
		Get(fmt.Sprintf("/graphql/%s/%s", queryID, name))
	if err != nil {
		// transport errors (DNS, timeout) are never retried here
		return nil, fmt.Errorf("request %s: %w", name, err)
	}

	if res.StatusCode() == http.StatusNotFound {
		return nil, &staleError{cause: newHTTPError(res.StatusCode(), res.Body())}
	}
	if !res.IsSuccess() {
		return nil, newHTTPError(res.StatusCode(), res.Body())
	}

	var envelope graphqlEnvelope
	if err := json.Unmarshal(res.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("parse %s response: %w", name, err)
	}

	if len(envelope.Errors) > 0 {
		apiErr := &APIError{}
		notFound := true
		for _, e := range envelope.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
			if !isNotFoundMessage(e.Message) {
				notFound = false
			}
		}
		if notFound {
			return nil, &staleError{cause: apiErr}
		}
		return nil, apiErr
	}

	return envelope.Data, nil
}
