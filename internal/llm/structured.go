package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// rawHeadLimit bounds how much of a rejected response is kept in a Failure.
const rawHeadLimit = 180

// Checker is implemented by decoded outputs that carry rules the JSON
// schema cannot express, such as a non-blank string.
type Checker interface {
	Check() error
}

// Failure records why a structured call substituted its fallback.
type Failure struct {
	Kind InvalidKind
	Err  error
	// RawHead is the start of the rejected content, for diagnostics only.
	RawHead string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Result carries either a value decoded from the model or the fallback
// substituted for it. Failure is nil when the model output was used.
type Result[T any] struct {
	Value   T
	Failure *Failure
	Usage   Usage
}

// Recovered reports whether Value is a fallback.
func (r Result[T]) Recovered() bool { return r.Failure != nil }

// Structured sends req to p and decodes the schema-validated response into
// T. Malformed, truncated, schema-violating or semantically rejected output
// never surfaces as an error: the fallback is built from the Failure and
// returned in the Result. Transport and context errors are returned as is.
func Structured[T any](ctx context.Context, p Provider, req Request, fallback func(*Failure) T) (Result[T], error) {
	if req.Schema == nil {
		return Result[T]{}, errors.New("structured request requires a schema")
	}

	substitute := func(f *Failure) (Result[T], error) {
		return Result[T]{Value: fallback(f), Failure: f}, nil
	}

	resp, err := p.Generate(ctx, req)
	if err != nil {
		var invErr *ErrInvalidResponse
		if errors.As(err, &invErr) {
			return substitute(failureFrom(invErr))
		}
		var maxTok *ErrMaxTokensExceeded
		if errors.As(err, &maxTok) {
			return substitute(&Failure{Kind: InvalidTrunc, Err: err, RawHead: head(maxTok.Content)})
		}
		return Result[T]{}, err
	}

	// Providers validate already; the mock and any custom provider may not.
	content, err := validateResponse(req.Schema, resp.Content)
	if err != nil {
		var invErr *ErrInvalidResponse
		if errors.As(err, &invErr) {
			return substitute(failureFrom(invErr))
		}
		return substitute(&Failure{Kind: InvalidJSON, Err: err, RawHead: head(resp.Content)})
	}

	var out T
	if err := json.Unmarshal(content, &out); err != nil {
		return substitute(&Failure{Kind: InvalidJSON, Err: err, RawHead: head(content)})
	}
	if c, ok := any(&out).(Checker); ok {
		if err := c.Check(); err != nil {
			return substitute(&Failure{Kind: InvalidCheck, Err: err, RawHead: head(content)})
		}
	}

	return Result[T]{Value: out, Usage: resp.Usage}, nil
}

func failureFrom(e *ErrInvalidResponse) *Failure {
	kind := e.Kind
	if kind == "" {
		kind = InvalidJSON
	}
	return &Failure{Kind: kind, Err: e, RawHead: head(e.Content)}
}

func head(raw json.RawMessage) string {
	runes := []rune(string(raw))
	if len(runes) > rawHeadLimit {
		return string(runes[:rawHeadLimit])
	}
	return string(runes)
}
