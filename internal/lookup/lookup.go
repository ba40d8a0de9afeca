// Package lookup sequences the upstream calls behind each user query.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"regplace-bot/internal/heat"
	"regplace-bot/internal/jsondoc"
	"regplace-bot/internal/summary"
)

// ErrInvalidInput is returned before any request is made.
var ErrInvalidInput = errors.New("invalid heat number")

// Upstream is the part of regplace.Client the lookups need.
type Upstream interface {
	Event(ctx context.Context, slug string) ([]byte, error)
	HeatV1(ctx context.Context, number int64) ([]byte, error)
	HeatV3(ctx context.Context, id string) ([]byte, error)
}

// Where the v1 heat answer keeps the link to the v3 record.
var redirectPaths = []string{
	"$.redirect_url",
	"$.heat.redirect_url",
	"$.url",
	"$.heat.url",
}

type Service struct {
	api   Upstream
	slug  string
	heats *heat.Extractor
}

func New(api Upstream, eventSlug string, heats *heat.Extractor) *Service {
	return &Service{api: api, slug: eventSlug, heats: heats}
}

func (s *Service) Summary(ctx context.Context) (summary.Report, error) {
	body, err := s.api.Event(ctx, s.slug)
	if err != nil {
		return summary.Report{}, err
	}
	return summary.Build(body)
}

// Heat resolves a user supplied heat number into the rendered record.
func (s *Service) Heat(ctx context.Context, input string) (string, error) {
	number, err := ParseNumber(input)
	if err != nil {
		return "", err
	}
	v1, err := s.api.HeatV1(ctx, number)
	if err != nil {
		return "", err
	}
	id, err := RedirectID(v1)
	if err != nil {
		return "", err
	}
	v3, err := s.api.HeatV3(ctx, id)
	if err != nil {
		return "", err
	}
	return s.heats.Extract(v3)
}

func ParseNumber(input string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	return n, nil
}

// RedirectID takes the trailing path segment of the redirect URL in a v1
// heat answer and checks it is a UUID.
func RedirectID(payload []byte) (string, error) {
	doc, err := jsondoc.Parse(payload)
	if err != nil {
		return "", err
	}
	for _, p := range redirectPaths {
		if !doc.Has(p) {
			continue
		}
		raw, err := doc.String(p)
		if err != nil {
			return "", err
		}
		u, err := url.Parse(raw)
		if err != nil {
			return "", &jsondoc.ExtractionError{Path: p, Reason: "bad redirect url", Err: err}
		}
		seg := path.Base(strings.TrimRight(u.Path, "/"))
		id, err := uuid.Parse(seg)
		if err != nil {
			return "", &jsondoc.ExtractionError{Path: p, Reason: fmt.Sprintf("redirect segment %q is not a uuid", seg), Err: err}
		}
		return id.String(), nil
	}
	return "", &jsondoc.ExtractionError{Path: "$", Reason: "no redirect url"}
}
