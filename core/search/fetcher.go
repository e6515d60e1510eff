package search

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"groundsearch-api/core/domain"
	apperrors "groundsearch-api/core/errors"
	"groundsearch-api/core/parser"
)

const (
	maxSourceBody = 2 << 20
	userAgent     = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// fetchSource queries one source and runs its parse cascade.
// Every failure ends up on the outcome; nothing escapes this boundary.
func (s *SearchService) fetchSource(ctx context.Context, spec domain.SourceSpec, q string, settings domain.SearchSettings) domain.FetchOutcome {
	outcome := domain.FetchOutcome{Source: spec.Name}
	target := spec.URLFor(q)
	requestURL, headers := s.request(spec, target, settings)

	resp, err := s.deps.HTTPClient.Get(ctx, requestURL, headers)
	if err != nil {
		outcome.Err = &apperrors.TransportError{Source: spec.Name, URL: target, Err: err}
		s.logOutcome(outcome)
		return outcome
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		outcome.Err = &apperrors.TransportError{Source: spec.Name, URL: target, StatusCode: resp.StatusCode()}
		s.logOutcome(outcome)
		return outcome
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body(), maxSourceBody))
	if err != nil {
		outcome.Err = &apperrors.TransportError{Source: spec.Name, URL: target, Err: err}
		s.logOutcome(outcome)
		return outcome
	}

	if spec.AccessMode == domain.StructuredAPI && !json.Valid(body) {
		outcome.Err = &apperrors.ParseError{Source: spec.Name, Reason: "response is not valid JSON"}
		s.logOutcome(outcome)
		return outcome
	}

	res := parser.Run(spec, domain.ParseInput{
		Source:     spec.Name,
		Query:      q,
		RequestURL: target,
		Body:       body,
	})
	outcome.Results = res.Results
	outcome.LowQuality = res.LowQuality

	if len(res.Results) == 0 {
		if res.LowQuality {
			outcome.Err = &apperrors.LowQualityContent{Source: spec.Name, Reason: res.QualityReason}
		} else {
			outcome.Err = &apperrors.NoResultsError{Source: spec.Name}
		}
	}
	s.logOutcome(outcome, "strategies", strings.Join(res.Ran, ","))
	return outcome
}

// request builds the URL and headers for a source; proxied sources are prefixed with the proxy
func (s *SearchService) request(spec domain.SourceSpec, target string, settings domain.SearchSettings) (string, map[string]string) {
	if spec.AccessMode == domain.ProxiedMarkup {
		headers := map[string]string{"X-Return-Format": "html"}
		if settings.ProxyAPIKey != "" {
			headers["Authorization"] = "Bearer " + settings.ProxyAPIKey
		}
		return s.cfg.ProxyURL + "/" + target, headers
	}

	headers := map[string]string{"User-Agent": userAgent}
	if spec.AccessMode == domain.StructuredAPI {
		headers["Accept"] = "application/json"
	} else {
		headers["Accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	return target, headers
}

// logOutcome logs expected degradations at debug and real failures at info
func (s *SearchService) logOutcome(o domain.FetchOutcome, extra ...string) {
	fields := map[string]interface{}{
		"source":  o.Source,
		"results": len(o.Results),
	}
	for i := 0; i+1 < len(extra); i += 2 {
		fields[extra[i]] = extra[i+1]
	}
	if o.Err == nil {
		s.logger.Debug("Source settled", fields)
		return
	}
	fields["error"] = o.Err.Error()
	if apperrors.IsExpected(o.Err) {
		s.logger.Debug("Source returned nothing usable", fields)
		return
	}
	s.logger.Info("Source failed", fields)
}
