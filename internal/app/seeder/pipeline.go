// Package seeder loads a YAML fixture of submissions and subscribers into
// the configured store through the regular services, so every seeded row
// passes the same validation as an API request.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
	"github.com/heartmarshall/campusconnect-backend/internal/service/submission"
)

const (
	phaseSubmissions = "submissions"
	phaseSubscribers = "subscribers"
)

// allPhases defines the canonical execution order.
var allPhases = []string{phaseSubmissions, phaseSubscribers}

type submissionCreator interface {
	Create(ctx context.Context, input submission.CreateInput) (*domain.Submission, error)
	List(ctx context.Context, sessionID string) ([]domain.FeedItem, error)
}

type subscriberAdder interface {
	Subscribe(ctx context.Context, email string) (domain.SubscribeOutcome, error)
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Errors   int
	Duration time.Duration
	Err      error
}

// Pipeline orchestrates the seeding phases.
type Pipeline struct {
	log         *slog.Logger
	submissions submissionCreator
	subscribers subscriberAdder
	cfg         Config
	results     map[string]PhaseResult
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, submissions submissionCreator, subscribers subscriberAdder, cfg Config) *Pipeline {
	return &Pipeline{
		log:         log.With("service", "seeder"),
		submissions: submissions,
		subscribers: subscribers,
		cfg:         cfg,
		results:     make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run seeds fixture. If phases is non-empty, only the listed phases run, in
// canonical order. Unknown phase names are an error.
func (p *Pipeline) Run(ctx context.Context, fixture *Fixture, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}

	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case phaseSubmissions:
			result = p.runSubmissions(ctx, fixture.Submissions)
		case phaseSubscribers:
			result = p.runSubscribers(ctx, fixture.Subscribers)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			continue
		}
		p.log.Info("phase completed",
			slog.String("phase", phase),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped),
			slog.Int("errors", result.Errors),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}
	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		ph = strings.TrimSpace(ph)
		if ph != phaseSubmissions && ph != phaseSubscribers {
			return nil, fmt.Errorf("unknown phase %q", ph)
		}
		filter[ph] = true
	}
	var out []string
	for _, ph := range allPhases {
		if filter[ph] {
			out = append(out, ph)
		}
	}
	return out, nil
}

func (p *Pipeline) runSubmissions(ctx context.Context, items []FixtureSubmission) PhaseResult {
	var result PhaseResult

	existing := map[string]bool{}
	if p.cfg.SkipExisting {
		feed, err := p.submissions.List(ctx, "")
		if err != nil {
			return PhaseResult{Err: fmt.Errorf("list submissions: %w", err)}
		}
		for _, it := range feed {
			existing[strings.ToLower(it.Title)] = true
		}
	}

	for i, item := range items {
		in := item.input()
		if p.cfg.SkipExisting && existing[strings.ToLower(strings.TrimSpace(in.Title))] {
			result.Skipped++
			continue
		}

		if p.cfg.DryRun {
			if err := in.Validate(); err != nil {
				p.logInvalid("submission", i, err)
				result.Errors++
				continue
			}
			result.Skipped++
			continue
		}

		if _, err := p.submissions.Create(ctx, in); err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return PhaseResult{Inserted: result.Inserted, Err: fmt.Errorf("submission %d: %w", i, err)}
			}
			p.logInvalid("submission", i, err)
			result.Errors++
			continue
		}
		existing[strings.ToLower(strings.TrimSpace(in.Title))] = true
		result.Inserted++
	}
	return result
}

func (p *Pipeline) runSubscribers(ctx context.Context, emails []string) PhaseResult {
	var result PhaseResult

	for i, raw := range emails {
		if p.cfg.DryRun {
			if err := domain.ValidateEmail(domain.NormalizeEmail(raw)); err != nil {
				p.logInvalid("subscriber", i, err)
				result.Errors++
				continue
			}
			result.Skipped++
			continue
		}

		outcome, err := p.subscribers.Subscribe(ctx, raw)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return PhaseResult{Inserted: result.Inserted, Err: fmt.Errorf("subscriber %d: %w", i, err)}
			}
			p.logInvalid("subscriber", i, err)
			result.Errors++
			continue
		}
		if outcome == domain.SubscribeAlreadySubscribed {
			result.Skipped++
			continue
		}
		result.Inserted++
	}
	return result
}

func (p *Pipeline) logInvalid(kind string, index int, err error) {
	p.log.Warn("invalid fixture item",
		slog.String("kind", kind),
		slog.Int("index", index),
		slog.String("error", err.Error()),
	)
}
