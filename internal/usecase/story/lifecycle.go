package story

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"not-project-backend/internal/domain/entity"
	"not-project-backend/internal/repository"
)

// radarRaceRetries bounds how often Radar re-reads after losing a
// promotion race. One concurrent winner is the common case; more than a
// couple of retries means something else is wrong.
const radarRaceRetries = 3

// transition validates a lifecycle transition against the current row
// before the write is attempted. The storage layer re-checks the same
// preconditions inside its transactions so that a concurrent writer cannot
// slip between the read and the update.
func (s *Service) transition(ctx context.Context, id string, t entity.Transition) error {
	st, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load story: %w", err)
	}
	if st == nil {
		return ErrStoryNotFound
	}
	// Apply mutates its receiver, so validate a copy and let the
	// repository perform the actual write.
	check := *st
	return check.Apply(t)
}

// Unpublish takes a story off the public site. The radar story must be
// demoted first; entity.ErrRadarConflict is returned otherwise.
func (s *Service) Unpublish(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidStoryID
	}
	if err := s.transition(ctx, id, entity.TransitionUnpublish); err != nil {
		return err
	}
	if err := s.Repo.SetPublished(ctx, id, false); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrStoryNotFound
		}
		if errors.Is(err, entity.ErrRadarConflict) {
			return entity.ErrRadarConflict
		}
		return fmt.Errorf("unpublish story: %w", err)
	}
	return nil
}

// Republish puts a previously unpublished story back on the site.
func (s *Service) Republish(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidStoryID
	}
	if err := s.transition(ctx, id, entity.TransitionPublish); err != nil {
		return err
	}
	if err := s.Repo.SetPublished(ctx, id, true); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("republish story: %w", err)
	}
	return nil
}

// Delete removes a story permanently. Only fully retired stories can go:
// a story that is still published, on the radar, or recommended returns
// entity.ErrDeleteGuard.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidStoryID
	}
	st, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load story: %w", err)
	}
	if st == nil {
		return ErrStoryNotFound
	}
	if err := st.CanDelete(); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrStoryNotFound
		}
		if errors.Is(err, entity.ErrDeleteGuard) {
			return entity.ErrDeleteGuard
		}
		return fmt.Errorf("delete story: %w", err)
	}
	return nil
}

// PromoteRadar makes the story the single radar pick, demoting whichever
// story held the spot. Only published stories qualify.
func (s *Service) PromoteRadar(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidStoryID
	}
	if err := s.transition(ctx, id, entity.TransitionPromoteRadar); err != nil {
		return err
	}
	if err := s.Repo.PromoteRadar(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrStoryNotFound
		}
		if errors.Is(err, entity.ErrNotPublished) {
			return entity.ErrNotPublished
		}
		return fmt.Errorf("promote radar: %w", err)
	}
	return nil
}

// Radar returns the current radar story. When no story holds the spot it
// auto-selects one, preferring recommended stories and then recency, flags
// it, and returns it. Returns (nil, nil) when no published story exists at
// all. Losing a concurrent auto-select race is handled by re-reading the
// winner.
func (s *Service) Radar(ctx context.Context) (*repository.StoryWithRelations, error) {
	current, err := s.Repo.FindRadar(ctx)
	if err != nil {
		return nil, fmt.Errorf("find radar: %w", err)
	}
	if current != nil {
		return current, nil
	}

	for attempt := 0; attempt <= radarRaceRetries; attempt++ {
		promoted, err := s.Repo.PromoteRadarCandidate(ctx)
		if err == nil {
			return promoted, nil
		}
		if !errors.Is(err, repository.ErrRadarRace) {
			return nil, fmt.Errorf("promote radar candidate: %w", err)
		}

		// Another request promoted first; its pick is the radar story now.
		slog.Debug("lost radar promotion race, re-reading winner",
			slog.Int("attempt", attempt+1))
		winner, err := s.Repo.FindRadar(ctx)
		if err != nil {
			return nil, fmt.Errorf("find radar after race: %w", err)
		}
		if winner != nil {
			return winner, nil
		}
		// The winner was demoted or unpublished in between; try again.
	}
	return nil, repository.ErrRadarRace
}

// Recommend adds or removes the story from the recommended set. The set
// is advisory and not bounded at write time; readers take the newest
// RecommendedSetSize entries.
func (s *Service) Recommend(ctx context.Context, id string, recommended bool) error {
	if id == "" {
		return ErrInvalidStoryID
	}
	if err := s.Repo.SetRecommended(ctx, id, recommended); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("set recommended: %w", err)
	}
	return nil
}

// Recommendations returns the newest recommended stories, at most
// RecommendedSetSize of them.
func (s *Service) Recommendations(ctx context.Context) ([]repository.StoryWithRelations, error) {
	stories, err := s.Repo.ListRecommended(ctx, RecommendedSetSize)
	if err != nil {
		return nil, fmt.Errorf("list recommended: %w", err)
	}
	return stories, nil
}
