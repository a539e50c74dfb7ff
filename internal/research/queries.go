package research

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/osse101/DowntimeForge/internal/domain"
)

// ResearchDetail is one research project with its roll history, newest first
type ResearchDetail struct {
	domain.Research
	Rolls []domain.ResearchRoll `json:"rolls"`
}

// ResearchList groups a character's research by state
type ResearchList struct {
	InProgress []domain.Research `json:"in_progress"`
	Completed  []domain.Research `json:"completed"`
}

// GetResearch returns a research project owned by characterID and its rolls
func (s *service) GetResearch(ctx context.Context, characterID int, researchID uuid.UUID) (*ResearchDetail, error) {
	research, err := s.repo.GetResearch(ctx, researchID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetResearchFailed, err)
	}
	if research.CharacterID != characterID {
		return nil, domain.ErrResearchNotFound
	}

	rolls, err := s.repo.GetResearchRolls(ctx, researchID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRollsFailed, err)
	}
	if rolls == nil {
		rolls = []domain.ResearchRoll{}
	}
	return &ResearchDetail{Research: *research, Rolls: rolls}, nil
}

// ListResearch returns the character's research. In-progress projects are newest started first,
// completed ones newest completed first.
func (s *service) ListResearch(ctx context.Context, characterID int) (*ResearchList, error) {
	all, err := s.repo.GetResearches(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetResearchesFailed, err)
	}

	list := &ResearchList{
		InProgress: []domain.Research{},
		Completed:  []domain.Research{},
	}
	for _, r := range all {
		switch r.State {
		case domain.ResearchInProgress:
			list.InProgress = append(list.InProgress, r)
		case domain.ResearchCompleted:
			list.Completed = append(list.Completed, r)
		}
	}

	slices.SortStableFunc(list.InProgress, func(a, b domain.Research) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	slices.SortStableFunc(list.Completed, func(a, b domain.Research) int {
		return lo.FromPtr(b.CompletedAt).Compare(lo.FromPtr(a.CompletedAt))
	})
	return list, nil
}
