package services

import (
	"context"

	"github.com/vishnuvarthan48/biomedical-cms/internal/models"
	"github.com/vishnuvarthan48/biomedical-cms/internal/repositories"
	"github.com/vishnuvarthan48/biomedical-cms/internal/utils"
)

// LookupService serves the read-only facility lookups.
type LookupService struct {
	repo repositories.LookupRepository
}

func NewLookupService(repo repositories.LookupRepository) *LookupService {
	return &LookupService{repo: repo}
}

func (s *LookupService) RoomTypes(ctx context.Context, caller models.Caller, activeOnly bool) ([]*models.RoomType, error) {
	filter := repositories.ListVisible
	if activeOnly {
		filter = repositories.ListActive
	}
	list, err := s.repo.ListRoomTypes(ctx, caller.TenantID, filter)
	if err != nil {
		return nil, utils.InternalError("Failed to list room types", err)
	}
	return list, nil
}

func (s *LookupService) LocationLevels(ctx context.Context, caller models.Caller) ([]*models.LocationLevel, error) {
	list, err := s.repo.ListLocationLevels(ctx, caller.TenantID)
	if err != nil {
		return nil, utils.InternalError("Failed to list location levels", err)
	}
	return list, nil
}
