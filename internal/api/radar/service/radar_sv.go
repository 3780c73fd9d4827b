package radarService

import (
	"ProjectViagem/internal/api/radar"
	"ProjectViagem/internal/entity"
	contextPkg "ProjectViagem/pkg/context"
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const maxRadarsPerRoute = 1

func (s *radarService) CreateRadar(ctx context.Context, userID string, req radar.CreateRadarRequest) (radar.RadarResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	origin := strings.TrimSpace(req.Origin)
	destination := strings.TrimSpace(req.Destination)
	if origin == "" || destination == "" {
		return radar.RadarResponse{}, radar.ErrInvalidRoute
	}
	if strings.EqualFold(origin, destination) {
		return radar.RadarResponse{}, radar.ErrSameCity
	}
	if req.TargetValue != nil && *req.TargetValue <= 0 {
		return radar.RadarResponse{}, radar.ErrInvalidTarget
	}
	if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
		return radar.RadarResponse{}, radar.ErrInvalidDateRange
	}

	monitorType := req.MonitorType
	if monitorType == "" {
		monitorType = radar.MonitorTypeCurrency
	}

	repo, err := s.radarRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return radar.RadarResponse{}, err
	}
	defer repo.Rollback()

	count, err := repo.Radars.CountActiveByRoute(ctx, userID, origin, destination)
	if err != nil {
		return radar.RadarResponse{}, err
	}
	if count >= maxRadarsPerRoute {
		return radar.RadarResponse{}, radar.ErrDuplicateRadar
	}

	now := time.Now().UTC()
	radarID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return radar.RadarResponse{}, err
	}

	entry := entity.Radar{
		ID:          radarID,
		UserID:      userID,
		Origin:      origin,
		Destination: destination,
		StartDate:   toNullString(req.StartDate),
		EndDate:     toNullString(req.EndDate),
		TargetValue: toNullFloat(req.TargetValue),
		MonitorType: monitorType,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := repo.Radars.CreateRadar(ctx, entry); err != nil {
		return radar.RadarResponse{}, err
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit radar creation")
		return radar.RadarResponse{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"radar_id":    radarID,
		"origin":      origin,
		"destination": destination,
	}).Info("Radar created")

	return toRadarResponse(entry), nil
}

func (s *radarService) GetRadars(ctx context.Context, userID string) (radar.ListRadarsResponse, error) {
	repo, err := s.radarRepo.NewClient(false)
	if err != nil {
		return radar.ListRadarsResponse{}, err
	}

	radars, err := repo.Radars.GetRadarsByUserID(ctx, userID)
	if err != nil {
		return radar.ListRadarsResponse{}, err
	}

	resp := radar.ListRadarsResponse{
		Radars: make([]radar.RadarResponse, 0, len(radars)),
		Total:  len(radars),
	}
	for _, entry := range radars {
		resp.Radars = append(resp.Radars, toRadarResponse(entry))
	}

	return resp, nil
}

func (s *radarService) DeleteRadar(ctx context.Context, userID string, radarID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.radarRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	entry, err := repo.Radars.GetRadarByID(ctx, radarID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return radar.ErrRadarNotOwned
	}

	if err := repo.Radars.DeactivateRadar(ctx, radarID); err != nil {
		return err
	}

	if err := repo.Commit(); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"radar_id":   radarID,
	}).Info("Radar deleted")

	return nil
}

func toRadarResponse(entry entity.Radar) radar.RadarResponse {
	resp := radar.RadarResponse{
		ID:          entry.ID,
		Origin:      entry.Origin,
		Destination: entry.Destination,
		MonitorType: entry.MonitorType,
		CreatedAt:   entry.CreatedAt,
	}
	if entry.StartDate.Valid {
		resp.StartDate = entry.StartDate.String
	}
	if entry.EndDate.Valid {
		resp.EndDate = entry.EndDate.String
	}
	if entry.TargetValue.Valid {
		value := entry.TargetValue.Float64
		resp.TargetValue = &value
	}
	return resp
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
