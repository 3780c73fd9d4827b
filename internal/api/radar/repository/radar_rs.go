package radarRepository

import (
	"ProjectViagem/internal/api/radar"
	"ProjectViagem/internal/entity"
	contextPkg "ProjectViagem/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *radarRepository) CreateRadar(ctx context.Context, entry entity.Radar) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           entry.ID,
		"user_id":      entry.UserID,
		"origin":       entry.Origin,
		"destination":  entry.Destination,
		"start_date":   entry.StartDate,
		"end_date":     entry.EndDate,
		"target_value": entry.TargetValue,
		"monitor_type": entry.MonitorType,
		"is_active":    entry.IsActive,
		"created_at":   entry.CreatedAt,
		"updated_at":   entry.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateRadar, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateRadar")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to insert radar")
		return err
	}

	return nil
}

func (r *radarRepository) GetRadarByID(ctx context.Context, id string) (entity.Radar, error) {
	query, args, err := sqlx.Named(queryGetRadarByID, map[string]interface{}{"id": id})
	if err != nil {
		return entity.Radar{}, err
	}
	query = r.q.Rebind(query)

	var entry entity.Radar
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&entry)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Radar{}, radar.ErrRadarNotFound
	} else if err != nil {
		return entity.Radar{}, err
	}

	return entry, nil
}

func (r *radarRepository) GetRadarsByUserID(ctx context.Context, userID string) ([]entity.Radar, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetRadarsByUserID, map[string]interface{}{"user_id": userID})
	if err != nil {
		return nil, err
	}
	query = r.q.Rebind(query)

	var radars []entity.Radar
	if err := r.q.SelectContext(ctx, &radars, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to select radars")
		return nil, err
	}

	return radars, nil
}

func (r *radarRepository) CountActiveByRoute(ctx context.Context, userID, origin, destination string) (int, error) {
	query, args, err := sqlx.Named(queryCountActiveByRoute, map[string]interface{}{
		"user_id":     userID,
		"origin":      origin,
		"destination": destination,
	})
	if err != nil {
		return 0, err
	}
	query = r.q.Rebind(query)

	var count int
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *radarRepository) DeactivateRadar(ctx context.Context, id string) error {
	query, args, err := sqlx.Named(queryDeactivateRadar, map[string]interface{}{
		"id":         id,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return radar.ErrRadarNotFound
	}

	return nil
}
