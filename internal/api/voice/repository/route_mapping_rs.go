package voiceRepository

import (
	"ProjectViagem/internal/api/voice"
	"ProjectViagem/internal/entity"
	contextPkg "ProjectViagem/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func (r *routeMappingRepository) CreateRouteMapping(ctx context.Context, mapping entity.RouteMapping) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"route_id":     mapping.RouteID,
		"path":         mapping.Path,
		"display_name": mapping.DisplayName,
		"keywords":     pq.Array([]string(mapping.Keywords)),
		"is_active":    mapping.IsActive,
		"created_at":   mapping.CreatedAt,
		"updated_at":   mapping.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateRouteMapping, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return voice.ErrRouteMappingExists
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"route_id":   mapping.RouteID,
			"error":      err.Error(),
		}).Error("Failed to insert route mapping")
		return err
	}

	return nil
}

func (r *routeMappingRepository) GetRouteMappingByID(ctx context.Context, routeID string) (entity.RouteMapping, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryGetRouteMappingByID, map[string]interface{}{
		"route_id": routeID,
	})
	if err != nil {
		return entity.RouteMapping{}, err
	}
	query = r.q.Rebind(query)

	var mapping entity.RouteMapping
	err = r.q.QueryRowxContext(ctx, query, args...).StructScan(&mapping)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.RouteMapping{}, voice.ErrRouteMappingNotFound
	} else if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"route_id":   routeID,
			"error":      err.Error(),
		}).Error("Failed to select route mapping")
		return entity.RouteMapping{}, err
	}

	return mapping, nil
}

func (r *routeMappingRepository) GetAllRouteMappings(ctx context.Context) ([]entity.RouteMapping, error) {
	requestID := contextPkg.GetRequestID(ctx)

	query := r.q.Rebind(queryGetAllRouteMappings)

	var mappings []entity.RouteMapping
	if err := r.q.SelectContext(ctx, &mappings, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to select route mappings")
		return nil, err
	}

	return mappings, nil
}

func (r *routeMappingRepository) UpdateRouteMapping(ctx context.Context, mapping entity.RouteMapping) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"route_id":     mapping.RouteID,
		"path":         mapping.Path,
		"display_name": mapping.DisplayName,
		"keywords":     pq.Array([]string(mapping.Keywords)),
		"updated_at":   mapping.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryUpdateRouteMapping, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"route_id":   mapping.RouteID,
			"error":      err.Error(),
		}).Error("Failed to update route mapping")
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return voice.ErrRouteMappingNotFound
	}

	return nil
}

func (r *routeMappingRepository) DeactivateRouteMapping(ctx context.Context, routeID string) error {
	argsKV := map[string]interface{}{
		"route_id":   routeID,
		"updated_at": time.Now().UTC(),
	}

	query, args, err := sqlx.Named(queryDeactivateRouteMapping, argsKV)
	if err != nil {
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return voice.ErrRouteMappingNotFound
	}

	return nil
}
