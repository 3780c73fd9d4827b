package voiceRepository

import (
	"ProjectViagem/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Utterances:    &utteranceRepository{q: sqlExecutor, log: r.log},
		RouteMappings: &routeMappingRepository{q: sqlExecutor, log: r.log},
		Commit:        commitFunc,
		Rollback:      rollbackFunc,
	}, nil
}

type Client struct {
	Utterances interface {
		CreateUtterance(ctx context.Context, utterance entity.VoiceUtterance) error
		GetUtterancesByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.VoiceUtterance, int, error)
	}

	RouteMappings interface {
		CreateRouteMapping(ctx context.Context, mapping entity.RouteMapping) error
		GetRouteMappingByID(ctx context.Context, routeID string) (entity.RouteMapping, error)
		GetAllRouteMappings(ctx context.Context) ([]entity.RouteMapping, error)
		UpdateRouteMapping(ctx context.Context, mapping entity.RouteMapping) error
		DeactivateRouteMapping(ctx context.Context, routeID string) error
	}

	Commit   func() error
	Rollback func() error
}

type utteranceRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type routeMappingRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
