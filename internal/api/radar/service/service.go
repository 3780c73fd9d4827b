package radarService

import (
	"ProjectViagem/internal/api/radar"
	radarRepository "ProjectViagem/internal/api/radar/repository"
	"ProjectViagem/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type IRadarService interface {
	CreateRadar(ctx context.Context, userID string, req radar.CreateRadarRequest) (radar.RadarResponse, error)
	GetRadars(ctx context.Context, userID string) (radar.ListRadarsResponse, error)
	DeleteRadar(ctx context.Context, userID string, radarID string) error
}

type radarService struct {
	log       *logrus.Logger
	radarRepo radarRepository.Repository
	utils     utils.IUtils
}

func New(
	log *logrus.Logger,
	radarRepo radarRepository.Repository,
	utils utils.IUtils,
) IRadarService {
	return &radarService{
		log:       log,
		radarRepo: radarRepo,
		utils:     utils,
	}
}
