package voiceService

import (
	radarService "ProjectViagem/internal/api/radar/service"
	"ProjectViagem/internal/api/voice"
	voiceRepository "ProjectViagem/internal/api/voice/repository"
	"ProjectViagem/internal/api/voice/session"
	"ProjectViagem/pkg/gemini"
	"ProjectViagem/pkg/nlp"
	redisPkg "ProjectViagem/pkg/redis"
	"ProjectViagem/pkg/utils"
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type IVoiceService interface {
	OpenSession(ctx context.Context, userID string, sink session.Sink) (*session.Manager, error)
	Interpret(ctx context.Context, userID string, req voice.InterpretRequest) (voice.InterpretResponse, error)
	GetHistory(ctx context.Context, userID string, limit, offset int) (voice.HistoryResponse, error)

	SyncRouteMappings(ctx context.Context) error
	GetRouteMappings(ctx context.Context) ([]voice.RouteMappingResponse, error)
	CreateRouteMapping(ctx context.Context, req voice.RouteMappingRequest) error
	UpdateRouteMapping(ctx context.Context, routeID string, req voice.RouteMappingRequest) error
	DeleteRouteMapping(ctx context.Context, routeID string) error
}

type voiceService struct {
	log          *logrus.Logger
	voiceRepo    voiceRepository.Repository
	radarService radarService.IRadarService
	processor    nlp.IProcessor
	agent        gemini.IGemini
	redis        redisPkg.IRedis
	utils        utils.IUtils
	config       VoiceConfig

	mu       sync.Mutex
	sessions map[string]*session.Manager
}

type VoiceConfig struct {
	AgentID           string
	InactivityTimeout time.Duration
}

func NewVoiceConfigFromEnv() VoiceConfig {
	return VoiceConfig{
		AgentID:           os.Getenv("VOICE_AGENT_ID"),
		InactivityTimeout: session.DefaultInactivityTimeout,
	}
}

func New(
	log *logrus.Logger,
	voiceRepo voiceRepository.Repository,
	rs radarService.IRadarService,
	processor nlp.IProcessor,
	agent gemini.IGemini,
	redis redisPkg.IRedis,
	utils utils.IUtils,
	config VoiceConfig,
) IVoiceService {
	return &voiceService{
		log:          log,
		voiceRepo:    voiceRepo,
		radarService: rs,
		processor:    processor,
		agent:        agent,
		redis:        redis,
		utils:        utils,
		config:       config,
		sessions:     make(map[string]*session.Manager),
	}
}
