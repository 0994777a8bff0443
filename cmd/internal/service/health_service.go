package service

import (
	"context"

	"github.com/labstack/gommon/log"

	"vantay/cmd/internal/domain/entity"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type HealthRepository interface {
	Probe(ctx context.Context) (*entity.DBInfo, error)
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

type DBCheckResponse struct {
	OK bool           `json:"ok"`
	DB *entity.DBInfo `json:"db"`
}

type DefaultHealthService struct {
	HealthRepo  HealthRepository
	ServiceName string
}

func NewHealthService(healthRepo HealthRepository, serviceName string) *DefaultHealthService {
	return &DefaultHealthService{HealthRepo: healthRepo, ServiceName: serviceName}
}

func (h *DefaultHealthService) Health() *HealthResponse {
	return &HealthResponse{OK: true, Service: h.ServiceName, Time: utils.FormatTime(utils.NowUTC())}
}

func (h *DefaultHealthService) DBCheck(ctx context.Context) (*DBCheckResponse, apierror.ErrorResponse) {
	info, err := h.HealthRepo.Probe(ctx)
	if err != nil {
		log.Errorf("db check failed: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	return &DBCheckResponse{OK: true, DB: info}, nil
}
