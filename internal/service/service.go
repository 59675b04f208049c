package service

import (
	"github.com/Kohryu26/SoleCast/internal/config"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Auth     *AuthService
	Material *MaterialService
	BOM      *BOMService
	Costing  *CostingService
	Request  *RequestService
	Sales    *SalesService
	Report   *ReportService
	Forecast *ForecastService
	Import   *ImportService
}

func NewServices(repos *repository.Repositories, db *gorm.DB, cfg *config.Config, logger *zap.Logger) *Services {
	costing := NewCostingService(repos.BOM)

	return &Services{
		Auth:     NewAuthService(repos.User, cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, logger),
		Material: NewMaterialService(repos.Material, repos.BOM),
		BOM:      NewBOMService(repos.BOM, repos.Material),
		Costing:  costing,
		Request:  NewRequestService(repos.Request, repos.Material, costing, db),
		Sales:    NewSalesService(repos.Sales, repos.Target),
		Report:   NewReportService(repos.Sales, repos.BOM),
		Forecast: NewForecastService(repos.Sales, repos.Prediction, cfg.Forecast.BaseYear, logger),
		Import:   NewImportService(repos.Material, repos.Target, repos.Sales, cfg.Forecast.BaseYear, logger),
	}
}
