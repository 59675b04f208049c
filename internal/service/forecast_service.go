package service

import (
	"math"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/model/entity"
	"github.com/Kohryu26/SoleCast/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ForecastStrategy 预测策略。CanForecast 是显式的能力前置检查，
// 策略选择以它为准，而不是靠运行失败后回退。
type ForecastStrategy interface {
	Name() string
	// CanForecast 判断基准年月度销量是否足以支撑该策略
	CanForecast(baseMonthly map[int]int) bool
	// Forecast 产出12个月的预测量，increase 为目标增幅百分比
	Forecast(baseMonthly map[int]int, increase float64) [12]int
}

// seasonalNaive 季节朴素法：基准年每月销量按增幅等比放大。
// 要求基准年12个月都有销量记录。
type seasonalNaive struct{}

func (seasonalNaive) Name() string { return "seasonal_naive" }

func (seasonalNaive) CanForecast(baseMonthly map[int]int) bool {
	for m := 1; m <= 12; m++ {
		if _, ok := baseMonthly[m]; !ok {
			return false
		}
	}
	return true
}

func (seasonalNaive) Forecast(baseMonthly map[int]int, increase float64) [12]int {
	factor := 1 + increase/100
	var out [12]int
	for m := 1; m <= 12; m++ {
		q := int(math.Round(float64(baseMonthly[m]) * factor))
		if q < 0 {
			q = 0
		}
		out[m-1] = q
	}
	return out
}

// flatBaseline 兜底策略：无足够历史时按固定基线产量预测
type flatBaseline struct{}

const flatBaselineQuantity = 100

func (flatBaseline) Name() string { return "flat_baseline" }

func (flatBaseline) CanForecast(map[int]int) bool { return true }

func (flatBaseline) Forecast(_ map[int]int, increase float64) [12]int {
	factor := 1 + increase/100
	q := int(math.Round(flatBaselineQuantity * factor))
	if q < 0 {
		q = 0
	}
	var out [12]int
	for i := range out {
		out[i] = q
	}
	return out
}

type ForecastService struct {
	salesRepo      *repository.SalesRepository
	predictionRepo *repository.PredictionRepository
	strategies     []ForecastStrategy
	baseYear       int
	logger         *zap.Logger
}

func NewForecastService(
	salesRepo *repository.SalesRepository,
	predictionRepo *repository.PredictionRepository,
	baseYear int,
	logger *zap.Logger,
) *ForecastService {
	return &ForecastService{
		salesRepo:      salesRepo,
		predictionRepo: predictionRepo,
		strategies:     []ForecastStrategy{seasonalNaive{}, flatBaseline{}},
		baseYear:       baseYear,
		logger:         logger,
	}
}

// Generate 为产品生成目标年12个月的销售预测，整批替换旧预测。
// 策略按能力检查顺序选取：历史完整用季节朴素法，否则用固定基线。
func (s *ForecastService) Generate(productName string, targetYear int, increase float64) ([]entity.Prediction, error) {
	if productName == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if targetYear <= s.baseYear {
		return nil, apperr.Validationf("target year %d must be after base year %d", targetYear, s.baseYear)
	}

	baseMonthly, err := s.salesRepo.MonthlyQuantities(productName, s.baseYear, true)
	if err != nil {
		return nil, apperr.Storage(err, "load base year sales")
	}

	var strategy ForecastStrategy
	for _, st := range s.strategies {
		if st.CanForecast(baseMonthly) {
			strategy = st
			break
		}
	}

	s.logger.Info("Generating forecast",
		zap.String("product", productName),
		zap.Int("target_year", targetYear),
		zap.String("strategy", strategy.Name()),
		zap.Int("base_months", len(baseMonthly)),
	)

	quantities := strategy.Forecast(baseMonthly, increase)
	preds := make([]entity.Prediction, 0, 12)
	for m := 1; m <= 12; m++ {
		preds = append(preds, entity.Prediction{
			ID:                uuid.New().String(),
			ProductName:       productName,
			Year:              targetYear,
			Month:             m,
			PredictedQuantity: quantities[m-1],
			Strategy:          strategy.Name(),
		})
	}

	if err := s.predictionRepo.ReplaceForProduct(productName, targetYear, preds); err != nil {
		return nil, apperr.Storage(err, "save predictions")
	}
	return preds, nil
}

func (s *ForecastService) ListPredictions(productName string, year int) ([]entity.Prediction, error) {
	preds, err := s.predictionRepo.List(productName, year)
	if err != nil {
		return nil, apperr.Storage(err, "list predictions")
	}
	return preds, nil
}
