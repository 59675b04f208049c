package service

import (
	"sort"

	"github.com/Kohryu26/SoleCast/internal/apperr"
	"github.com/Kohryu26/SoleCast/internal/repository"
)

// CostingService 算料引擎：按BOM计算一次生产投产所需物料的
// 缺口数量与补料成本。只读，不持有状态，每次调用重新读库。
type CostingService struct {
	bomRepo *repository.BOMRepository
}

func NewCostingService(bomRepo *repository.BOMRepository) *CostingService {
	return &CostingService{bomRepo: bomRepo}
}

// CostLine 单个物料的算料结果。库存足够时 NeedToOrder 为0，
// 行仍保留用于展示。
type CostLine struct {
	MaterialID      string  `json:"material_id"`
	MaterialName    string  `json:"material_name"`
	QuantityPerUnit int     `json:"quantity_per_unit"`
	TotalRequired   int     `json:"total_required"`
	InStock         int     `json:"in_stock"`
	NeedToOrder     int     `json:"need_to_order"`
	Unit            string  `json:"unit_of_measure"`
	Cost            float64 `json:"cost"`
}

// CostingResult 一次算料的完整结果
type CostingResult struct {
	ProductName       string     `json:"product_name"`
	QuantityToProduce int        `json:"quantity_to_produce"`
	Lines             []CostLine `json:"lines"`
	TotalCost         float64    `json:"total_cost"`
}

// Calculate 计算产品投产 quantity 件所需的物料缺口与成本。
// 产品未定义BOM时返回 ErrNotFound，不会静默返回零成本。
func (s *CostingService) Calculate(productName string, quantity int) (*CostingResult, error) {
	if productName == "" {
		return nil, apperr.Validationf("product name is required")
	}
	if quantity <= 0 {
		return nil, apperr.Validationf("quantity to produce must be positive, got %d", quantity)
	}

	entries, err := s.bomRepo.GetEntriesForProduct(productName)
	if err != nil {
		return nil, apperr.Storage(err, "load bom entries")
	}
	if len(entries) == 0 {
		return nil, apperr.NotFoundf("no bill of materials defined for product %q", productName)
	}

	result := &CostingResult{
		ProductName:       productName,
		QuantityToProduce: quantity,
		Lines:             make([]CostLine, 0, len(entries)),
	}

	for _, e := range entries {
		mat := e.Material
		if mat == nil {
			return nil, apperr.NotFoundf("material %s referenced by bom entry %s does not exist", e.MaterialID, e.ID)
		}

		totalRequired := quantity * e.QuantityPerUnit
		needToOrder := totalRequired - mat.Stock
		if needToOrder < 0 {
			needToOrder = 0
		}
		cost := float64(needToOrder) * mat.Price

		result.Lines = append(result.Lines, CostLine{
			MaterialID:      mat.ID,
			MaterialName:    mat.Name,
			QuantityPerUnit: e.QuantityPerUnit,
			TotalRequired:   totalRequired,
			InStock:         mat.Stock,
			NeedToOrder:     needToOrder,
			Unit:            mat.Unit,
			Cost:            cost,
		})
		result.TotalCost += cost
	}

	sort.Slice(result.Lines, func(i, j int) bool {
		return result.Lines[i].MaterialName < result.Lines[j].MaterialName
	})

	return result, nil
}
