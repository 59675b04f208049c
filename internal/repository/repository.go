package repository

import "gorm.io/gorm"

// Repositories 仓库集合
type Repositories struct {
	User       *UserRepository
	Material   *MaterialRepository
	BOM        *BOMRepository
	Sales      *SalesRepository
	Target     *TargetRepository
	Prediction *PredictionRepository
	Request    *RequestRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Material:   NewMaterialRepository(db),
		BOM:        NewBOMRepository(db),
		Sales:      NewSalesRepository(db),
		Target:     NewTargetRepository(db),
		Prediction: NewPredictionRepository(db),
		Request:    NewRequestRepository(db),
	}
}
