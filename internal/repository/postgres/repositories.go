package postgres

import "github.com/omarembaby39-afk/UMQASR-RO/internal/repository"

// Repositories bundles every store backed by one DB.
type Repositories struct {
	Readings     repository.ReadingRepository
	Cartridges   repository.CartridgeRepository
	Chemicals    repository.ChemicalRepository
	Flowmeter    repository.FlowmeterRepository
	Production   repository.ProductionRepository
	Maintenance  repository.MaintenanceRepository
	Todos        repository.TodoRepository
	WaterQuality repository.WaterQualityRepository
}

func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Readings:     NewReadingRepository(db),
		Cartridges:   NewCartridgeRepository(db),
		Chemicals:    NewChemicalRepository(db),
		Flowmeter:    NewFlowmeterRepository(db),
		Production:   NewProductionRepository(db),
		Maintenance:  NewMaintenanceRepository(db),
		Todos:        NewTodoRepository(db),
		WaterQuality: NewWaterQualityRepository(db),
	}
}
