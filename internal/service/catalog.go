package service

import (
	"context"
	"fmt"

	"atelier-backend/internal/domain"
	"atelier-backend/internal/repository"
)

type catalogService struct {
	catalogRepo repository.CatalogRepository
	serviceRepo repository.SalonServiceRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository, serviceRepo repository.SalonServiceRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo, serviceRepo: serviceRepo}
}

func (s *catalogService) CreateDefinition(ctx context.Context, scope domain.CallerScope, def *domain.CatalogItem) error {
	if def.Name == "" {
		return domain.NewValidationError("name", "model name is required")
	}
	if !def.Department.Valid() {
		return domain.NewValidationError("department", "unknown department")
	}
	if def.RentalPrice < 0 || def.DepositAmount < 0 {
		return domain.NewValidationError("amounts", "prices must not be negative")
	}
	// Creating stock in a department the caller cannot access is denied
	// outright, never silently ignored.
	if !scope.AllowsDepartment(def.Department) {
		return domain.ErrUnauthorized
	}
	return s.catalogRepo.CreateDefinition(ctx, def)
}

func (s *catalogService) CreateItem(ctx context.Context, scope domain.CallerScope, item *domain.InventoryItem) error {
	def, err := s.catalogRepo.GetDefinition(ctx, item.CatalogItemID)
	if err != nil {
		return fmt.Errorf("loading catalog definition %d: %w", item.CatalogItemID, err)
	}
	if !scope.AllowsDepartment(def.Department) {
		return domain.ErrUnauthorized
	}
	if item.BranchID == nil {
		item.BranchID = scope.BranchID
	}
	if !scope.AllowsBranch(item.BranchID) {
		return domain.ErrUnauthorized
	}
	if item.Size == "" {
		return domain.NewValidationError("size", "size is required")
	}
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}
	return s.catalogRepo.CreateItem(ctx, item)
}

func (s *catalogService) ListDefinitions(ctx context.Context, scope domain.CallerScope) ([]domain.CatalogItem, error) {
	departments := scope.Departments.Slice()
	if len(departments) == 0 {
		return nil, nil
	}
	return s.catalogRepo.ListDefinitions(ctx, departments)
}

func (s *catalogService) ListItems(ctx context.Context, scope domain.CallerScope) ([]domain.InventoryItem, error) {
	departments := scope.Departments.Slice()
	if len(departments) == 0 {
		return nil, nil
	}
	return s.catalogRepo.ListItems(ctx, scope.BranchID, departments)
}

func (s *catalogService) CreateSalonService(ctx context.Context, scope domain.CallerScope, svc *domain.SalonService) error {
	if !scope.AllowsDepartment(domain.DepartmentBeautySalon) {
		return domain.ErrUnauthorized
	}
	if svc.Name == "" {
		return domain.NewValidationError("name", "service name is required")
	}
	if svc.Price < 0 {
		return domain.NewValidationError("price", "price must not be negative")
	}
	if svc.BranchID == nil {
		svc.BranchID = scope.BranchID
	}
	if !scope.AllowsBranch(svc.BranchID) {
		return domain.ErrUnauthorized
	}
	return s.serviceRepo.Create(ctx, svc)
}

func (s *catalogService) ListSalonServices(ctx context.Context, scope domain.CallerScope) ([]domain.SalonService, error) {
	if !scope.AllowsDepartment(domain.DepartmentBeautySalon) {
		return nil, nil
	}
	return s.serviceRepo.List(ctx, scope.BranchID)
}
