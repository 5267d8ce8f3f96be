package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

// CategoryUseCase CRUD des catégories.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construit le cas d'usage.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crée une catégorie.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*entity.Category, error) {
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID renvoie une catégorie par id.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List liste les catégories.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Category, error) {
	page.DefaultPage()
	return uc.repo.List(ctx, page.Limit, page.Offset)
}

// SupplierUseCase CRUD des fournisseurs.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construit le cas d'usage.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crée un fournisseur.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.PartyRequest) (*entity.Supplier, error) {
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID renvoie un fournisseur par id.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List liste les fournisseurs.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Supplier, error) {
	page.DefaultPage()
	return uc.repo.List(ctx, page.Limit, page.Offset)
}

// ClientUseCase CRUD des clients.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construit le cas d'usage.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crée un client.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.PartyRequest) (*entity.Client, error) {
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID renvoie un client par id.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List liste les clients.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Client, error) {
	page.DefaultPage()
	return uc.repo.List(ctx, page.Limit, page.Offset)
}
