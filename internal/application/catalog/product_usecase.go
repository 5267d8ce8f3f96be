// Package catalog cas d'usage CRUD des données de référence: produits,
// catégories, fournisseurs, clients. Le CMUP et le stock ne se modifient
// jamais ici: ils dérivent du grand livre de mouvements.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/application/dto"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/entity"
	"github.com/ndoreginald/Gestion-Strategique-Flux-Approvisionnement-sub001/internal/domain/repository"
)

// ProductUseCase CRUD des produits.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construit le cas d'usage.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crée un produit. Le CMUP démarre à 0 (première entrée de stock le fixera).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductDTO, error) {
	existing, err := uc.repo.GetByLabel(ctx, in.Label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() || in.MinStockThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Label:             in.Label,
		Barcode:           in.Barcode,
		CategoryID:        in.CategoryID,
		PurchasePrice:     in.PurchasePrice,
		SalePrice:         in.SalePrice,
		WeightedAvgCost:   decimal.Zero,
		MinStockThreshold: in.MinStockThreshold,
		Active:            true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// GetByID renvoie un produit par id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDTO, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductDTO(product), nil
}

// Update modifie un produit. Le CMUP n'est pas modifiable: il dérive du grand livre.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductDTO, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() || in.MinStockThreshold.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	product.Label = in.Label
	product.Barcode = in.Barcode
	product.CategoryID = in.CategoryID
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	product.MinStockThreshold = in.MinStockThreshold
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductDTO(product), nil
}

// List liste les produits par libellé.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ProductDTO, error) {
	page.DefaultPage()
	products, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}
	return out, nil
}

// Deactivate désactive un produit (jamais de suppression physique tant que
// des mouvements le référencent).
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.repo.Deactivate(ctx, id)
}

func toProductDTO(p *entity.Product) *dto.ProductDTO {
	return &dto.ProductDTO{
		ID:                p.ID,
		Label:             p.Label,
		Barcode:           p.Barcode,
		CategoryID:        p.CategoryID,
		PurchasePrice:     p.PurchasePrice,
		SalePrice:         p.SalePrice,
		WeightedAvgCost:   p.WeightedAvgCost,
		MinStockThreshold: p.MinStockThreshold,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
	}
}
