// Package catalog contiene los casos de uso de mutación del catálogo. Las
// lecturas viven en query (cacheadas).
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/application/ports"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	domcatalog "github.com/jhoicas/Trazabilidad-api/internal/domain/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

// Reconciler puerto hacia la creación de registros derivados faltantes.
type Reconciler interface {
	EnsureLevels(ctx context.Context) error
}

// UseCase altas y bajas del catálogo, con la sincronización derivada a cuestas:
// cada alta corre el reconciliador de forma síncrona para que el producto sea
// visible de inmediato en el resumen; cada baja arrastra su registro de
// existencias.
type UseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockLevelRepository
	reconciler  Reconciler
	cache       ports.Cache
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	stockRepo repository.StockLevelRepository,
	reconciler Reconciler,
	cache ports.Cache,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{productRepo: productRepo, stockRepo: stockRepo, reconciler: reconciler, cache: cache, log: log}
}

// AddProduct da de alta un producto. El ID debe ser único y además libre de
// prefijos respecto al resto del catálogo: si un ID fuera prefijo de otro, la
// resolución de seriales se volvería ambigua.
func (uc *UseCase) AddProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: id y name son obligatorios", domain.ErrInvalidInput)
	}
	if in.UnitCost.IsNegative() || in.ReorderLevel < 0 || in.ReorderQuantity < 0 || in.ShelfLifeDays < 0 {
		return nil, fmt.Errorf("%w: los campos numéricos no admiten negativos", domain.ErrInvalidInput)
	}

	existing, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("leer catálogo: %w", err)
	}
	for _, p := range existing {
		if p.ID == id {
			return nil, fmt.Errorf("%w: el producto %s ya existe", domain.ErrDuplicate, id)
		}
	}
	if conflict := domcatalog.CheckPrefixFree(existing, id); conflict != "" {
		return nil, fmt.Errorf("%w: el id %s entra en conflicto de prefijo con %s", domain.ErrConflict, id, conflict)
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:              id,
		Name:            strings.TrimSpace(in.Name),
		Category:        strings.TrimSpace(in.Category),
		UnitOfMeasure:   strings.TrimSpace(in.UnitOfMeasure),
		UnitCost:        in.UnitCost,
		SupplierName:    strings.TrimSpace(in.SupplierName),
		ReorderLevel:    in.ReorderLevel,
		ReorderQuantity: in.ReorderQuantity,
		StorageLocation: strings.TrimSpace(in.StorageLocation),
		ShelfLifeDays:   in.ShelfLifeDays,
		IsPerishable:    in.IsPerishable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	// Reconciliación síncrona: el alta debe verse en el resumen sin esperar al
	// primer escaneo.
	if err := uc.reconciler.EnsureLevels(ctx); err != nil {
		return nil, fmt.Errorf("sincronizar existencias tras el alta: %w", err)
	}

	uc.cache.Invalidate(ctx, ports.CacheKeyProducts, ports.CacheKeySummary)
	uc.log.Info().Str("product_id", id).Msg("producto dado de alta")
	return toProductResponse(product), nil
}

// DeleteProduct elimina el producto y, en cascada, su registro de existencias.
// Los seriales que le apuntaban pasan a quedar sin resolver.
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id obligatorio", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("leer producto: %w", err)
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if err := uc.productRepo.Delete(id); err != nil {
		return fmt.Errorf("borrar producto: %w", err)
	}
	if err := uc.stockRepo.Delete(id); err != nil {
		return fmt.Errorf("borrar existencias del producto: %w", err)
	}
	uc.cache.Invalidate(ctx, ports.CacheKeyProducts, ports.CacheKeySummary)
	uc.log.Info().Str("product_id", id).Msg("producto eliminado con su registro de existencias")
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		UnitOfMeasure:   p.UnitOfMeasure,
		UnitCost:        p.UnitCost,
		SupplierName:    p.SupplierName,
		ReorderLevel:    p.ReorderLevel,
		ReorderQuantity: p.ReorderQuantity,
		StorageLocation: p.StorageLocation,
		ShelfLifeDays:   p.ShelfLifeDays,
		IsPerishable:    p.IsPerishable,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
