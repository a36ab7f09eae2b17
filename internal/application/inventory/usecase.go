package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	domaininv "github.com/jhoicas/inventory-service/internal/domain/inventory"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

// InventoryUseCase casos de uso CRUD y consultas para registros de inventario.
// Update e IncreaseStock corren dentro de una transacción con la fila bloqueada.
type InventoryUseCase struct {
	repo     repository.InventoryRepository
	txRunner TxRunner
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository, txRunner TxRunner) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, txRunner: txRunner}
}

// Create valida data y persiste un nuevo registro; el almacén asigna el ID.
func (uc *InventoryUseCase) Create(ctx context.Context, data map[string]any) (*dto.InventoryResponse, error) {
	inv, err := domaininv.Build(data)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if err := uc.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(inv), nil
}

// FindByID devuelve (nil, nil) si el registro no existe.
func (uc *InventoryUseCase) FindByID(ctx context.Context, id int64) (*dto.InventoryResponse, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, nil
	}
	return dto.ToInventoryResponse(inv), nil
}

// Update reemplaza name, quantity, condition y restock_level. El ID de la ruta manda.
// Devuelve domain.ErrNotFound si no existe y *domain.ValidationError si data es inválido.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, data map[string]any) (*dto.InventoryResponse, error) {
	var out *entity.Inventory
	err := uc.txRunner.Run(ctx, func(repo repository.InventoryRepository) error {
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		inv, err := domaininv.Build(data)
		if err != nil {
			return err
		}
		inv.ID = current.ID
		inv.CreatedAt = current.CreatedAt
		inv.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(out), nil
}

// IncreaseStock suma add_stock a la cantidad actual.
// add_stock ausente o no entero se rechaza antes de buscar el registro; negativo, después.
func (uc *InventoryUseCase) IncreaseStock(ctx context.Context, id int64, data map[string]any) (*dto.InventoryResponse, error) {
	delta, err := domaininv.StockDelta(data)
	if err != nil {
		return nil, err
	}
	var out *entity.Inventory
	err = uc.txRunner.Run(ctx, func(repo repository.InventoryRepository) error {
		inv, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := inv.IncreaseStock(delta); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, inv); err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryResponse(out), nil
}

// Delete elimina el registro. Borrar un ID inexistente no es error.
func (uc *InventoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List aplica un único filtro con precedencia name > condition > need_restock; sin filtros lista todo.
func (uc *InventoryUseCase) List(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryResponse, error) {
	var (
		list []*entity.Inventory
		err  error
	)
	switch {
	case filter.Name != "":
		list, err = uc.FindByName(ctx, filter.Name)
	case filter.Condition != "":
		condition, ok := entity.ParseCondition(filter.Condition)
		if !ok {
			return nil, domain.NewValidationError(domaininv.FieldCondition,
				"'%s' no es válido, debe ser uno de: new, used, slightly_used, unknown", filter.Condition)
		}
		list, err = uc.FindByCondition(ctx, condition)
	case filter.NeedRestock:
		list, err = uc.FindByNeedRestock(ctx)
	default:
		list, err = uc.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return dto.ToInventoryList(list), nil
}

// FindAll devuelve todos los registros ordenados por ID.
func (uc *InventoryUseCase) FindAll(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.repo.List(ctx)
}

// FindByName coincidencia exacta, distingue mayúsculas.
func (uc *InventoryUseCase) FindByName(ctx context.Context, name string) ([]*entity.Inventory, error) {
	return uc.repo.ListByName(ctx, name)
}

func (uc *InventoryUseCase) FindByCondition(ctx context.Context, condition entity.Condition) ([]*entity.Inventory, error) {
	return uc.repo.ListByCondition(ctx, condition)
}

// FindByNeedRestock registros con quantity <= restock_level.
func (uc *InventoryUseCase) FindByNeedRestock(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.repo.ListNeedingRestock(ctx)
}

// Ping verifica la conectividad con el almacén (usado por /health).
func (uc *InventoryUseCase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}
