package dto

import "github.com/jhoicas/inventory-service/internal/domain/entity"

// InventoryRequest body para POST /inventory y PUT /inventory/{id}.
// Solo documenta el contrato: el handler decodifica a un mapa sin tipo para poder
// distinguir campos ausentes de valores con tipo incorrecto.
type InventoryRequest struct {
	Name         string `json:"name" example:"paper"`
	Quantity     int    `json:"quantity" example:"100"`
	RestockLevel int    `json:"restock_level" example:"50"`
	Condition    string `json:"condition" enums:"new,used,slightly_used,unknown" example:"new"`
}

// IncreaseStockRequest body para PUT /inventory/{id}/increase.
type IncreaseStockRequest struct {
	AddStock int `json:"add_stock" example:"50"`
}

// InventoryResponse representación serializada de un registro de inventario.
type InventoryResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	Condition    string `json:"condition"`
	RestockLevel int    `json:"restock_level"`
}

// InventoryFilter parámetros opcionales de GET /inventory.
// Se evalúan en orden: Name, Condition, NeedRestock; sin filtros se listan todos.
type InventoryFilter struct {
	Name        string
	Condition   string
	NeedRestock bool
}

// ToInventoryResponse serializa la entidad con condition como su nombre.
func ToInventoryResponse(inv *entity.Inventory) *InventoryResponse {
	if inv == nil {
		return nil
	}
	return &InventoryResponse{
		ID:           inv.ID,
		Name:         inv.Name,
		Quantity:     inv.Quantity,
		Condition:    inv.Condition.String(),
		RestockLevel: inv.RestockLevel,
	}
}

// ToInventoryList serializa una lista; nunca devuelve nil para que el JSON sea [].
func ToInventoryList(list []*entity.Inventory) []InventoryResponse {
	items := make([]InventoryResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInventoryResponse(inv))
	}
	return items
}
