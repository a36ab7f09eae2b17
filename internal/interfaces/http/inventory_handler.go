package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del recurso /inventory.
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear registro de inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryRequest  true  "name, quantity, restock_level, condition"
// @Success      201   {object}  dto.InventoryResponse
// @Header       201   {string}  Location  "URL del registro creado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	data, err := decodeBody(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), data)
	if err != nil {
		return err
	}
	c.Location(c.BaseURL() + "/inventory/" + strconv.FormatInt(out.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar registros de inventario
// @Description  Aplica un solo filtro con precedencia name > condition > need_restock.
// @Tags         inventory
// @Produce      json
// @Param        name          query  string  false  "Nombre exacto"
// @Param        condition     query  string  false  "new | used | slightly_used | unknown"
// @Param        need_restock  query  bool    false  "Solo registros con quantity <= restock_level"
// @Success      200  {array}   dto.InventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	filter := dto.InventoryFilter{
		Name:      c.Query("name"),
		Condition: c.Query("condition"),
	}
	if raw := c.Query("need_restock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewValidationError("need_restock", "'%s' no es un booleano válido", raw)
		}
		filter.NeedRestock = v
	}
	list, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener registro de inventario por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del registro"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return domain.ErrNotFound
	}
	out, err := h.uc.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if out == nil {
		return domain.ErrNotFound
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar registro de inventario
// @Description  El ID de la ruta manda sobre cualquier id del cuerpo.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del registro"
// @Param        body  body  dto.InventoryRequest  true  "name, quantity, restock_level, condition"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return domain.ErrNotFound
	}
	data, err := decodeBody(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, data)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro de inventario
// @Description  Idempotente: un ID inexistente también responde 204.
// @Tags         inventory
// @Param        id   path  int  true  "ID del registro"
// @Success      204
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if id, ok := pathID(c); ok {
		if err := h.uc.Delete(c.UserContext(), id); err != nil {
			return err
		}
	}
	c.Status(fiber.StatusNoContent)
	return nil
}

// IncreaseStock godoc
// @Summary      Aumentar stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del registro"
// @Param        body  body  dto.IncreaseStockRequest  true  "add_stock >= 0"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /inventory/{id}/increase [put]
func (h *InventoryHandler) IncreaseStock(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return domain.ErrNotFound
	}
	data, err := decodeBody(c)
	if err != nil {
		return err
	}
	out, err := h.uc.IncreaseStock(c.UserContext(), id, data)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// pathID ok=false si :id no es un entero.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeBody lee el cuerpo como objeto JSON conservando los números como json.Number,
// para distinguir 5 de 5.5 o "5" al validar.
func decodeBody(c *fiber.Ctx) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewValidationError("body", "el cuerpo está vacío")
		}
		return nil, domain.NewValidationError("body", "JSON inválido: %v", err)
	}
	if dec.More() {
		return nil, domain.NewValidationError("body", "JSON inválido: contenido adicional tras el objeto")
	}
	return data, nil
}
