package handler

import (
	"github.com/gin-gonic/gin"

	appinventory "github.com/xiebiao/aptcare/internal/application/inventory"
	"github.com/xiebiao/aptcare/internal/domain/inventory"
	"github.com/xiebiao/aptcare/internal/interface/http/dto"
	"github.com/xiebiao/aptcare/internal/interface/http/middleware"
	"github.com/xiebiao/aptcare/pkg/response"
)

// InventoryHandler 库存分类与物品
type InventoryHandler struct {
	items      *appinventory.ItemUseCase
	categories *appinventory.CategoryUseCase
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(items *appinventory.ItemUseCase, categories *appinventory.CategoryUseCase) *InventoryHandler {
	return &InventoryHandler{
		items:      items,
		categories: categories,
	}
}

// =========================================
// 分类
// =========================================

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]inventory.CategoryInfo}
// @Router       /api/v1/inventory/categories [get]
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	list, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// CreateCategory 创建分类
// @Summary      创建分类
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=inventory.CategoryInfo}
// @Failure      200 {object} response.Response "40009分类名称已存在"
// @Router       /api/v1/inventory/categories [post]
func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.categories.Create(c.Request.Context(), appinventory.CreateCategoryRequest{
		Name:         req.Name,
		Description:  req.Description,
		IsConsumable: req.IsConsumable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// =========================================
// 物品
// =========================================

// ListItems 物品列表
// @Summary      物品列表
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        apartment_id query int false "公寓ID"
// @Param        category_id query int false "分类ID"
// @Param        low_stock query bool false "仅库存不足（quantity <= min_quantity）"
// @Success      200 {object} response.Response{data=[]inventory.ItemInfo}
// @Router       /api/v1/inventory/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	var query dto.ListItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, err)
		return
	}

	list, err := h.items.List(c.Request.Context(), inventory.ListParams{
		ApartmentID: query.ApartmentID,
		CategoryID:  query.CategoryID,
		LowStock:    query.LowStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetItem 物品详情
// @Summary      物品详情
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "物品ID"
// @Success      200 {object} response.Response{data=inventory.ItemInfo}
// @Failure      200 {object} response.Response "40403库存物品不存在"
// @Router       /api/v1/inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// CreateItem 创建物品（初始数量不写台账）
// @Summary      创建物品
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateItemRequest true "物品信息"
// @Success      200 {object} response.Response{data=inventory.ItemInfo}
// @Router       /api/v1/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	info, err := h.items.Create(c.Request.Context(), appinventory.CreateItemRequest{
		ApartmentID: req.ApartmentID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Unit:        req.Unit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// UpdateItem 修改物品
// @Summary      修改物品 / 数量变更
// @Description  带quantity时在一个事务内：锁定物品、写台账、按变更前的阈值判断是否新建low_stock告警、更新数量
// @Description  同一物品同时只有一条未处理的low_stock告警；数量回升不会自动处理告警
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "物品ID"
// @Param        request body dto.UpdateItemRequest true "修改内容"
// @Success      200 {object} response.Response{data=inventory.QuantityChangeInfo}
// @Failure      200 {object} response.Response "40900数量不能为负数 / 40010并发冲突，请重试"
// @Router       /api/v1/inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	// 未指定操作人时记为当前登录用户
	actorID := req.UserID
	if actorID == nil {
		if uid := middleware.GetUserID(c); uid != 0 {
			actorID = &uid
		}
	}

	info, err := h.items.Update(c.Request.Context(), appinventory.UpdateItemRequest{
		ItemID:   id,
		Quantity: req.Quantity,
		Changes: inventory.ItemChanges{
			Name:        req.Name,
			Description: req.Description,
			Unit:        req.Unit,
			MinQuantity: req.MinQuantity,
			CategoryID:  req.CategoryID,
		},
		ActorID: actorID,
		Reason:  req.ChangeReason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// DeleteItem 删除物品
// @Summary      删除物品
// @Description  存在未处理告警时拒绝删除
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "物品ID"
// @Success      200 {object} response.Response
// @Failure      200 {object} response.Response "40013物品存在未处理告警"
// @Router       /api/v1/inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// History 物品数量变更历史
// @Summary      数量变更历史
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "物品ID"
// @Success      200 {object} response.Response{data=[]inventory.HistoryInfo}
// @Router       /api/v1/inventory/items/{id}/history [get]
func (h *InventoryHandler) History(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.items.History(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
