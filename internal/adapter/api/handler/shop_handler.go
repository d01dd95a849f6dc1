package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/usecase"
	"github.com/fexraizen/lister-sub001/pkg/response"
)

type ShopHandler struct {
	shopUseCase *usecase.ShopUseCase
}

func NewShopHandler(shopUseCase *usecase.ShopUseCase) *ShopHandler {
	return &ShopHandler{
		shopUseCase: shopUseCase,
	}
}

type createShopRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Phone       string `json:"phone"`
}

func (h *ShopHandler) CreateShop(c echo.Context) error {
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	shop, err := h.shopUseCase.CreateShop(c.Request().Context(), uid, usecase.CreateShopInput{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Phone:       req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, shop)
}

func (h *ShopHandler) GetShop(c echo.Context) error {
	shop, err := h.shopUseCase.GetShop(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, shop)
}

func (h *ShopHandler) UpdateShop(c echo.Context) error {
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	shop, err := h.shopUseCase.UpdateShop(c.Request().Context(), uid, c.Param("id"), usecase.UpdateShopInput{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Phone:       req.Phone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, shop)
}

func (h *ShopHandler) DeleteShop(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.shopUseCase.DeleteShop(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

type addMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func (h *ShopHandler) AddMember(c echo.Context) error {
	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	membership, err := h.shopUseCase.AddMember(c.Request().Context(), uid, c.Param("id"), usecase.AddMemberInput{
		UserID: req.UserID,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, membership)
}

func (h *ShopHandler) RemoveMember(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.shopUseCase.RemoveMember(c.Request().Context(), uid, c.Param("id"), c.Param("userId")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "removed"})
}

func (h *ShopHandler) ListMembers(c echo.Context) error {
	uid := c.Get("uid").(string)

	members, err := h.shopUseCase.ListMembers(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, members)
}

func (h *ShopHandler) ListMyShops(c echo.Context) error {
	uid := c.Get("uid").(string)

	shops, err := h.shopUseCase.ListMyShops(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, shops)
}
