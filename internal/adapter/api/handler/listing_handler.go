package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/usecase"
	"github.com/fexraizen/lister-sub001/pkg/response"
	"github.com/fexraizen/lister-sub001/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

// getUserID returns the authenticated user ID, or "" on public routes where
// no token was presented.
func getUserID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

type vehicleSpecsRequest struct {
	Mileage  int `json:"mileage" validate:"gte=0"`
	TopSpeed int `json:"top_speed" validate:"gte=0"`
}

type createListingRequest struct {
	ShopID      string               `json:"shop_id"`
	Category    string               `json:"category" validate:"required,oneof=vehicle real_estate item service"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" validate:"required,gt=0"`
	Status      string               `json:"status" validate:"omitempty,oneof=active passive"`
	Vehicle     *vehicleSpecsRequest `json:"vehicle,omitempty"`
}

type updateListingRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Price       float64              `json:"price" validate:"required,gt=0"`
	Vehicle     *vehicleSpecsRequest `json:"vehicle,omitempty"`
}

func vehicleInput(req *vehicleSpecsRequest) *usecase.VehicleSpecsInput {
	if req == nil {
		return nil
	}
	return &usecase.VehicleSpecsInput{
		Mileage:  req.Mileage,
		TopSpeed: req.TopSpeed,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), uid, usecase.CreateListingInput{
		ShopID:      req.ShopID,
		Category:    req.Category,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Status:      req.Status,
		Vehicle:     vehicleInput(req.Vehicle),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req updateListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), uid, c.Param("id"), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Vehicle:     vehicleInput(req.Vehicle),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listing, err := h.listingUseCase.GetListing(c.Request().Context(), getUserID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) BrowseListings(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.BrowseListings(
		c.Request().Context(),
		c.QueryParam("category"),
		c.QueryParam("shop_id"),
		params.PageSize,
		(params.Page-1)*params.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, params.Page, params.PageSize)
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active passive out_of_stock"`
}

func (h *ListingHandler) ChangeStatus(c echo.Context) error {
	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.ChangeStatus(c.Request().Context(), uid, c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

type boostListingRequest struct {
	DurationHours int `json:"duration_hours" validate:"required,gt=0,lte=168"`
}

func (h *ListingHandler) BoostListing(c echo.Context) error {
	var req boostListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.BoostListing(c.Request().Context(), uid, c.Param("id"), time.Duration(req.DurationHours)*time.Hour)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

type transferListingRequest struct {
	ShopID string `json:"shop_id" validate:"required"`
}

func (h *ListingHandler) TransferToShop(c echo.Context) error {
	var req transferListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	listing, err := h.listingUseCase.TransferToShop(c.Request().Context(), uid, c.Param("id"), req.ShopID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListMine(
		c.Request().Context(),
		uid,
		c.QueryParam("status"),
		params.PageSize,
		(params.Page-1)*params.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, params.Page, params.PageSize)
}

func (h *ListingHandler) ListShopListings(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListByShop(
		c.Request().Context(),
		c.Param("id"),
		params.PageSize,
		(params.Page-1)*params.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, params.Page, params.PageSize)
}

func (h *ListingHandler) GetPermissions(c echo.Context) error {
	permissions, err := h.listingUseCase.Permissions(c.Request().Context(), getUserID(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, permissions)
}
