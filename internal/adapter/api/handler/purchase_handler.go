package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/usecase"
	"github.com/fexraizen/lister-sub001/pkg/response"
	"github.com/fexraizen/lister-sub001/pkg/utils"
)

type PurchaseHandler struct {
	purchaseUseCase *usecase.PurchaseUseCase
}

func NewPurchaseHandler(purchaseUseCase *usecase.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseUseCase: purchaseUseCase,
	}
}

// purchaseRequest carries the price the buyer saw, so a concurrent price
// change fails the purchase instead of charging a surprise amount.
type purchaseRequest struct {
	ListingID     string  `json:"listing_id" validate:"required"`
	ExpectedPrice float64 `json:"expected_price" validate:"required,gt=0"`
}

func (h *PurchaseHandler) Purchase(c echo.Context) error {
	var req purchaseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	receipt, err := h.purchaseUseCase.Purchase(c.Request().Context(), uid, req.ListingID, req.ExpectedPrice)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, receipt)
}

func (h *PurchaseHandler) GetReceipt(c echo.Context) error {
	uid := c.Get("uid").(string)

	receipt, err := h.purchaseUseCase.GetReceipt(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, receipt)
}

func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	receipts, total, err := h.purchaseUseCase.ListPurchases(
		c.Request().Context(),
		uid,
		params.PageSize,
		(params.Page-1)*params.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, receipts, total, params.Page, params.PageSize)
}

func (h *PurchaseHandler) ListSales(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	receipts, total, err := h.purchaseUseCase.ListSales(
		c.Request().Context(),
		uid,
		params.PageSize,
		(params.Page-1)*params.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, receipts, total, params.Page, params.PageSize)
}
