package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/usecase"
	"github.com/fexraizen/lister-sub001/pkg/response"
)

type WalletHandler struct {
	walletUseCase *usecase.WalletUseCase
}

func NewWalletHandler(walletUseCase *usecase.WalletUseCase) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
	}
}

func (h *WalletHandler) GetBalance(c echo.Context) error {
	uid := c.Get("uid").(string)

	balance, err := h.walletUseCase.GetBalance(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, balance)
}

type topupRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *WalletHandler) Topup(c echo.Context) error {
	var req topupRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	balance, err := h.walletUseCase.Topup(c.Request().Context(), uid, usecase.TopupInput{
		Amount: req.Amount,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, balance)
}
