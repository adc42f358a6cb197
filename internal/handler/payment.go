package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "campus-table/internal/payment"
)

// PaymentHandler exposes the format-level payment validator.  It holds
// no state; validation is pure and nothing is persisted or charged.
type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type validatePaymentReq struct {
    Method      string `json:"method"`
    Phone       string `json:"phone"`
    PIN         string `json:"pin"`
    CardNumber  string `json:"card_number"`
    ExpiryMonth string `json:"expiry_month"`
    ExpiryYear  string `json:"expiry_year"`
}

// Validate handles POST /v1/payment/validate.  Mobile wallets (bkash,
// nagad) require a Bangladesh mobile number and a 4-digit PIN.  Cards
// require a 16-digit Luhn-valid number, an unexpired two-digit expiry
// and a 4-digit PIN.  Cash needs no fields.  The verdict is returned in
// the body with a 200 status either way; only a malformed request or an
// unknown method is a 400.
func (h *PaymentHandler) Validate(c echo.Context) error {
    var req validatePaymentReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    method := strings.ToLower(strings.TrimSpace(req.Method))
    switch method {
    case "bkash", "nagad":
        if !payment.ValidBDPhone(strings.TrimSpace(req.Phone)) {
            return c.JSON(http.StatusOK, echo.Map{"valid": false, "reason": "Invalid mobile number"})
        }
        if !payment.ValidPIN(req.PIN) {
            return c.JSON(http.StatusOK, echo.Map{"valid": false, "reason": "Invalid PIN"})
        }
        return c.JSON(http.StatusOK, echo.Map{"valid": true, "reason": "Valid"})
    case "card":
        ok, reason := payment.ValidateCard(
            strings.ReplaceAll(strings.TrimSpace(req.CardNumber), " ", ""),
            strings.TrimSpace(req.ExpiryMonth),
            strings.TrimSpace(req.ExpiryYear),
            req.PIN,
            time.Now(),
        )
        return c.JSON(http.StatusOK, echo.Map{"valid": ok, "reason": reason})
    case "cash":
        return c.JSON(http.StatusOK, echo.Map{"valid": true, "reason": "Valid"})
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment method"})
    }
}
