package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func postValidate(t *testing.T, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/payment/validate", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    require.NoError(t, NewPaymentHandler().Validate(e.NewContext(req, rec)))

    var resp map[string]interface{}
    if rec.Code == http.StatusOK {
        require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    }
    return rec, resp
}

func TestValidateWallet(t *testing.T) {
    rec, resp := postValidate(t, `{"method":"bkash","phone":"01712345678","pin":"1234"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, resp["valid"])

    rec, resp = postValidate(t, `{"method":"nagad","phone":"02712345678","pin":"1234"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, false, resp["valid"])
    assert.Equal(t, "Invalid mobile number", resp["reason"])

    rec, resp = postValidate(t, `{"method":"bkash","phone":"01712345678","pin":"12"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, false, resp["valid"])
    assert.Equal(t, "Invalid PIN", resp["reason"])
}

func TestValidateCardEndpoint(t *testing.T) {
    // spaces inside the card number are tolerated
    rec, resp := postValidate(t, `{"method":"card","card_number":"4532 0151 1283 0366","expiry_month":"12","expiry_year":"99","pin":"1234"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, resp["valid"])

    rec, resp = postValidate(t, `{"method":"card","card_number":"4532015112830367","expiry_month":"12","expiry_year":"99","pin":"1234"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, false, resp["valid"])
    assert.Equal(t, "Invalid card number", resp["reason"])
}

func TestValidateUnknownMethod(t *testing.T) {
    rec, _ := postValidate(t, `{"method":"cheque"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateCash(t *testing.T) {
    rec, resp := postValidate(t, `{"method":"cash"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, resp["valid"])
}
