package handler

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "regexp"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "campus-table/internal/repository"
)

func newOrderHandler(t *testing.T) (*OrderHandler, sqlmock.Sqlmock, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    h := NewOrderHandler(
        repository.NewOrderRepo(db),
        repository.NewMenuRepo(db),
        repository.NewUserRepo(db),
        repository.NewGuestRepo(db),
        repository.NewRestaurantRepo(db),
    )
    return h, mock, func() { _ = db.Close() }
}

func postOrder(h *OrderHandler, body string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    _ = h.CreateOrder(e.NewContext(req, rec))
    return rec
}

func TestCreateOrderCashWaivesFee(t *testing.T) {
    h, mock, done := newOrderHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE id = ?")).
        WithArgs(uint64(7)).WillReturnRows(restaurantRow())
    mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles WHERE id = ?")).
        WithArgs(uint64(3)).WillReturnRows(userRow())
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, price FROM menu_items WHERE id IN")).
        WithArgs(uint64(21), uint64(22)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(21, 280.0).AddRow(22, 40.0))
    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
        WillReturnResult(sqlmock.NewResult(91, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
        WillReturnResult(sqlmock.NewResult(0, 2))
    // subtotal 280*2 + 40 = 600, cash so no fee, 6 reward points
    mock.ExpectExec(regexp.QuoteMeta("UPDATE user_profiles SET reward_points = reward_points + ?")).
        WithArgs(int64(6), uint64(3)).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    body := `{"user_id":3,"restaurant_id":7,"payment_method":"cash","items":[{"menu_item_id":21,"quantity":2},{"menu_item_id":22,"quantity":1}]}`
    rec := postOrder(h, body)

    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    var resp map[string]interface{}
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, float64(600), resp["subtotal"])
    assert.Equal(t, float64(0), resp["delivery_fee"])
    assert.Equal(t, float64(600), resp["total_amount"])
    assert.Equal(t, float64(6), resp["reward_points_earned"])
    assert.Equal(t, "pending", resp["payment_status"])
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderDigitalPaymentChargesFee(t *testing.T) {
    h, mock, done := newOrderHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE id = ?")).
        WithArgs(uint64(7)).WillReturnRows(restaurantRow())
    mock.ExpectQuery(regexp.QuoteMeta("FROM guest_sessions WHERE id = ?")).
        WithArgs(uint64(5)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "session_id", "phone", "email", "created_at"}).
            AddRow(5, "b3b9dd0e-4a15-4b43-a5a1-2f6f4f1f9d11", "", "", time.Now().UTC()))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, price FROM menu_items WHERE id IN")).
        WithArgs(uint64(21)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "price"}).AddRow(21, 160.0))
    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orders")).
        WillReturnResult(sqlmock.NewResult(92, 1))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_items")).
        WillReturnResult(sqlmock.NewResult(0, 1))
    // guests never earn points, so no update on user_profiles
    mock.ExpectCommit()

    body := `{"guest_id":5,"restaurant_id":7,"payment_method":"bkash","items":[{"menu_item_id":21,"quantity":1}]}`
    rec := postOrder(h, body)

    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    var resp map[string]interface{}
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, float64(160), resp["subtotal"])
    assert.Equal(t, float64(50), resp["delivery_fee"])
    assert.Equal(t, float64(210), resp["total_amount"])
    assert.Equal(t, "paid", resp["payment_status"])
    _, hasPoints := resp["reward_points_earned"]
    assert.False(t, hasPoints)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderUnknownMenuItem(t *testing.T) {
    h, mock, done := newOrderHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE id = ?")).
        WithArgs(uint64(7)).WillReturnRows(restaurantRow())
    mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles WHERE id = ?")).
        WithArgs(uint64(3)).WillReturnRows(userRow())
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id, price FROM menu_items WHERE id IN")).
        WithArgs(uint64(999)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "price"}))

    body := `{"user_id":3,"restaurant_id":7,"payment_method":"cash","items":[{"menu_item_id":999,"quantity":1}]}`
    rec := postOrder(h, body)

    assert.Equal(t, http.StatusNotFound, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderValidation(t *testing.T) {
    h, _, done := newOrderHandler(t)
    defer done()

    // no identity
    rec := postOrder(h, `{"restaurant_id":7,"payment_method":"cash","items":[{"menu_item_id":1,"quantity":1}]}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // unknown payment method
    rec = postOrder(h, `{"user_id":3,"restaurant_id":7,"payment_method":"cheque","items":[{"menu_item_id":1,"quantity":1}]}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // zero quantity
    rec = postOrder(h, `{"user_id":3,"restaurant_id":7,"payment_method":"cash","items":[{"menu_item_id":1,"quantity":0}]}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // empty items
    rec = postOrder(h, `{"user_id":3,"restaurant_id":7,"payment_method":"cash","items":[]}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
