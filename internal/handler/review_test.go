package handler

import (
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

var orderRows = []string{
    "id", "user_id", "guest_session_id", "restaurant_id", "subtotal", "discount_amount",
    "delivery_fee", "total_amount", "payment_method", "payment_status", "status",
    "delivery_contact", "rider_name", "rider_phone", "special_instructions", "booking_id", "created_at",
}

func orderRow(userID interface{}, guestID interface{}, status string) *sqlmock.Rows {
    return sqlmock.NewRows(orderRows).AddRow(
        91, userID, guestID, 7, 600.0, 0.0, 0.0, 600.0,
        "cash", "paid", status, `{}`, "Rakib Hasan", "01712345678", "", nil, time.Now().UTC(),
    )
}

func newReviewHandler(t *testing.T) (*ReviewHandler, sqlmock.Sqlmock, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    h := NewReviewHandler(
        repository.NewOrderRepo(db),
        repository.NewReviewRepo(db),
        repository.NewRestaurantRepo(db),
    )
    return h, mock, func() { _ = db.Close() }
}

func postReview(h *ReviewHandler, body string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/orders/91/review", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath("/v1/orders/:id/review")
    c.SetParamNames("id")
    c.SetParamValues("91")
    _ = h.CreateReview(c)
    return rec
}

func TestCreateReviewSuccess(t *testing.T) {
    h, mock, done := newReviewHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = ?")).
        WithArgs(uint64(91)).WillReturnRows(orderRow(3, nil, "delivered"))
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews WHERE user_id = ? AND order_id = ?")).
        WithArgs(uint64(3), uint64(91)).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reviews")).
        WillReturnResult(sqlmock.NewResult(12, 1))
    mock.ExpectExec(regexp.QuoteMeta("UPDATE restaurants")).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()

    rec := postReview(h, `{"user_id":3,"rating":5,"text":"Great kacchi"}`)
    assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewDuplicate(t *testing.T) {
    h, mock, done := newReviewHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = ?")).
        WithArgs(uint64(91)).WillReturnRows(orderRow(3, nil, "delivered"))
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reviews WHERE user_id = ? AND order_id = ?")).
        WithArgs(uint64(3), uint64(91)).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
    mock.ExpectRollback()

    rec := postReview(h, `{"user_id":3,"rating":4}`)
    assert.Equal(t, http.StatusConflict, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewGuestOrderForbidden(t *testing.T) {
    h, mock, done := newReviewHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = ?")).
        WithArgs(uint64(91)).WillReturnRows(orderRow(nil, 5, "delivered"))

    rec := postReview(h, `{"user_id":3,"rating":4}`)
    assert.Equal(t, http.StatusForbidden, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewUndelivered(t *testing.T) {
    h, mock, done := newReviewHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = ?")).
        WithArgs(uint64(91)).WillReturnRows(orderRow(3, nil, "preparing"))

    rec := postReview(h, `{"user_id":3,"rating":4}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewBadRating(t *testing.T) {
    h, _, done := newReviewHandler(t)
    defer done()

    rec := postReview(h, `{"user_id":3,"rating":6}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = postReview(h, `{"user_id":3,"rating":0}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
