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

var restaurantRows = []string{
    "id", "name", "description", "area", "address", "phone", "latitude", "longitude",
    "is_open", "opening_time", "closing_time", "average_rating", "total_reviews",
    "has_private_room", "has_smoking_zone", "has_prayer_zone", "capacity",
    "logo", "color_theme", "font_family", "wallpaper_url", "cuisines", "created_at",
}

var userRows = []string{
    "id", "email", "name", "phone", "institution_id", "preferred_areas", "reward_points", "created_at",
}

func restaurantRow() *sqlmock.Rows {
    return sqlmock.NewRows(restaurantRows).AddRow(
        7, "Campus Biryani House", "", "Shahbagh", "", "01712345678", 23.73, 90.39,
        true, "10:00:00", "22:30:00", 4.5, 12,
        true, false, true, 40,
        "", "#8B0000", "", "", `["bengali"]`, time.Now().UTC(),
    )
}

func userRow() *sqlmock.Rows {
    return sqlmock.NewRows(userRows).AddRow(
        3, "rafiq@du.ac.bd", "Rafiq", "", nil, `[]`, 120, time.Now().UTC(),
    )
}

func newBookingHandler(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    h := NewBookingHandler(
        repository.NewRestaurantRepo(db),
        repository.NewBookingRepo(db),
        repository.NewUserRepo(db),
        repository.NewGuestRepo(db),
    )
    return h, mock, func() { _ = db.Close() }
}

func postBooking(h *BookingHandler, body string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/restaurants/7/book", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.SetPath("/v1/restaurants/:id/book")
    c.SetParamNames("id")
    c.SetParamValues("7")
    _ = h.CreateBooking(c)
    return rec
}

func TestCreateBookingConflict(t *testing.T) {
    h, mock, done := newBookingHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE id = ?")).
        WithArgs(uint64(7)).WillReturnRows(restaurantRow())
    mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles WHERE id = ?")).
        WithArgs(uint64(3)).WillReturnRows(userRow())
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM restaurants WHERE id = ? FOR UPDATE")).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
    mock.ExpectRollback()

    body := `{"user_id":3,"seat_ids":["T1S1"],"start_time":"2025-03-01T18:00:00Z","end_time":"2025-03-01T20:00:00Z","payment_method":"cash"}`
    rec := postBooking(h, body)

    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "already booked")
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingBackToBackSucceeds(t *testing.T) {
    h, mock, done := newBookingHandler(t)
    defer done()

    // The new window starts exactly when an existing one ends; with
    // half-open semantics the conflict query reports zero rows.
    start := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
    end := start.Add(2 * time.Hour)

    mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE id = ?")).
        WithArgs(uint64(7)).WillReturnRows(restaurantRow())
    mock.ExpectQuery(regexp.QuoteMeta("FROM user_profiles WHERE id = ?")).
        WithArgs(uint64(3)).WillReturnRows(userRow())
    mock.ExpectBegin()
    mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM restaurants WHERE id = ? FOR UPDATE")).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
        WithArgs(uint64(7), end, start, "T1S1", "T1S2").
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
        WillReturnResult(sqlmock.NewResult(42, 1))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM bookings WHERE id = ?")).
        WithArgs(uint64(42)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now().UTC()))
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_seats")).
        WithArgs(uint64(42), "T1S1", uint64(42), "T1S2").
        WillReturnResult(sqlmock.NewResult(0, 2))
    mock.ExpectCommit()

    body := `{"user_id":3,"seat_ids":["T1S1","T1S2"],"start_time":"2025-03-01T20:00:00Z","end_time":"2025-03-01T22:00:00Z","customer_name":"Rafiq","customer_phone":"01712345678","payment_method":"bkash","total_amount":500}`
    rec := postBooking(h, body)

    assert.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"booking_id":42`)
    assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidation(t *testing.T) {
    h, _, done := newBookingHandler(t)
    defer done()

    // both identities
    rec := postBooking(h, `{"user_id":3,"guest_id":2,"seat_ids":["T1S1"],"start_time":"2025-03-01T18:00:00Z","end_time":"2025-03-01T20:00:00Z"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // no seats
    rec = postBooking(h, `{"user_id":3,"seat_ids":[],"start_time":"2025-03-01T18:00:00Z","end_time":"2025-03-01T20:00:00Z"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // start after end
    rec = postBooking(h, `{"user_id":3,"seat_ids":["T1S1"],"start_time":"2025-03-01T20:00:00Z","end_time":"2025-03-01T18:00:00Z"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // zero-length window
    rec = postBooking(h, `{"user_id":3,"seat_ids":["T1S1"],"start_time":"2025-03-01T18:00:00Z","end_time":"2025-03-01T18:00:00Z"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    // malformed timestamp
    rec = postBooking(h, `{"user_id":3,"seat_ids":["T1S1"],"start_time":"tomorrow","end_time":"2025-03-01T20:00:00Z"}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingRestaurantMissing(t *testing.T) {
    h, mock, done := newBookingHandler(t)
    defer done()

    mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants WHERE id = ?")).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows(restaurantRows))

    rec := postBooking(h, `{"user_id":3,"seat_ids":["T1S1"],"start_time":"2025-03-01T18:00:00Z","end_time":"2025-03-01T20:00:00Z"}`)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    require.NoError(t, mock.ExpectationsWereMet())
}
