package repository

import (
    "context"
    "regexp"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*BookingRepo, sqlmock.Sqlmock, func()) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    return NewBookingRepo(db), mock, func() { _ = db.Close() }
}

func TestHasConflictTxArgOrder(t *testing.T) {
    repo, mock, done := newMock(t)
    defer done()

    start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
    end := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

    mock.ExpectBegin()
    // Half-open overlap: existing.start < end AND existing.end > start.
    // The query must receive end before start, then the seat codes.
    mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
        WithArgs(uint64(7), end, start, "T1S1", "T1S2").
        WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

    tx, err := repo.DB().BeginTx(context.Background(), nil)
    require.NoError(t, err)

    conflict, err := repo.HasConflictTx(context.Background(), tx, 7, []string{"T1S1", "T1S2"}, start, end)
    require.NoError(t, err)
    assert.True(t, conflict)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasConflictTxNoSeats(t *testing.T) {
    repo, mock, done := newMock(t)
    defer done()

    mock.ExpectBegin()
    tx, err := repo.DB().BeginTx(context.Background(), nil)
    require.NoError(t, err)

    // No seat codes means no conflict and no query at all.
    conflict, err := repo.HasConflictTx(context.Background(), tx, 7, nil, time.Now(), time.Now().Add(time.Hour))
    require.NoError(t, err)
    assert.False(t, conflict)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTxPopulatesIDAndCreatedAt(t *testing.T) {
    repo, mock, done := newMock(t)
    defer done()

    start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
    end := start.Add(2 * time.Hour)
    createdAt := time.Date(2025, 2, 28, 9, 30, 0, 0, time.UTC)

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
        WillReturnResult(sqlmock.NewResult(42, 1))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM bookings WHERE id = ?")).
        WithArgs(uint64(42)).
        WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

    tx, err := repo.DB().BeginTx(context.Background(), nil)
    require.NoError(t, err)

    uid := uint64(3)
    rec := &BookingRecord{
        UserID:       &uid,
        RestaurantID: 7,
        StartTime:    start,
        EndTime:      end,
        Status:       "confirmed",
        CustomerName: "Rafiq",
    }
    require.NoError(t, repo.CreateTx(context.Background(), tx, rec))
    assert.Equal(t, uint64(42), rec.ID)
    assert.Equal(t, createdAt, rec.CreatedAt)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSeatsBulkTx(t *testing.T) {
    repo, mock, done := newMock(t)
    defer done()

    mock.ExpectBegin()
    mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_seats (booking_id, seat_code) VALUES (?, ?),(?, ?)")).
        WithArgs(uint64(42), "T1S1", uint64(42), "XWING-7").
        WillReturnResult(sqlmock.NewResult(0, 2))

    tx, err := repo.DB().BeginTx(context.Background(), nil)
    require.NoError(t, err)

    // The second code is an ad-hoc identifier with no seat row; it is
    // stored as-is.
    require.NoError(t, repo.CreateSeatsBulkTx(context.Background(), tx, 42, []string{"T1S1", "XWING-7"}))
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookedSeatCodesContainsInstant(t *testing.T) {
    repo, mock, done := newMock(t)
    defer done()

    at := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
    // Containment check is start <= at AND end > at: at is passed twice.
    mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT bs.seat_code")).
        WithArgs(uint64(7), at, at).
        WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("T1S1").AddRow("T2S3"))

    booked, err := repo.BookedSeatCodes(context.Background(), 7, at)
    require.NoError(t, err)
    assert.Equal(t, map[string]bool{"T1S1": true, "T2S3": true}, booked)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserPopulatesSeatCodes(t *testing.T) {
    repo, mock, done := newMock(t)
    defer done()

    start := time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
    end := start.Add(time.Hour)
    created := start.Add(-24 * time.Hour)

    cols := []string{"id", "user_id", "guest_session_id", "restaurant_id", "start_time", "end_time",
        "status", "customer_name", "customer_phone", "payment_method", "total_amount", "created_at"}
    mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).
        WithArgs(uint64(3)).
        WillReturnRows(sqlmock.NewRows(cols).
            AddRow(10, 3, nil, 7, start, end, "confirmed", "Rafiq", "01712345678", "cash", 500.0, created).
            AddRow(11, 3, nil, 7, start, end, "confirmed", "Rafiq", "01712345678", "bkash", 300.0, created))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT booking_id, seat_code FROM booking_seats")).
        WithArgs(uint64(10), uint64(11)).
        WillReturnRows(sqlmock.NewRows([]string{"booking_id", "seat_code"}).
            AddRow(10, "T1S1").
            AddRow(10, "T1S2").
            AddRow(11, "T4S1"))

    bookings, err := repo.ListByUser(context.Background(), 3)
    require.NoError(t, err)
    require.Len(t, bookings, 2)
    assert.Equal(t, []string{"T1S1", "T1S2"}, bookings[0].SeatCodes)
    assert.Equal(t, []string{"T4S1"}, bookings[1].SeatCodes)
    require.NoError(t, mock.ExpectationsWereMet())
}
