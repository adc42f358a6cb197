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

func TestSnapshotIndependentFlags(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    builder := NewAvailabilityBuilder(NewSeatRepo(db), NewOccupiedSeatRepo(db), NewBookingRepo(db))
    at := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

    seatCols := []string{"id", "restaurant_id", "code", "is_private_room", "x_position", "y_position"}
    mock.ExpectQuery(regexp.QuoteMeta("FROM seats")).
        WithArgs(uint64(7)).
        WillReturnRows(sqlmock.NewRows(seatCols).
            AddRow(1, 7, "T1S1", false, 0, 0).
            AddRow(2, 7, "T1S2", false, 20, 0).
            AddRow(3, 7, "T2S1", true, 100, 0).
            AddRow(4, 7, "T2S2", true, 120, 0))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT os.seat_id")).
        WithArgs(uint64(7), at).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(2).AddRow(3))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT bs.seat_code")).
        WithArgs(uint64(7), at, at).
        WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("T1S2").AddRow("T2S2"))

    seats, err := builder.Snapshot(context.Background(), 7, at)
    require.NoError(t, err)
    require.Len(t, seats, 4)

    // primary key order is preserved
    assert.Equal(t, []uint64{1, 2, 3, 4}, []uint64{seats[0].ID, seats[1].ID, seats[2].ID, seats[3].ID})

    // seat 1: free; seat 2: occupied and booked; seat 3: occupied only;
    // seat 4: booked only. The flags never collapse into each other.
    assert.False(t, seats[0].IsOccupied)
    assert.False(t, seats[0].IsBooked)
    assert.True(t, seats[1].IsOccupied)
    assert.True(t, seats[1].IsBooked)
    assert.True(t, seats[2].IsOccupied)
    assert.False(t, seats[2].IsBooked)
    assert.False(t, seats[3].IsOccupied)
    assert.True(t, seats[3].IsBooked)

    require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotNoSeats(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    builder := NewAvailabilityBuilder(NewSeatRepo(db), NewOccupiedSeatRepo(db), NewBookingRepo(db))
    at := time.Now().UTC()

    mock.ExpectQuery(regexp.QuoteMeta("FROM seats")).
        WithArgs(uint64(9)).
        WillReturnRows(sqlmock.NewRows([]string{"id", "restaurant_id", "code", "is_private_room", "x_position", "y_position"}))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT os.seat_id")).
        WithArgs(uint64(9), at).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
    mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT bs.seat_code")).
        WithArgs(uint64(9), at, at).
        WillReturnRows(sqlmock.NewRows([]string{"seat_code"}).AddRow("GHOST-1"))

    seats, err := builder.Snapshot(context.Background(), 9, at)
    require.NoError(t, err)
    // Booked codes without inventory rows do not surface in the snapshot.
    assert.Empty(t, seats)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestOccupiedSeatIDsLazyExpiry(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()

    repo := NewOccupiedSeatRepo(db)
    at := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

    // The cutoff is passed straight to SQL; rows with occupied_until <= at
    // are filtered there, never deleted.
    mock.ExpectQuery(regexp.QuoteMeta("os.occupied_until > ?")).
        WithArgs(uint64(7), at).
        WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(5))

    occupied, err := repo.OccupiedSeatIDs(context.Background(), 7, at)
    require.NoError(t, err)
    assert.Equal(t, map[uint64]bool{5: true}, occupied)
    require.NoError(t, mock.ExpectationsWereMet())
}
