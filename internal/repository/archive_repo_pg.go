package repository

import (
	"context"

	"github.com/avdeev99/travelbot/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveRepository persists completed bookings durably. The in-conversation
// store keeps only the live state; the worker writes every completed booking
// here off the event stream.
type ArchiveRepository interface {
	SaveBooking(ctx context.Context, conversationID string, ticket domain.TravelTicket) error
	CountBookings(ctx context.Context) (int64, error)
}

type PGArchiveRepository struct {
	db *pgxpool.Pool
}

func NewArchiveRepository(db *pgxpool.Pool) ArchiveRepository {
	return &PGArchiveRepository{db: db}
}

// SaveBooking inserts one completed booking. Idempotent on ticket id so
// consumer redelivery cannot duplicate rows.
func (r *PGArchiveRepository) SaveBooking(ctx context.Context, conversationID string, ticket domain.TravelTicket) error {
	traveler := ""
	if ticket.Member != nil {
		traveler = ticket.Member.Name
	}
	_, err := r.db.Exec(ctx, `INSERT INTO archived_bookings
		(ticket_id, conversation_id, traveler, origin, destination, selected_route, travel_dates, booking_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (ticket_id) DO NOTHING`,
		ticket.ID, conversationID, traveler, ticket.Origin, ticket.Destination,
		ticket.SelectedRoute, ticket.TravelDates, ticket.BookingDate, string(ticket.Status))
	return err
}

func (r *PGArchiveRepository) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM archived_bookings`).Scan(&count)
	return count, err
}

var _ ArchiveRepository = (*PGArchiveRepository)(nil)
