package queries

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PickupQueries struct {
	DB *sql.DB
}

const pickupColumns = `id, citizen_id, waste_type, weight_category, approximate_weight, actual_weight, waste_photo_url, status, assigned_vendor_id, pickup_date, pickup_time, citizen_location, created_at, updated_at`

func scanPickup(row interface{ Scan(...interface{}) error }) (models.PickupRequest, error) {
	r := models.PickupRequest{}
	err := row.Scan(
		&r.ID,
		&r.CitizenID,
		&r.WasteType,
		&r.WeightCategory,
		&r.ApproximateWeight,
		&r.ActualWeight,
		&r.WastePhotoURL,
		&r.Status,
		&r.AssignedVendorID,
		&r.PickupDate,
		&r.PickupTime,
		&r.CitizenLocation,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (q *PickupQueries) CreateRequest(r *models.PickupRequest) error {
	query := `INSERT INTO pickup_requests (` + pickupColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := q.DB.Exec(query,
		r.ID,
		r.CitizenID,
		r.WasteType,
		r.WeightCategory,
		r.ApproximateWeight,
		r.ActualWeight,
		r.WastePhotoURL,
		r.Status,
		r.AssignedVendorID,
		r.PickupDate,
		r.PickupTime,
		r.CitizenLocation,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		return errors.New("unable to create pickup request, DB error")
	}
	return nil
}

func (q *PickupQueries) GetRequestByID(id uuid.UUID) (models.PickupRequest, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickup_requests WHERE id = $1`
	r, err := scanPickup(q.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return r, errors.New("pickup request not found")
		}
		return r, errors.New("unable to get pickup request, DB error")
	}
	return r, nil
}

func (q *PickupQueries) GetRequestsByCitizen(citizenID uuid.UUID) ([]models.PickupRequest, error) {
	query := `SELECT ` + pickupColumns + ` FROM pickup_requests WHERE citizen_id = $1 ORDER BY created_at DESC`
	return q.queryRequests(query, citizenID)
}

// GetPendingRequests returns pending requests visible to a vendor. When the
// vendor has declared waste types the filter is pushed into the query; an
// empty declared set returns every pending request.
func (q *PickupQueries) GetPendingRequests(wasteTypes []string) ([]models.PickupRequest, error) {
	if len(wasteTypes) == 0 {
		query := `SELECT r.` + joinedPickupColumns() + `, p.name, p.address, p.contact
			FROM pickup_requests r JOIN profiles p ON r.citizen_id = p.uid
			WHERE r.status = 'pending' ORDER BY r.created_at DESC`
		return q.queryRequestsWithCitizen(query)
	}
	query := `SELECT r.` + joinedPickupColumns() + `, p.name, p.address, p.contact
		FROM pickup_requests r JOIN profiles p ON r.citizen_id = p.uid
		WHERE r.status = 'pending' AND r.waste_type = ANY($1) ORDER BY r.created_at DESC`
	return q.queryRequestsWithCitizen(query, pq.Array(wasteTypes))
}

// GetRequestsByVendor returns the vendor's requests in any of the given
// statuses, newest first.
func (q *PickupQueries) GetRequestsByVendor(vendorID uuid.UUID, statuses []string) ([]models.PickupRequest, error) {
	query := `SELECT r.` + joinedPickupColumns() + `, p.name, p.address, p.contact
		FROM pickup_requests r JOIN profiles p ON r.citizen_id = p.uid
		WHERE r.assigned_vendor_id = $1 AND r.status = ANY($2) ORDER BY r.updated_at DESC`
	return q.queryRequestsWithCitizen(query, vendorID, pq.Array(statuses))
}

func (q *PickupQueries) SetPhotoURL(id uuid.UUID, url string) error {
	query := `UPDATE pickup_requests SET waste_photo_url = $2, updated_at = now() WHERE id = $1`
	res, err := q.DB.Exec(query, id, url)
	if err != nil {
		return errors.New("unable to update pickup request, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("pickup request not found")
	}
	return nil
}

// CancelRequest moves a request to cancelled, guarded on ownership and on
// the set of statuses cancellation is allowed from. Zero rows affected means
// the guard failed.
func (q *PickupQueries) CancelRequest(id, citizenID uuid.UUID, fromStatuses []string) error {
	query := `UPDATE pickup_requests SET status = 'cancelled', updated_at = now()
			  WHERE id = $1 AND citizen_id = $2 AND status = ANY($3)`
	return q.guardedUpdate(query, id, citizenID, pq.Array(fromStatuses))
}

// AcceptRequest assigns the vendor and moves pending -> accepted. The
// status check in the WHERE clause is the compare-and-swap: of two vendors
// racing on the same pending request, exactly one update reports a row.
func (q *PickupQueries) AcceptRequest(id, vendorID uuid.UUID) error {
	query := `UPDATE pickup_requests SET status = 'accepted', assigned_vendor_id = $2, updated_at = now()
			  WHERE id = $1 AND status = 'pending'`
	return q.guardedUpdate(query, id, vendorID)
}

func (q *PickupQueries) DeclineRequest(id uuid.UUID) error {
	query := `UPDATE pickup_requests SET status = 'declined', updated_at = now()
			  WHERE id = $1 AND status = 'pending'`
	return q.guardedUpdate(query, id)
}

func (q *PickupQueries) ScheduleRequest(id, vendorID uuid.UUID, pickupDate time.Time, pickupTime string) error {
	query := `UPDATE pickup_requests SET status = 'assigned', pickup_date = $3, pickup_time = $4, updated_at = now()
			  WHERE id = $1 AND assigned_vendor_id = $2 AND status = 'accepted'`
	return q.guardedUpdate(query, id, vendorID, pickupDate, pickupTime)
}

func (q *PickupQueries) StartRequest(id, vendorID uuid.UUID) error {
	query := `UPDATE pickup_requests SET status = 'in_progress', updated_at = now()
			  WHERE id = $1 AND assigned_vendor_id = $2 AND status = 'assigned'`
	return q.guardedUpdate(query, id, vendorID)
}

// CompleteRequest finishes the pickup and writes the bill in one
// transaction: either the request is completed and billed, or neither
// happened.
func (q *PickupQueries) CompleteRequest(id, vendorID uuid.UUID, actualWeight float64, bill *models.Bill) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return errors.New("unable to start transaction")
	}

	res, err := tx.Exec(`UPDATE pickup_requests SET status = 'completed', actual_weight = $3, updated_at = now()
		WHERE id = $1 AND assigned_vendor_id = $2 AND status = 'in_progress'`,
		id, vendorID, actualWeight,
	)
	if err != nil {
		tx.Rollback()
		return errors.New("unable to complete pickup request, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if rows == 0 {
		tx.Rollback()
		return models.ErrInvalidTransition
	}

	_, err = tx.Exec(`INSERT INTO bills (id, request_id, citizen_id, vendor_id, waste_type, actual_weight, rate_per_kg, gross_amount, platform_fee, net_amount, payment_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		bill.ID, bill.RequestID, bill.CitizenID, bill.VendorID, bill.WasteType,
		bill.ActualWeight, bill.RatePerKg, bill.GrossAmount, bill.PlatformFee,
		bill.NetAmount, bill.PaymentURL, bill.CreatedAt,
	)
	if err != nil {
		tx.Rollback()
		return errors.New("unable to create bill, DB error")
	}

	if err := tx.Commit(); err != nil {
		return errors.New("unable to commit transaction")
	}
	return nil
}

func (q *PickupQueries) guardedUpdate(query string, args ...interface{}) error {
	res, err := q.DB.Exec(query, args...)
	if err != nil {
		return errors.New("unable to update pickup request, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrInvalidTransition
	}
	return nil
}

func (q *PickupQueries) queryRequests(query string, args ...interface{}) ([]models.PickupRequest, error) {
	requests := []models.PickupRequest{}
	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return requests, errors.New("unable to query pickup requests, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		r, err := scanPickup(rows)
		if err != nil {
			return requests, errors.New("error scanning pickup request row")
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return requests, errors.New("error iterating pickup request rows")
	}
	return requests, nil
}

func (q *PickupQueries) queryRequestsWithCitizen(query string, args ...interface{}) ([]models.PickupRequest, error) {
	requests := []models.PickupRequest{}
	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return requests, errors.New("unable to query pickup requests, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		r := models.PickupRequest{}
		if err := rows.Scan(
			&r.ID,
			&r.CitizenID,
			&r.WasteType,
			&r.WeightCategory,
			&r.ApproximateWeight,
			&r.ActualWeight,
			&r.WastePhotoURL,
			&r.Status,
			&r.AssignedVendorID,
			&r.PickupDate,
			&r.PickupTime,
			&r.CitizenLocation,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.CitizenName,
			&r.CitizenAddress,
			&r.CitizenContact,
		); err != nil {
			return requests, errors.New("error scanning pickup request row")
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return requests, errors.New("error iterating pickup request rows")
	}
	return requests, nil
}

func joinedPickupColumns() string {
	return `id, r.citizen_id, r.waste_type, r.weight_category, r.approximate_weight, r.actual_weight, r.waste_photo_url, r.status, r.assigned_vendor_id, r.pickup_date, r.pickup_time, r.citizen_location, r.created_at, r.updated_at`
}
