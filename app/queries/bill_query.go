package queries

import (
	"database/sql"
	"errors"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/google/uuid"
)

type BillQueries struct {
	DB *sql.DB
}

const billColumns = `id, request_id, citizen_id, vendor_id, waste_type, actual_weight, rate_per_kg, gross_amount, platform_fee, net_amount, payment_url, created_at`

func (q *BillQueries) GetBillByRequestID(requestID uuid.UUID) (models.Bill, error) {
	b := models.Bill{}
	query := `SELECT ` + billColumns + ` FROM bills WHERE request_id = $1`
	err := q.DB.QueryRow(query, requestID).Scan(
		&b.ID, &b.RequestID, &b.CitizenID, &b.VendorID, &b.WasteType,
		&b.ActualWeight, &b.RatePerKg, &b.GrossAmount, &b.PlatformFee,
		&b.NetAmount, &b.PaymentURL, &b.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return b, errors.New("bill not found")
		}
		return b, errors.New("unable to get bill, DB error")
	}
	return b, nil
}

func (q *BillQueries) GetBillsByCitizen(citizenID uuid.UUID) ([]models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE citizen_id = $1 ORDER BY created_at DESC`
	return q.queryBills(query, citizenID)
}

func (q *BillQueries) GetBillsByVendor(vendorID uuid.UUID) ([]models.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE vendor_id = $1 ORDER BY created_at DESC`
	return q.queryBills(query, vendorID)
}

func (q *BillQueries) queryBills(query string, args ...interface{}) ([]models.Bill, error) {
	bills := []models.Bill{}
	rows, err := q.DB.Query(query, args...)
	if err != nil {
		return bills, errors.New("unable to query bills, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(
			&b.ID, &b.RequestID, &b.CitizenID, &b.VendorID, &b.WasteType,
			&b.ActualWeight, &b.RatePerKg, &b.GrossAmount, &b.PlatformFee,
			&b.NetAmount, &b.PaymentURL, &b.CreatedAt,
		); err != nil {
			return bills, errors.New("error scanning bill row")
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return bills, errors.New("error iterating bill rows")
	}
	return bills, nil
}
