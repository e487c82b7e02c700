package queries

import (
	"database/sql"
	"errors"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/google/uuid"
)

type WasteTypeQueries struct {
	DB *sql.DB
}

func (q *WasteTypeQueries) GetWasteTypesByVendor(vendorID uuid.UUID) ([]models.VendorWasteType, error) {
	wasteTypes := []models.VendorWasteType{}
	query := `SELECT id, vendor_id, waste_type, price_per_kg, created_at FROM vendor_waste_types WHERE vendor_id = $1 ORDER BY waste_type`
	rows, err := q.DB.Query(query, vendorID)
	if err != nil {
		return wasteTypes, errors.New("unable to query vendor waste types, DB error")
	}
	defer rows.Close()

	for rows.Next() {
		var wt models.VendorWasteType
		if err := rows.Scan(&wt.ID, &wt.VendorID, &wt.WasteType, &wt.PricePerKg, &wt.CreatedAt); err != nil {
			return wasteTypes, errors.New("error scanning vendor waste type row")
		}
		wasteTypes = append(wasteTypes, wt)
	}
	if err := rows.Err(); err != nil {
		return wasteTypes, errors.New("error iterating vendor waste type rows")
	}
	return wasteTypes, nil
}

// GetRate returns the vendor's declared price per kg for a waste type. The
// second return is false when the vendor never declared the type.
func (q *WasteTypeQueries) GetRate(vendorID uuid.UUID, wasteType string) (float64, bool, error) {
	var rate float64
	query := `SELECT price_per_kg FROM vendor_waste_types WHERE vendor_id = $1 AND waste_type = $2`
	err := q.DB.QueryRow(query, vendorID, wasteType).Scan(&rate)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, errors.New("unable to get vendor rate, DB error")
	}
	return rate, true, nil
}

// UpsertWasteType declares or re-prices a vendor capability. One row per
// (vendor, waste type); re-declaring updates the rate.
func (q *WasteTypeQueries) UpsertWasteType(wt *models.VendorWasteType) error {
	query := `INSERT INTO vendor_waste_types (id, vendor_id, waste_type, price_per_kg, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (vendor_id, waste_type) DO UPDATE SET price_per_kg = EXCLUDED.price_per_kg`
	_, err := q.DB.Exec(query, wt.ID, wt.VendorID, wt.WasteType, wt.PricePerKg, wt.CreatedAt)
	if err != nil {
		return errors.New("unable to upsert vendor waste type, DB error")
	}
	return nil
}

func (q *WasteTypeQueries) DeleteWasteType(vendorID uuid.UUID, wasteType string) error {
	query := `DELETE FROM vendor_waste_types WHERE vendor_id = $1 AND waste_type = $2`
	res, err := q.DB.Exec(query, vendorID, wasteType)
	if err != nil {
		return errors.New("unable to delete vendor waste type, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("vendor waste type not found")
	}
	return nil
}
