package queries

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gilanghuda/ecosync-backend/app/models"
	"github.com/google/uuid"
)

type ProfileQueries struct {
	DB *sql.DB
}

func (q *ProfileQueries) GetProfileByID(id uuid.UUID) (models.Profile, error) {
	p := models.Profile{}

	query := `SELECT uid, name, user_role, email, contact, address, password_hash, verified, created_at, updated_at
			  FROM profiles WHERE uid = $1`

	err := q.DB.QueryRow(query, id).Scan(
		&p.ID,
		&p.Name,
		&p.UserRole,
		&p.Email,
		&p.Contact,
		&p.Address,
		&p.PasswordHash,
		&p.Verified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return p, errors.New("profile not found")
		}
		return p, errors.New("unable to get profile, DB error")
	}

	return p, nil
}

func (q *ProfileQueries) GetProfileByEmail(email string) (models.Profile, error) {
	p := models.Profile{}

	query := `SELECT uid, name, user_role, email, contact, address, password_hash, verified, created_at, updated_at
			  FROM profiles WHERE email = $1`

	err := q.DB.QueryRow(query, email).Scan(
		&p.ID,
		&p.Name,
		&p.UserRole,
		&p.Email,
		&p.Contact,
		&p.Address,
		&p.PasswordHash,
		&p.Verified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return p, errors.New("profile not found")
		}
		return p, errors.New("unable to get profile, DB error")
	}

	return p, nil
}

// CreateProfile inserts the profile and, for vendors, its declared waste
// types in a single transaction so a vendor never exists half-configured.
func (q *ProfileQueries) CreateProfile(p *models.Profile, wasteTypes []models.VendorWasteType) error {
	tx, err := q.DB.Begin()
	if err != nil {
		return errors.New("unable to start transaction")
	}

	query := `INSERT INTO profiles (uid, name, user_role, email, contact, address, password_hash, verified, otp, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.Exec(query,
		p.ID,
		p.Name,
		p.UserRole,
		p.Email,
		p.Contact,
		p.Address,
		p.PasswordHash,
		p.Verified,
		p.OTP,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		tx.Rollback()
		return errors.New("unable to create profile, DB error")
	}

	for _, wt := range wasteTypes {
		_, err = tx.Exec(`INSERT INTO vendor_waste_types (id, vendor_id, waste_type, price_per_kg, created_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (vendor_id, waste_type) DO UPDATE SET price_per_kg = EXCLUDED.price_per_kg`,
			wt.ID, wt.VendorID, wt.WasteType, wt.PricePerKg, time.Now(),
		)
		if err != nil {
			tx.Rollback()
			return errors.New("unable to create vendor waste type, DB error")
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.New("unable to commit transaction")
	}

	return nil
}

func (q *ProfileQueries) VerifyOTPByEmail(email string, otp string) error {
	query := `UPDATE profiles SET verified = TRUE, updated_at = now() WHERE email = $1 AND otp = $2 AND verified = FALSE`
	res, err := q.DB.Exec(query, email, otp)
	if err != nil {
		return errors.New("unable to verify OTP, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("invalid otp or already verified")
	}
	return nil
}

func (q *ProfileQueries) UpdateOTPByEmail(email string, otp string) error {
	query := `UPDATE profiles SET otp = $1, updated_at = now() WHERE email = $2`
	res, err := q.DB.Exec(query, otp, email)
	if err != nil {
		return errors.New("unable to update otp, DB error")
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("no profile updated")
	}
	return nil
}

// UpdateProfile patches the mutable profile fields. The role is never
// touched here; it is fixed at signup.
func (q *ProfileQueries) UpdateProfile(profileID uuid.UUID, req *models.UpdateProfileRequest) error {
	setClauses := []string{}
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.Contact != nil {
		setClauses = append(setClauses, fmt.Sprintf("contact = $%d", argID))
		args = append(args, *req.Contact)
		argID++
	}
	if req.Address != nil {
		setClauses = append(setClauses, fmt.Sprintf("address = $%d", argID))
		args = append(args, *req.Address)
		argID++
	}

	if len(setClauses) == 0 {
		return errors.New("no fields to update")
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE uid = $%d`, strings.Join(setClauses, ", "), argID)

	args = append(args, profileID)

	res, err := q.DB.Exec(query, args...)
	if err != nil {
		return errors.New("unable to update profile, DB error")
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return errors.New("no profile updated")
	}
	return nil
}
