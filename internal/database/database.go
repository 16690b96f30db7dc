package database

import (
	"database/sql"
	"fmt"
	"time"

	"homesight/server/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

type Database struct {
	db *sql.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys
	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// RangeQuery returns every property whose coordinates fall inside the
// given bounding box. This is the coarse prune only; callers refine by
// exact distance.
func (d *Database) RangeQuery(minLat, maxLat, minLon, maxLon float64) ([]models.PropertyRecord, error) {
	query := `
        SELECT
            id,
            address,
            beds,
            baths,
            myhome_floor_area_value,
            property_type,
            ber_rating,
            latitude,
            longitude,
            asking_price,
            sale_price,
            first_list_price,
            COALESCE(first_list_date, '') as first_list_date,
            COALESCE(sale_date, '') as sale_date,
            COALESCE(created_at, CURRENT_TIMESTAMP) as created_at
        FROM properties
        WHERE latitude IS NOT NULL
        AND longitude IS NOT NULL
        AND latitude BETWEEN ? AND ?
        AND longitude BETWEEN ? AND ?
    `

	rows, err := d.db.Query(query, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.PropertyRecord
	for rows.Next() {
		var p models.PropertyRecord
		var address, propertyType, berRating sql.NullString
		var firstListDate, saleDate, createdAt sql.NullString
		var beds, baths sql.NullInt64
		var floorArea, latitude, longitude sql.NullFloat64
		var askingPrice, salePrice, firstListPrice sql.NullFloat64

		err := rows.Scan(
			&p.ID,
			&address,
			&beds,
			&baths,
			&floorArea,
			&propertyType,
			&berRating,
			&latitude,
			&longitude,
			&askingPrice,
			&salePrice,
			&firstListPrice,
			&firstListDate,
			&saleDate,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		// Handle nullable string fields
		if address.Valid {
			p.Address = address.String
		}
		if propertyType.Valid {
			p.PropertyType = propertyType.String
		}
		if berRating.Valid {
			p.EnergyRating = berRating.String
		}

		// Handle nullable numeric fields
		if beds.Valid {
			b := int(beds.Int64)
			p.Beds = &b
		}
		if baths.Valid {
			b := int(baths.Int64)
			p.Baths = &b
		}
		if floorArea.Valid {
			fa := floorArea.Float64
			p.FloorArea = &fa
		}
		if latitude.Valid {
			lat := latitude.Float64
			p.Latitude = &lat
		}
		if longitude.Valid {
			lon := longitude.Float64
			p.Longitude = &lon
		}
		if askingPrice.Valid {
			v := askingPrice.Float64
			p.AskingPrice = &v
		}
		if salePrice.Valid {
			v := salePrice.Float64
			p.SalePrice = &v
		}
		if firstListPrice.Valid {
			v := firstListPrice.Float64
			p.FirstListPrice = &v
		}

		// Parse dates if they're valid
		if firstListDate.Valid && firstListDate.String != "" {
			if t, err := time.Parse("2006-01-02", firstListDate.String); err == nil {
				p.FirstListDate = &t
			}
		}
		if saleDate.Valid && saleDate.String != "" {
			if t, err := time.Parse("2006-01-02", saleDate.String); err == nil {
				p.SaleDate = &t
			}
		}
		if createdAt.Valid && createdAt.String != "" {
			if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
				p.CreatedAt = t
			}
		}

		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

// CountProperties returns the total number of records in the corpus.
func (d *Database) CountProperties() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count)
	return count, err
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) GetDB() *sql.DB {
	return d.db
}

// UpsertProperties inserts or replaces a batch of property records inside
// an existing gorm transaction.
func UpsertProperties(tx *gorm.DB, records []*models.PropertyRecord) error {
	stmt := `
		INSERT OR REPLACE INTO properties
		(address, beds, baths, myhome_floor_area_value, property_type, ber_rating,
		 latitude, longitude, asking_price, sale_price, first_list_price,
		 first_list_date, sale_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, rec := range records {
		var firstListDate, saleDate interface{}
		if rec.FirstListDate != nil {
			firstListDate = rec.FirstListDate.Format("2006-01-02")
		}
		if rec.SaleDate != nil {
			saleDate = rec.SaleDate.Format("2006-01-02")
		}

		// The address column is the upsert key. An empty address goes in
		// as NULL so address-less records stay distinct rows.
		var address interface{}
		if rec.Address != "" {
			address = rec.Address
		}

		result := tx.Exec(stmt,
			address,
			rec.Beds,
			rec.Baths,
			rec.FloorArea,
			rec.PropertyType,
			rec.EnergyRating,
			rec.Latitude,
			rec.Longitude,
			rec.AskingPrice,
			rec.SalePrice,
			rec.FirstListPrice,
			firstListDate,
			saleDate,
			time.Now().UTC().Format(time.RFC3339),
		)
		if result.Error != nil {
			return fmt.Errorf("failed to upsert property: %w", result.Error)
		}
	}

	return nil
}
