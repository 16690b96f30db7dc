package database

func (d *Database) RunMigrations() error {
	// Create the comparables table
	_, err := d.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			address TEXT UNIQUE,
			beds INTEGER,
			baths INTEGER,
			myhome_floor_area_value REAL,
			property_type TEXT,
			ber_rating TEXT,
			latitude REAL,
			longitude REAL,
			asking_price REAL,
			sale_price REAL,
			first_list_price REAL,
			first_list_date TEXT,
			sale_date TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return err
	}

	// Add first_list_price for databases created before it existed
	_, err = d.db.Exec(`
		ALTER TABLE properties
		ADD COLUMN first_list_price REAL;
	`)
	if err != nil && err.Error() != "duplicate column name: first_list_price" {
		return err
	}

	// Create spatial index on coordinates
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_coordinates
		ON properties(latitude, longitude);
	`)
	if err != nil {
		return err
	}

	// Index sale_date for the time-windowed aggregations
	_, err = d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_sale_date
		ON properties(sale_date);
	`)
	if err != nil {
		return err
	}

	return nil
}
