package storage

import (
	"database/sql"
	"fmt"

	"lotus-ge/src/logger"
	"lotus-ge/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteStore(cfg *models.MConfig, log *logger.Logger) (*SQLiteStore, error) {
	return &SQLiteStore{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) createTables() error {
	// Tables are durable between cycles: gap planning depends on committed
	// state surviving a restart, so nothing here is dropped.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS marketdata (
			interval INTEGER,
			timestamp INTEGER,
			typeid INTEGER,
			avg_high_price REAL,
			high_price_volume REAL,
			avg_low_price REAL,
			low_price_volume REAL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_marketdata_interval_ts
			ON marketdata (interval, timestamp);`,
		`CREATE INDEX IF NOT EXISTS idx_marketdata_item
			ON marketdata (typeid, interval, timestamp);`,
		`CREATE TABLE IF NOT EXISTS marketdatamax (
			interval INTEGER,
			timestamp INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS marketstats (
			typeid INTEGER,
			report_type TEXT,
			mean_low REAL, mean_high REAL,
			mean_volume_low REAL, mean_volume_high REAL,
			median_low REAL, median_high REAL,
			median_volume_low REAL, median_volume_high REAL,
			min_low REAL, min_high REAL,
			max_low REAL, max_high REAL,
			PRIMARY KEY (typeid, report_type)
		);`,
		`CREATE TABLE IF NOT EXISTS marketstatstimestamp (
			interval INTEGER,
			timestamp INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS latest (
			id INTEGER,
			high REAL,
			hightime INTEGER,
			low REAL,
			lowtime INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS mapping (
			typeid INTEGER,
			members INTEGER,
			lowalch INTEGER,
			buylimit INTEGER,
			value INTEGER,
			highalch INTEGER,
			icon TEXT,
			name TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS mappingmax (
			timestamp INTEGER
		);`,
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) HasTimestamp(interval, timestamp int64) (bool, error) {
	var one int
	err := d.DB.QueryRow(
		"SELECT 1 FROM marketdata WHERE interval = ? AND timestamp = ? LIMIT 1",
		interval, timestamp,
	).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// -----------------------------------------------------------------------------

// SaveSnapshot writes one snapshot idempotently. Existence is decided by a
// query, not a uniqueness constraint, matching the single-writer model. An
// empty snapshot leaves a placeholder row so the gap planner can tell
// "fetched, empty" from "not yet fetched".
func (d *SQLiteStore) SaveSnapshot(interval int64, snap models.MPriceSnapshot) (bool, error) {
	exists, err := d.HasTimestamp(interval, snap.Timestamp)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if len(snap.Data) == 0 {
		if _, err := tx.Exec(
			"INSERT INTO marketdata (interval, timestamp) VALUES (?, ?)",
			interval, snap.Timestamp,
		); err != nil {
			return false, err
		}
		return true, tx.Commit()
	}

	stmt, err := tx.Prepare(`
		INSERT INTO marketdata (interval, timestamp, typeid, avg_high_price, high_price_volume, avg_low_price, low_price_volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return false, err
	}
	defer stmt.Close()

	for itemID, entry := range snap.Data {
		_, err := stmt.Exec(interval, snap.Timestamp, itemID,
			entry.AvgHighPrice, entry.HighPriceVolume, entry.AvgLowPrice, entry.LowPriceVolume)
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) LatestTimestamp(interval int64) (int64, bool, error) {
	var ts int64
	err := d.DB.QueryRow(
		"SELECT timestamp FROM marketdatamax WHERE interval = ?", interval,
	).Scan(&ts)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return ts, true, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SetLatestTimestamp(interval, timestamp int64) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM marketdatamax WHERE interval = ?", interval); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT INTO marketdatamax (interval, timestamp) VALUES (?, ?)",
		interval, timestamp,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) PruneBefore(interval, cutoff int64) (int64, error) {
	res, err := d.DB.Exec(
		"DELETE FROM marketdata WHERE interval = ? AND timestamp < ?",
		interval, cutoff,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) DistinctTimestamps(interval, first, last int64) ([]int64, error) {
	rows, err := d.DB.Query(
		"SELECT DISTINCT timestamp FROM marketdata WHERE interval = ? AND timestamp >= ? AND timestamp <= ? ORDER BY timestamp",
		interval, first, last,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var timestamps []int64
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return nil, err
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) ItemPoints(itemID int, interval, first, last int64) ([]models.MDataPoint, error) {
	rows, err := d.DB.Query(`
		SELECT timestamp, avg_high_price, high_price_volume, avg_low_price, low_price_volume
		FROM marketdata
		WHERE typeid = ? AND interval = ? AND timestamp >= ? AND timestamp <= ?`,
		itemID, interval, first, last,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []models.MDataPoint
	for rows.Next() {
		var p models.MDataPoint
		var high, highVol, low, lowVol sql.NullFloat64

		if err := rows.Scan(&p.Timestamp, &high, &highVol, &low, &lowVol); err != nil {
			return nil, err
		}

		p.Interval = interval
		p.ItemID = itemID
		p.AvgHighPrice = nullToPtr(high)
		p.HighPriceVolume = nullToPtr(highVol)
		p.AvgLowPrice = nullToPtr(low)
		p.LowPriceVolume = nullToPtr(lowVol)
		points = append(points, p)
	}
	return points, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) ItemIDs() ([]int, error) {
	rows, err := d.DB.Query("SELECT DISTINCT typeid FROM mapping")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SaveAggregates(records []models.MAggregateRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO marketstats (typeid, report_type, mean_low, mean_high, mean_volume_low, mean_volume_high,
			median_low, median_high, median_volume_low, median_volume_high, min_low, min_high, max_low, max_high)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (typeid, report_type) DO UPDATE SET
			mean_low = excluded.mean_low,
			mean_high = excluded.mean_high,
			mean_volume_low = excluded.mean_volume_low,
			mean_volume_high = excluded.mean_volume_high,
			median_low = excluded.median_low,
			median_high = excluded.median_high,
			median_volume_low = excluded.median_volume_low,
			median_volume_high = excluded.median_volume_high,
			min_low = excluded.min_low,
			min_high = excluded.min_high,
			max_low = excluded.max_low,
			max_high = excluded.max_high
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(r.ItemID, r.ReportType,
			r.MeanLow, r.MeanHigh, r.MeanVolumeLow, r.MeanVolumeHigh,
			r.MedianLow, r.MedianHigh, r.MedianVolLow, r.MedianVolHigh,
			r.MinLow, r.MinHigh, r.MaxLow, r.MaxHigh)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) AggregateRecords() (map[int]map[string]models.MAggregateRecord, error) {
	rows, err := d.DB.Query(`
		SELECT typeid, report_type, mean_low, mean_high, mean_volume_low, mean_volume_high,
			median_low, median_high, median_volume_low, median_volume_high, min_low, min_high, max_low, max_high
		FROM marketstats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]map[string]models.MAggregateRecord)
	for rows.Next() {
		var r models.MAggregateRecord
		var fields [12]sql.NullFloat64

		if err := rows.Scan(&r.ItemID, &r.ReportType,
			&fields[0], &fields[1], &fields[2], &fields[3],
			&fields[4], &fields[5], &fields[6], &fields[7],
			&fields[8], &fields[9], &fields[10], &fields[11]); err != nil {
			return nil, err
		}

		r.MeanLow = nullToPtr(fields[0])
		r.MeanHigh = nullToPtr(fields[1])
		r.MeanVolumeLow = nullToPtr(fields[2])
		r.MeanVolumeHigh = nullToPtr(fields[3])
		r.MedianLow = nullToPtr(fields[4])
		r.MedianHigh = nullToPtr(fields[5])
		r.MedianVolLow = nullToPtr(fields[6])
		r.MedianVolHigh = nullToPtr(fields[7])
		r.MinLow = nullToPtr(fields[8])
		r.MinHigh = nullToPtr(fields[9])
		r.MaxLow = nullToPtr(fields[10])
		r.MaxHigh = nullToPtr(fields[11])

		if result[r.ItemID] == nil {
			result[r.ItemID] = make(map[string]models.MAggregateRecord)
		}
		result[r.ItemID][r.ReportType] = r
	}
	return result, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) AggregatedTimestamp(interval int64) (int64, bool, error) {
	var ts int64
	err := d.DB.QueryRow(
		"SELECT timestamp FROM marketstatstimestamp WHERE interval = ?", interval,
	).Scan(&ts)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return ts, true, nil
}

// -----------------------------------------------------------------------------

// MirrorLatestIntoAggregated marks every window fresh at once: the staleness
// table becomes a wholesale copy of the latest markers.
func (d *SQLiteStore) MirrorLatestIntoAggregated() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM marketstatstimestamp"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO marketstatstimestamp SELECT interval, timestamp FROM marketdatamax"); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) ReplaceLatestPrices(prices []models.MLatestPrice) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM latest"); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO latest (id, high, hightime, low, lowtime) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range prices {
		if _, err := stmt.Exec(p.ItemID, p.High, p.HighTime, p.Low, p.LowTime); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) LatestPrices() ([]models.MLatestPrice, error) {
	rows, err := d.DB.Query("SELECT id, high, hightime, low, lowtime FROM latest")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prices []models.MLatestPrice
	for rows.Next() {
		var p models.MLatestPrice
		var high, low sql.NullFloat64
		var highTime, lowTime sql.NullInt64

		if err := rows.Scan(&p.ItemID, &high, &highTime, &low, &lowTime); err != nil {
			return nil, err
		}

		p.High = nullToPtr(high)
		p.Low = nullToPtr(low)
		if highTime.Valid {
			t := highTime.Int64
			p.HighTime = &t
		}
		if lowTime.Valid {
			t := lowTime.Int64
			p.LowTime = &t
		}
		prices = append(prices, p)
	}
	return prices, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) ReplaceMapping(items []models.MItemMapping) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mapping"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO mapping (typeid, members, lowalch, buylimit, value, highalch, icon, name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range items {
		_, err := stmt.Exec(m.ItemID, m.Members, m.LowAlch, m.BuyLimit, m.Value, m.HighAlch, m.Icon, m.Name)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Mapping() (map[int]models.MItemMapping, error) {
	rows, err := d.DB.Query("SELECT typeid, members, lowalch, buylimit, value, highalch, icon, name FROM mapping")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int]models.MItemMapping)
	for rows.Next() {
		var m models.MItemMapping
		if err := rows.Scan(&m.ItemID, &m.Members, &m.LowAlch, &m.BuyLimit, &m.Value, &m.HighAlch, &m.Icon, &m.Name); err != nil {
			return nil, err
		}
		result[m.ItemID] = m
	}
	return result, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) MappingTimestamp() (int64, bool, error) {
	var ts int64
	err := d.DB.QueryRow("SELECT timestamp FROM mappingmax").Scan(&ts)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return ts, true, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SetMappingTimestamp(timestamp int64) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM mappingmax"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO mappingmax (timestamp) VALUES (?)", timestamp); err != nil {
		return err
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func nullToPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
