package repository

import (
	"database/sql"

	"tickersight/internal/model"
)

type TickerRepository struct {
	db *sql.DB
}

func NewTickerRepository(db *sql.DB) *TickerRepository {
	return &TickerRepository{db: db}
}

func (r *TickerRepository) GetAll() ([]model.Ticker, error) {
	rows, err := r.db.Query(`
		SELECT id, symbol, name, type, created_at
		FROM tickers
		ORDER BY symbol
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickers []model.Ticker
	for rows.Next() {
		var t model.Ticker
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Name, &t.Type, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tickers, nil
}

func (r *TickerRepository) GetBySymbol(symbol string) (*model.Ticker, error) {
	var t model.Ticker
	err := r.db.QueryRow(`
		SELECT id, symbol, name, type, created_at
		FROM tickers
		WHERE symbol = $1
	`, symbol).Scan(&t.ID, &t.Symbol, &t.Name, &t.Type, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *TickerRepository) Create(ticker *model.Ticker) error {
	return r.db.QueryRow(`
		INSERT INTO tickers(symbol, name, type)
		VALUES($1, $2, $3)
		RETURNING id, created_at
	`, ticker.Symbol, ticker.Name, ticker.Type).Scan(&ticker.ID, &ticker.CreatedAt)
}

// Delete removes a ticker; articles and insights cascade at the schema level.
func (r *TickerRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM tickers WHERE id = $1`, id)
	return err
}
