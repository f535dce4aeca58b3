package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Repository against PostgreSQL. Group-by and
// summation run in the store; rows come back already ordered.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) DailyTotalSales(ctx context.Context, date time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0)::float8
FROM transactions WHERE transaction_date = $1`, date).Scan(&total)
	return total, err
}

func (r *PGRepository) DailyQuantityByItem(ctx context.Context, date time.Time) ([]QuantityGroup, error) {
	return r.quantityGroups(ctx, `SELECT i.name, SUM(li.quantity)::bigint
FROM line_items li
JOIN items i ON i.item_code = li.item_code
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date = $1
GROUP BY i.name ORDER BY i.name`, date)
}

func (r *PGRepository) DailyQuantityByCategory(ctx context.Context, date time.Time) ([]QuantityGroup, error) {
	return r.quantityGroups(ctx, `SELECT i.category, SUM(li.quantity)::bigint
FROM line_items li
JOIN items i ON i.item_code = li.item_code
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date = $1
GROUP BY i.category ORDER BY i.category`, date)
}

func (r *PGRepository) quantityGroups(ctx context.Context, query string, args ...any) ([]QuantityGroup, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []QuantityGroup
	for rows.Next() {
		var g QuantityGroup
		if err := rows.Scan(&g.Key, &g.Quantity); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *PGRepository) AvgTransactionAmount(ctx context.Context, rng DateRange) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(AVG(total_amount), 0)::float8
FROM transactions WHERE transaction_date BETWEEN $1 AND $2`, rng.Start, rng.End).Scan(&avg)
	return avg, err
}

func (r *PGRepository) AveragesByItem(ctx context.Context, rng DateRange) ([]AverageGroup, error) {
	return r.averageGroups(ctx, `SELECT i.name, AVG(li.quantity)::float8, AVG(li.quantity * li.unit_price)::float8
FROM line_items li
JOIN items i ON i.item_code = li.item_code
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date BETWEEN $1 AND $2
GROUP BY i.name ORDER BY i.name`, rng.Start, rng.End)
}

func (r *PGRepository) AveragesByCategory(ctx context.Context, rng DateRange) ([]AverageGroup, error) {
	return r.averageGroups(ctx, `SELECT i.category, AVG(li.quantity)::float8, AVG(li.quantity * li.unit_price)::float8
FROM line_items li
JOIN items i ON i.item_code = li.item_code
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date BETWEEN $1 AND $2
GROUP BY i.category ORDER BY i.category`, rng.Start, rng.End)
}

func (r *PGRepository) averageGroups(ctx context.Context, query string, args ...any) ([]AverageGroup, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []AverageGroup
	for rows.Next() {
		var g AverageGroup
		if err := rows.Scan(&g.Key, &g.AvgQuantity, &g.AvgRevenue); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *PGRepository) TransactionRangeStats(ctx context.Context, rng DateRange) (float64, float64, error) {
	var total, avg float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_amount), 0.0)::float8, COALESCE(AVG(total_amount), 0.0)::float8
FROM transactions WHERE transaction_date BETWEEN $1 AND $2`, rng.Start, rng.End).Scan(&total, &avg)
	return total, avg, err
}

func (r *PGRepository) DetailRows(ctx context.Context, rng DateRange) ([]DetailRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT t.transaction_date, i.name, i.category, SUM(li.quantity)::bigint, COALESCE(SUM(li.quantity * li.unit_price), 0.0)::float8
FROM line_items li
JOIN items i ON i.item_code = li.item_code
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date BETWEEN $1 AND $2
GROUP BY t.transaction_date, i.name, i.category
ORDER BY t.transaction_date`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DetailRow
	for rows.Next() {
		var row DetailRow
		var date time.Time
		if err := rows.Scan(&date, &row.ItemName, &row.Category, &row.TotalQuantity, &row.TotalSales); err != nil {
			return nil, err
		}
		row.Date = date.Format(dateLayout)
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PGRepository) TrendRows(ctx context.Context, rng DateRange) ([]TrendPoint, error) {
	rows, err := r.pool.Query(ctx, `SELECT t.transaction_date, i.name, i.category, SUM(li.quantity)::bigint, COALESCE(SUM(li.quantity * li.unit_price), 0.0)::float8
FROM line_items li
JOIN items i ON i.item_code = li.item_code
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date BETWEEN $1 AND $2
GROUP BY t.transaction_date, i.name, i.category
ORDER BY i.name, t.transaction_date`, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []TrendPoint
	for rows.Next() {
		var point TrendPoint
		var date time.Time
		if err := rows.Scan(&date, &point.ItemName, &point.Category, &point.TotalQuantity, &point.Revenue); err != nil {
			return nil, err
		}
		point.Date = date.Format(dateLayout)
		result = append(result, point)
	}
	return result, rows.Err()
}

func (r *PGRepository) RangeTotals(ctx context.Context, rng DateRange) (RangeTotals, error) {
	var totals RangeTotals
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(li.quantity * li.unit_price), 0.0)::float8, COALESCE(SUM(li.quantity), 0)::bigint
FROM line_items li
JOIN transactions t ON t.transaction_id = li.transaction_id
WHERE t.transaction_date BETWEEN $1 AND $2`, rng.Start, rng.End).Scan(&totals.TotalSales, &totals.TotalQuantity)
	return totals, err
}
