package overrides

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"

	"github.com/aceboy1016/ishihara-booking/internal/domain"
	"github.com/aceboy1016/ishihara-booking/pkg/dbmetrics"
	"github.com/aceboy1016/ishihara-booking/pkg/psqlbuilder"
)

const table = "event_overrides"

// Repository хранилище ручных настроек (event id -> bool) в PostgreSQL
// Каждая пара (kind, event_id) независима, транзакции нужны только для массовой замены
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll читает обе карты настроек одним запросом
func (r *Repository) GetAll(ctx context.Context) (domain.OverrideMaps, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("kind", "event_id", "value").
		From(table).
		ToSql()
	if err != nil {
		return domain.OverrideMaps{}, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.OverrideMaps{}, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	maps := domain.OverrideMaps{
		Private:       make(map[string]bool),
		FacilityHolds: make(map[string]bool),
	}

	for rows.Next() {
		var (
			kind    string
			eventID string
			value   bool
		)
		if err := rows.Scan(&kind, &eventID, &value); err != nil {
			return domain.OverrideMaps{}, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}

		switch domain.OverrideKind(kind) {
		case domain.OverridePrivateEvent:
			maps.Private[eventID] = value
		case domain.OverrideFacilityHold:
			maps.FacilityHolds[eventID] = value
		}
	}

	if err := rows.Err(); err != nil {
		return domain.OverrideMaps{}, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return maps, nil
}

// Set сохраняет значение настройки (upsert)
func (r *Repository) Set(ctx context.Context, override domain.Override) error {
	if !override.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, override.Kind)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertQuery([]domain.Override{override})
	if err != nil {
		return fmt.Errorf("%w: Set - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Set - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteAll удаляет все настройки указанного вида, возвращает количество удаленных
func (r *Repository) DeleteAll(ctx context.Context, kind domain.OverrideKind) (int64, error) {
	if !kind.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"kind": string(kind)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAll - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ReplaceAll атомарно заменяет все настройки вида переданной картой
func (r *Repository) ReplaceAll(ctx context.Context, kind domain.OverrideKind, values map[string]bool) (err error) {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}

	txCtx, tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = r.DeleteAll(txCtx, kind); err != nil {
		return err
	}

	if len(values) > 0 {
		overrides := make([]domain.Override, 0, len(values))
		for id, v := range values {
			overrides = append(overrides, domain.Override{Kind: kind, EventID: id, Value: v})
		}

		query, args, buildErr := upsertQuery(overrides)
		if buildErr != nil {
			err = fmt.Errorf("%w: ReplaceAll - build upsert query: %v", ErrBuildQuery, buildErr)
			return err
		}
		if _, err = tx.ExecContext(txCtx, query, args...); err != nil {
			err = fmt.Errorf("%w: ReplaceAll - execute upsert: %v", ErrExecQuery, err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("%w: ReplaceAll - commit: %v", ErrTransaction, err)
		return err
	}

	return nil
}

// upsertQuery строит INSERT ... ON CONFLICT DO UPDATE для набора настроек
// Порядок строк детерминирован (kind, event_id)
func upsertQuery(overrides []domain.Override) (string, []interface{}, error) {
	sorted := make([]domain.Override, len(overrides))
	copy(sorted, overrides)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Kind != sorted[j].Kind {
			return sorted[i].Kind < sorted[j].Kind
		}
		return sorted[i].EventID < sorted[j].EventID
	})

	builder := psqlbuilder.Insert(table).
		Columns("kind", "event_id", "value")
	for _, o := range sorted {
		builder = builder.Values(string(o.Kind), o.EventID, o.Value)
	}

	return builder.
		Suffix("ON CONFLICT (kind, event_id) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()").
		ToSql()
}

// Helper methods

// BeginTx начинает новую транзакцию и возвращает контекст с ней
func (r *Repository) BeginTx(ctx context.Context, opts *sql.TxOptions) (context.Context, TxExecutor, error) {
	// Пытаемся привести к TxBeginner интерфейсу (dbmetrics.DB реализует этот интерфейс)
	if txBeginner, ok := r.db.(TxBeginner); ok {
		tx, err := txBeginner.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		return dbmetrics.WithTx(ctx, tx), tx, nil
	}

	// Fallback для обычного *sql.DB
	if db, ok := r.db.(*sql.DB); ok {
		tx, err := db.BeginTx(ctx, opts)
		if err != nil {
			return ctx, nil, fmt.Errorf("%w: BeginTx: %v", ErrTransaction, err)
		}
		wrappedTx := &dbmetrics.SqlTxWrapper{Tx: tx}
		return dbmetrics.WithTx(ctx, wrappedTx), wrappedTx, nil
	}

	return ctx, nil, fmt.Errorf("%w: db type not supported", ErrTransaction)
}
