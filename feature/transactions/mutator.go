package transactions

import (
	"context"
	"fmt"

	"budget-core/core/diff"

	"gorm.io/gorm"
)

// txMutator writes reconcile actions for one account inside a gorm
// transaction.
type txMutator struct {
	tx      *gorm.DB
	account string
}

func (m *txMutator) decode(rec diff.Record) (Transaction, error) {
	var t Transaction
	if err := diff.DecodeRecord(rec, &t); err != nil {
		return Transaction{}, err
	}
	t.AccountID = m.account
	return t, nil
}

func (m *txMutator) Create(ctx context.Context, rec diff.Record) error {
	t, err := m.decode(rec)
	if err != nil {
		return err
	}
	return m.tx.WithContext(ctx).Create(&t).Error
}

func (m *txMutator) CreateBatch(ctx context.Context, records []diff.Record) error {
	rows := make([]Transaction, 0, len(records))
	for _, rec := range records {
		t, err := m.decode(rec)
		if err != nil {
			return err
		}
		rows = append(rows, t)
	}
	return m.tx.WithContext(ctx).Create(&rows).Error
}

func (m *txMutator) Update(ctx context.Context, key string, changes diff.Record) error {
	values := make(map[string]any, len(changes))
	for k, v := range changes {
		if k == diff.FieldID || k == "account_id" {
			continue
		}
		values[k] = v
	}
	if len(values) == 0 {
		return nil
	}

	res := m.tx.WithContext(ctx).Model(&Transaction{}).
		Where("id = ? AND account_id = ?", key, m.account).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("transaction %s not found", key)
	}
	return nil
}

func (m *txMutator) Delete(ctx context.Context, key string) error {
	return m.DeleteBatch(ctx, []string{key})
}

func (m *txMutator) DeleteBatch(ctx context.Context, keys []string) error {
	return m.tx.WithContext(ctx).
		Where("account_id = ? AND id IN ?", m.account, keys).
		Delete(&Transaction{}).Error
}
