package service

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockByID loads the row with the given primary key. On postgres the row is
// locked FOR UPDATE so concurrent relation writes against the same target
// run one after another; sqlite serializes writers on its own.
func lockByID(tx *gorm.DB, dest interface{}, id uint) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return notFound(q.First(dest, id).Error)
}

func rowExists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// createUnique inserts row and reports a unique-constraint rejection as dup.
func createUnique(tx *gorm.DB, row interface{}, dup error) error {
	if err := tx.Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dup
		}
		return err
	}
	return nil
}

// idSet returns which of ids have a row in model owned by userID.
func idSet(tx *gorm.DB, model interface{}, column string, userID uint, ids []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(ids))
	if userID == 0 || len(ids) == 0 {
		return set, nil
	}
	var found []uint
	if err := tx.Model(model).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		set[id] = true
	}
	return set, nil
}
