package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordRow is the relational shape of a keyed record: one row per record, the
// payload as a JSON column so equality and prefix queries can reach into
// indexed fields without a schema per collection.
type recordRow struct {
	Collection string         `gorm:"primaryKey;size:64"`
	RecordKey  string         `gorm:"primaryKey;size:64;column:record_key"`
	Data       datatypes.JSON `gorm:"column:data"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (recordRow) TableName() string { return "records" }

// Gorm adapts a relational database to the Store interface.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Migrate creates the records table.
func (g *Gorm) Migrate() error {
	return g.db.AutoMigrate(&recordRow{})
}

func (g *Gorm) NewKey(collection string) string {
	return uuid.NewString()
}

func (g *Gorm) Push(ctx context.Context, collection string, record any) (string, error) {
	key := g.NewKey(collection)
	if err := g.Set(ctx, collection, key, record); err != nil {
		return "", err
	}
	return key, nil
}

func (g *Gorm) Set(ctx context.Context, collection, key string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	row := recordRow{Collection: collection, RecordKey: key, Data: datatypes.JSON(data)}
	// Upsert: Set is a full overwrite whether or not the key exists yet.
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (g *Gorm) Update(ctx context.Context, collection, key string, fields map[string]any) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row recordRow
		err := tx.Where("collection = ? AND record_key = ?", collection, key).First(&row).Error
		if err != nil {
			return err
		}
		merged := make(map[string]any)
		if err := json.Unmarshal(row.Data, &merged); err != nil {
			return err
		}
		for k, v := range fields {
			merged[k] = v
		}
		data, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		row.Data = datatypes.JSON(data)
		return tx.Save(&row).Error
	})
}

func (g *Gorm) Remove(ctx context.Context, collection, key string) error {
	return g.db.WithContext(ctx).
		Where("collection = ? AND record_key = ?", collection, key).
		Delete(&recordRow{}).Error
}

func (g *Gorm) ReadOnce(ctx context.Context, collection string) ([]Record, error) {
	var rows []recordRow
	err := g.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("record_key").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (g *Gorm) QueryEqual(ctx context.Context, collection, field, value string) ([]Record, error) {
	var rows []recordRow
	err := g.db.WithContext(ctx).
		Where("collection = ?", collection).
		Where(datatypes.JSONQuery("data").Equals(value, field)).
		Order("record_key").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (g *Gorm) QueryPrefix(ctx context.Context, collection, field, prefix string) ([]Record, error) {
	q := g.db.WithContext(ctx).Where("collection = ?", collection)
	switch g.db.Dialector.Name() {
	case "mysql":
		q = q.Where("JSON_UNQUOTE(JSON_EXTRACT(data, ?)) LIKE ?", "$."+field, prefix+"%")
	default:
		q = q.Where("data ->> ? LIKE ?", field, prefix+"%")
	}
	var rows []recordRow
	if err := q.Order("record_key").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func toRecords(rows []recordRow) []Record {
	recs := make([]Record, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, Record{Key: row.RecordKey, Data: json.RawMessage(row.Data)})
	}
	return recs
}
