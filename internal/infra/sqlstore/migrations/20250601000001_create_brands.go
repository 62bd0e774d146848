package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

// brandsV1 is the brands table as first created.
type brandsV1 struct {
	bun.BaseModel `bun:"table:brands"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Name       string `bun:"name,notnull"`
	Slug       string `bun:"slug,notnull,unique"`
	ImageURL   string `bun:"image_url,notnull"`
	Difficulty string `bun:"difficulty,notnull"`
	HasText    bool   `bun:"has_text,notnull,default:false"`
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewCreateTable().Model((*brandsV1)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewCreateIndex().
				Model((*brandsV1)(nil)).
				Index("brands_difficulty_idx").
				Column("difficulty").
				IfNotExists().
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDropTable().Model((*brandsV1)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
