package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

type scoresV1 struct {
	bun.BaseModel `bun:"table:scores"`

	ID         int64  `bun:"id,pk,autoincrement"`
	PlayerName string `bun:"player_name,notnull"`
	Score      int    `bun:"score,notnull"`
	Difficulty string `bun:"difficulty,notnull"`
}

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			if _, err := db.NewCreateTable().Model((*scoresV1)(nil)).IfNotExists().Exec(ctx); err != nil {
				return err
			}
			_, err := db.NewCreateIndex().
				Model((*scoresV1)(nil)).
				Index("scores_score_idx").
				Column("score").
				IfNotExists().
				Exec(ctx)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.NewDropTable().Model((*scoresV1)(nil)).IfExists().Exec(ctx)
			return err
		},
	)
}
