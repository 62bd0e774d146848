package sqlstore

import (
	"github.com/uptrace/bun"

	"logo-guess-service/internal/domain"
)

type brandModel struct {
	bun.BaseModel `bun:"table:brands,alias:b"`

	ID         int64  `bun:"id,pk,autoincrement"`
	Name       string `bun:"name,notnull"`
	Slug       string `bun:"slug,notnull,unique"`
	ImageURL   string `bun:"image_url,notnull"`
	Difficulty string `bun:"difficulty,notnull"`
	HasText    bool   `bun:"has_text,notnull,default:false"`
}

type scoreModel struct {
	bun.BaseModel `bun:"table:scores,alias:s"`

	ID         int64  `bun:"id,pk,autoincrement"`
	PlayerName string `bun:"player_name,notnull"`
	Score      int    `bun:"score,notnull"`
	Difficulty string `bun:"difficulty,notnull"`
}

func brandFromDomain(b domain.Brand) brandModel {
	return brandModel{
		Name:       b.Name,
		Slug:       b.Slug,
		ImageURL:   b.ImageURL,
		Difficulty: string(b.Difficulty),
		HasText:    b.HasText,
	}
}

func (m brandModel) toDomain() domain.Brand {
	return domain.Brand{
		ID:         m.ID,
		Name:       m.Name,
		Slug:       m.Slug,
		ImageURL:   m.ImageURL,
		Difficulty: domain.Tier(m.Difficulty),
		HasText:    m.HasText,
	}
}

func (m scoreModel) toDomain() domain.ScoreRecord {
	return domain.ScoreRecord{
		ID:         m.ID,
		PlayerName: m.PlayerName,
		Score:      m.Score,
		Difficulty: domain.Tier(m.Difficulty),
	}
}
