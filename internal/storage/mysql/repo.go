package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if rv.KeyPoints == nil {
		rv.KeyPoints = []string{}
	}
	kp, err := json.Marshal(rv.KeyPoints)
	if err != nil {
		return domain.Review{}, err
	}
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		rv.ProductName,
		rv.ReviewText,
		string(rv.Sentiment),
		rv.Confidence,
		string(kp),
		rv.CreatedAt.UTC(),
	)
	if err != nil {
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID = id
	return rv, nil
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ListQuery) ([]domain.Review, int, error) {
	q = q.Normalize()
	where, args := whereClause(q)

	var total int
	if err := r.db.QueryRowContext(ctx, countReviewsSQL+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	if total == 0 {
		return []domain.Review{}, 0, nil
	}

	query := selectReviewColumns + where + orderBy[string(q.Sort)] + " LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, q.PageSize, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		var (
			rv        domain.Review
			sentiment string
			keyPoints sql.RawBytes
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductName,
			&rv.ReviewText,
			&sentiment,
			&rv.Confidence,
			&keyPoints,
			&rv.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		rv.Sentiment = domain.Sentiment(sentiment)
		rv.KeyPoints = decodeKeyPoints(rv.ID, keyPoints)
		rv.CreatedAt = rv.CreatedAt.UTC()
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *Repo) CountBySentiment(ctx context.Context) (map[domain.Sentiment]int, error) {
	rows, err := r.db.QueryContext(ctx, countBySentimentSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.Sentiment]int{}
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[domain.Sentiment(s)] = n
	}
	return out, rows.Err()
}

func whereClause(q domain.ListQuery) (string, []any) {
	var conds []string
	var args []any
	if q.Sentiment != nil {
		conds = append(conds, "sentiment = ?")
		args = append(args, string(*q.Sentiment))
	}
	if q.ProductName != "" {
		// case-insensitive through the column collation
		conds = append(conds, `product_name LIKE ? ESCAPE '\\'`)
		args = append(args, "%"+escapeLike(q.ProductName)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// decodeKeyPoints never fails the listing; a corrupt column yields no key points.
func decodeKeyPoints(id int64, raw []byte) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Int64("review_id", id).Err(err).Msg("undecodable key_points column")
		return []string{}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
