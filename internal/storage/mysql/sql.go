package mysql

const insertReviewSQL = `
INSERT INTO reviews
  (product_name, review_text, sentiment, confidence, key_points, created_at)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const selectReviewColumns = `
SELECT id, product_name, review_text, sentiment, confidence, key_points, created_at
FROM reviews
`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`

const countBySentimentSQL = `
SELECT sentiment, COUNT(*)
FROM reviews
GROUP BY sentiment
`

// orderBy is a closed set; user input never reaches the ORDER BY clause directly.
// id breaks ties so pages are stable.
var orderBy = map[string]string{
	"created_at_desc": " ORDER BY created_at DESC, id DESC",
	"created_at_asc":  " ORDER BY created_at ASC, id ASC",
	"confidence_desc": " ORDER BY confidence DESC, id DESC",
	"confidence_asc":  " ORDER BY confidence ASC, id ASC",
}
