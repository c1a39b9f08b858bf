//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"review_analyzer/internal/domain"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

// ---------- small helpers ----------

func migrationsDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("cannot locate test file")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=reviews",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "reviews")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := mysqlrepo.Migrate(context.Background(), db, migrationsDir(t)); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ---------- the test ----------

func TestRepo_MySQL_InsertListCount(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	seed := []domain.Review{
		{ProductName: "iPhone 15 Pro", ReviewText: "great", Sentiment: domain.SentimentPositive, Confidence: 0.91, KeyPoints: []string{"great"}, CreatedAt: base},
		{ProductName: "Mouse Logitech", ReviewText: "bad", Sentiment: domain.SentimentNegative, Confidence: 0.65, CreatedAt: base.Add(time.Minute)},
		{ProductName: "iphone case", ReviewText: "ok", Sentiment: domain.SentimentNeutral, Confidence: 0.5, CreatedAt: base.Add(2 * time.Minute)},
		{ProductName: "50% off iPhone", ReviewText: "good", Sentiment: domain.SentimentPositive, Confidence: 0.99, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, rv := range seed {
		saved, err := repo.InsertReview(ctx, rv)
		if err != nil {
			t.Fatalf("InsertReview: %v", err)
		}
		if saved.ID == 0 {
			t.Fatalf("expected generated id")
		}
	}

	// newest first by default
	items, total, err := repo.ListReviews(ctx, domain.ListQuery{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if total != 4 || len(items) != 2 || items[0].ProductName != "50% off iPhone" {
		t.Fatalf("unexpected page: total=%d items=%+v", total, items)
	}
	if items[0].KeyPoints == nil {
		t.Fatalf("key points should decode to an empty slice")
	}

	// case-insensitive substring + sentiment + confidence sort
	pos := domain.SentimentPositive
	items, total, err = repo.ListReviews(ctx, domain.ListQuery{Sentiment: &pos, ProductName: "IPHONE", Sort: domain.SortConfidenceAsc, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListReviews filtered: %v", err)
	}
	if total != 2 || items[0].Confidence != 0.91 || items[1].Confidence != 0.99 {
		t.Fatalf("unexpected filtered page: total=%d items=%+v", total, items)
	}
	if len(items[0].KeyPoints) != 1 || items[0].KeyPoints[0] != "great" {
		t.Fatalf("key points not round-tripped: %+v", items[0].KeyPoints)
	}

	// LIKE wildcards in the filter are literal
	_, total, err = repo.ListReviews(ctx, domain.ListQuery{ProductName: "50%", Page: 1, PageSize: 10})
	if err != nil || total != 1 {
		t.Fatalf("expected literal %% match, total=%d err=%v", total, err)
	}

	counts, err := repo.CountBySentiment(ctx)
	if err != nil {
		t.Fatalf("CountBySentiment: %v", err)
	}
	if counts[domain.SentimentPositive] != 2 || counts[domain.SentimentNegative] != 1 || counts[domain.SentimentNeutral] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}
