package app_test

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
)

func TestKeywordSentiment(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Sentiment
		conf float64
	}{
		{"positive id", "Produk bagus, pengiriman cepat, saya puas", domain.SentimentPositive, 0.9},
		{"negative en", "terrible and awful", domain.SentimentNegative, 0.8},
		{"tie", "good but bad", domain.SentimentNeutral, 0.6},
		{"none", "biasa saja", domain.SentimentNeutral, 0.6},
		{"capped", "good great excellent amazing love best perfect", domain.SentimentPositive, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, conf := app.KeywordSentiment(tc.text)
			if got != tc.want {
				t.Fatalf("sentiment = %s, want %s", got, tc.want)
			}
			if diff := conf - tc.conf; diff > 1e-9 || diff < -1e-9 {
				t.Fatalf("confidence = %v, want %v", conf, tc.conf)
			}
		})
	}
}

func TestParseKeyPoints(t *testing.T) {
	cases := []struct {
		in   string
		want []string
		ok   bool
	}{
		{`["a", "b"]`, []string{"a", "b"}, true},
		{"```json\n[\"a\"]\n```", []string{"a"}, true},
		{"```\n[\"x\", \" \"]\n```", []string{"x"}, true},
		{`[]`, nil, false},
		{`{"points": ["a"]}`, nil, false},
		{`Here are the points: a, b`, nil, false},
	}
	for _, tc := range cases {
		got, ok := app.ParseKeyPoints(tc.in)
		if ok != tc.ok || !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseKeyPoints(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestSentenceKeyPoints(t *testing.T) {
	if got := app.SentenceKeyPoints("One. Two!\nThree? Four."); !reflect.DeepEqual(got, []string{"One", "Two", "Three"}) {
		t.Fatalf("unexpected split: %v", got)
	}
	if got := app.SentenceKeyPoints(" ... !!"); !reflect.DeepEqual(got, []string{"Review analyzed"}) {
		t.Fatalf("unexpected fallback: %v", got)
	}
}

func TestKeyPointPrompt_EmbedsReview(t *testing.T) {
	p := app.KeyPointPrompt("battery is weak")
	if !strings.Contains(p, "Review: battery is weak") || !strings.Contains(p, "JSON array") {
		t.Fatalf("unexpected prompt: %s", p)
	}
}

func TestDisabled_FallsBackLocally(t *testing.T) {
	repo := &fakeRepo{}
	d := app.Disabled{Service: "huggingface"}
	svc := app.NewAnalysisService(d, d, repo, nil)

	got, err := svc.Analyze(context.Background(), "Laptop", "Mantap, sangat puas")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if got.Sentiment != domain.SentimentPositive {
		t.Fatalf("expected keyword fallback POSITIVE, got %s", got.Sentiment)
	}
	if !reflect.DeepEqual(got.KeyPoints, []string{"Mantap, sangat puas"}) {
		t.Fatalf("expected sentence fallback, got %v", got.KeyPoints)
	}
}
