package analyzer

import (
	"reflect"
	"testing"

	"senti/internal/domain"
)

func TestExtract_OrdersByCountThenFirstSeen(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("cat dog cat dog bird", 3)
	want := []domain.KeywordCount{
		{Keyword: "cat", Count: 2},
		{Keyword: "dog", Count: 2},
		{Keyword: "bird", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestExtract_TopNLimitsResult(t *testing.T) {
	e := NewExtractor()

	text := "alpha beta gamma delta epsilon"
	for _, topN := range []int{0, 1, 3, 5, 10} {
		got := e.Extract(text, topN)
		if len(got) > topN {
			t.Errorf("Extract(_, %d) returned %d keywords", topN, len(got))
		}
	}
	if got := e.Extract(text, 10); len(got) != 5 {
		t.Errorf("expected all 5 distinct keywords, got %d", len(got))
	}
}

func TestExtract_EmptyAndDegenerate(t *testing.T) {
	e := NewExtractor()

	if got := e.Extract("", 5); got != nil {
		t.Errorf("expected nil for empty text, got %v", got)
	}
	if got := e.Extract("some words here", 0); got != nil {
		t.Errorf("expected nil for topN=0, got %v", got)
	}
	if got := e.Extract("the and of to", 5); got != nil {
		t.Errorf("expected nil for stopword-only text, got %v", got)
	}
}

func TestExtract_CaseFolding(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Apple apple APPLE", 5)
	want := []domain.KeywordCount{{Keyword: "apple", Count: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}

func TestExtract_ShortAndStopwordRemoval(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("go to the market ox market", 5)
	for _, kw := range got {
		if len(kw.Keyword) <= 2 {
			t.Errorf("short token should be removed: %q", kw.Keyword)
		}
		if kw.Keyword == "the" {
			t.Errorf("stopword should be removed: %v", got)
		}
	}
	if len(got) != 1 || got[0].Keyword != "market" || got[0].Count != 2 {
		t.Errorf("expected [market:2], got %v", got)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	e := NewExtractor()

	text := "service was slow but the food was excellent, truly excellent"
	first := e.Extract(text, 4)
	second := e.Extract(text, 4)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"don't stop2think", []string{"don't", "stop", "think"}},
		{"hello, world!", []string{"hello", "world"}},
		{"over-the-top", []string{"over", "the", "top"}},
		{"abc123def", []string{"abc", "def"}},
		{"", nil},
		{"42 7", nil},
	}

	for _, tt := range tests {
		words := splitWords(tt.input)
		if !reflect.DeepEqual(words, tt.expected) {
			t.Errorf("splitWords(%q) = %v, want %v", tt.input, words, tt.expected)
		}
	}
}
