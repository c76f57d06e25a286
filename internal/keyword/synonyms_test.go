package keyword

import (
	"reflect"
	"testing"
)

func TestExpandKeywordsSynonymMap(t *testing.T) {
	got := ExpandKeywords([]string{"심카드", "해킹", "문제", "해결"}, "심카드 해킹 문제 어떻게 해결하나요?")
	want := []string{"유심", "심카드", "USIM", "SIM", "해킹", "침입", "탈취", "문제", "해결"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandKeywords = %v, want %v", got, want)
	}
}

func TestExpandKeywordsNoSynonymsPassThrough(t *testing.T) {
	got := ExpandKeywords([]string{"배송", "지연"}, "배송 지연 문의")
	want := []string{"배송", "지연"}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandKeywords = %v, want %v", got, want)
	}
}

func TestExpandKeywordsTriggerInjectionOnShortList(t *testing.T) {
	got := ExpandKeywords([]string{"유심"}, "유심 해킹")

	// One extracted keyword is below the injection threshold, so the
	// trigger terms found in the raw query inject their canonical forms.
	want := []string{"유심", "심카드", "USIM", "SIM", "해킹", "침입", "탈취"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExpandKeywords = %v, want %v", got, want)
	}
}

func TestExpandKeywordsNoInjectionWhenEnoughKeywords(t *testing.T) {
	got := ExpandKeywords([]string{"배송", "지연"}, "유출 관련 배송 지연")

	for _, kw := range got {
		if kw == "유출" {
			t.Fatalf("trigger injection must not fire with enough keywords: %v", got)
		}
	}
}

func TestExpandKeywordsEmptyInput(t *testing.T) {
	got := ExpandKeywords(nil, "일반 문의")
	if len(got) != 0 {
		t.Fatalf("expected no expansion for empty input without triggers, got %v", got)
	}
}

func TestExpandKeywordsDeduplicates(t *testing.T) {
	got := ExpandKeywords([]string{"유심", "심카드"}, "유심 심카드")

	seen := make(map[string]struct{})
	for _, kw := range got {
		if _, ok := seen[kw]; ok {
			t.Fatalf("duplicate keyword %q in %v", kw, got)
		}
		seen[kw] = struct{}{}
	}
}
