// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package terms

import (
	"reflect"
	"testing"
)

func TestBuildKnownCategory(t *testing.T) {
	got := Build("Glioblastoma", "")
	want := []string{"glioblastoma", "GBM", "glioblastoma multiforme"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildFallback(t *testing.T) {
	tests := []struct {
		name      string
		diagnosis string
	}{
		{"other", "Other"},
		{"unset", ""},
		{"unknown free text", "pineal region mass"},
	}
	want := []string{"brain tumor", "spinal cord tumor", "CNS tumor"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.diagnosis, ""); !reflect.DeepEqual(got, want) {
				t.Errorf("Build(%q) = %v, want %v", tt.diagnosis, got, want)
			}
		})
	}
}

func TestBuildAppendsKeywordsInOrder(t *testing.T) {
	got := Build("Meningioma", " vaccine ,, immunotherapy,car-t ")
	want := []string{"meningioma", "vaccine", "immunotherapy", "car-t"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildDropsDuplicateKeywords(t *testing.T) {
	got := Build("Meningioma", "meningioma, vaccine, vaccine")
	want := []string{"meningioma", "vaccine"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build("Ependymoma", "proton therapy, pediatric")
	b := Build("Ependymoma", "proton therapy, pediatric")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Build() not deterministic: %v vs %v", a, b)
	}
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"only commas", ",,,", nil},
		{"trimmed", " a , b ", []string{"a", "b"}},
		{"single", "vaccine", []string{"vaccine"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitKeywords(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitKeywords(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoriesSortedAndComplete(t *testing.T) {
	cats := Categories()
	if len(cats) != len(DiagnosisTerms) {
		t.Fatalf("Categories() returned %d names, want %d", len(cats), len(DiagnosisTerms))
	}
	for i := 1; i < len(cats); i++ {
		if cats[i-1] >= cats[i] {
			t.Errorf("Categories() not sorted at %d: %q >= %q", i, cats[i-1], cats[i])
		}
	}
}
