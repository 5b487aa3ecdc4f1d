package venue

import (
	"slices"
	"strings"
	"testing"

	"github.com/geotech-lab/scholarsync/internal/record"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		venue string
		want  Category
	}{
		{"Proc. of the 5th KSCE Symposium", Korean},
		{"International Journal of Geotechnics", International},
		{"", International},
		{"Journal of the Korean Geotechnical Society", Korean},
		{"한국터널지하공간학회 논문집", Korean},
		{"대한토목학회논문집", Korean},
		{"KGS Fall National Conference", Korean},
		{"Proceedings of the ISRM Congress", Conference},
		{"World Tunnel Congress 2019", Conference},
		{"International Workshop on Rock Mechanics", Conference},
		{"Proc. ICE - Geotechnical Engineering", Conference},
		{"Tunnelling and Underground Space Technology", International},
		{"Acta Geotechnica 15 (3), 2020", International},
	}

	for _, tt := range tests {
		t.Run(tt.venue, func(t *testing.T) {
			if got := Classify(tt.venue); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.venue, got, tt.want)
			}
		})
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	venues := []string{
		"Proc. of the 5th KSCE Symposium",
		"journal of korean tunnelling",
		"International Conference on Soil Mechanics",
		"Computers and Geotechnics",
		"한국지반공학회 학술발표회",
	}
	for _, v := range venues {
		if Classify(v) != Classify(strings.ToUpper(v)) {
			t.Errorf("Classify(%q) = %q but upper-cased gives %q", v, Classify(v), Classify(strings.ToUpper(v)))
		}
	}
}

func TestClassify_KoreanBeforeConference(t *testing.T) {
	for _, kw := range KoreanKeywords {
		for _, ck := range ConferenceKeywords {
			v := kw + " " + ck
			if got := Classify(v); got != Korean {
				t.Errorf("Classify(%q) = %q, want korean", v, got)
			}
		}
	}
}

func TestClassify_AlwaysKnownCategory(t *testing.T) {
	inputs := []string{"", " ", "???", "Nature", "proc", "KES", "symposium", "école"}
	for _, in := range inputs {
		got := Classify(in)
		if !slices.Contains(Categories, got) {
			t.Errorf("Classify(%q) = %q, not a known category", in, got)
		}
	}
}

func TestClassifyPublication(t *testing.T) {
	pub := record.RawPublication{Journal: record.String("KSCE Journal of Civil Engineering")}
	if got := ClassifyPublication(pub); got != Korean {
		t.Errorf("ClassifyPublication() = %q, want korean", got)
	}
	if got := ClassifyPublication(record.RawPublication{}); got != International {
		t.Errorf("ClassifyPublication(empty) = %q, want international", got)
	}
}
