package filterquery

import (
	"strings"
	"testing"
)

func TestToQuery_OmitsBlankFields(t *testing.T) {
	q := ToQuery(Form{Brand: "", Model: "BMW", PriceFrom: ""})

	if len(q) != 1 {
		t.Fatalf("expected exactly one param, got %d: %v", len(q), q)
	}
	if q[0].Key != KeyModel || q[0].Value != "BMW" {
		t.Errorf("got %v; want {model BMW}", q[0])
	}
}

func TestToQuery_EmptyFormYieldsEmptyQuery(t *testing.T) {
	q := ToQuery(Form{})
	if len(q) != 0 {
		t.Fatalf("expected empty query, got %v", q)
	}

	tags := DisplayTags(q)
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}

func TestToQuery_TabMapsToCategory(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want string
	}{
		{"new tab", Form{Tab: "new"}, CategoryNew},
		{"used tab", Form{Tab: "used"}, CategoryUsed},
		{"no tab", Form{}, ""},
		{"unknown tab", Form{Tab: "leased"}, ""},
		{"explicit category wins", Form{Tab: "new", Category: CategoryUsed}, CategoryUsed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ToQuery(tt.form)
			if got := q.Get(KeyCategory); got != tt.want {
				t.Errorf("category = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestToQuery_SchemaOrder(t *testing.T) {
	q := ToQuery(Form{
		Color:     "black",
		Brand:     "Audi",
		PriceTo:   "9000000",
		YearFrom:  "2018",
		PriceFrom: "3000000",
	})

	want := []string{KeyBrand, KeyPriceFrom, KeyPriceTo, KeyYearFrom, KeyColor}
	if len(q) != len(want) {
		t.Fatalf("expected %d params, got %d: %v", len(want), len(q), q)
	}
	for i, key := range want {
		if q[i].Key != key {
			t.Errorf("param %d key = %q; want %q", i, q[i].Key, key)
		}
	}
}

func TestToQuery_NumericValuesPassThroughUnchanged(t *testing.T) {
	// Invalid numbers are not the translator's problem; they go through
	// as-is and the search layer rejects them.
	q := ToQuery(Form{PriceFrom: "not-a-number", MileageTo: "12o000"})
	if got := q.Get(KeyPriceFrom); got != "not-a-number" {
		t.Errorf("price_from = %q; want pass-through", got)
	}
	if got := q.Get(KeyMileageTo); got != "12o000" {
		t.Errorf("mileage_to = %q; want pass-through", got)
	}
}

func TestToQuery_OptionsIncludedOnlyWhenNonEmpty(t *testing.T) {
	if q := ToQuery(Form{Options: nil}); q.Has(KeyOptions) {
		t.Error("nil options must be omitted")
	}
	if q := ToQuery(Form{Options: []string{}}); q.Has(KeyOptions) {
		t.Error("empty options must be omitted")
	}

	q := ToQuery(Form{Options: []string{"sunroof", "leather"}})
	if !q.Has(KeyOptions) {
		t.Fatal("non-empty options must be included")
	}
	vals, ok := q[0].Value.([]string)
	if !ok || len(vals) != 2 {
		t.Fatalf("options value = %v; want two-element []string", q[0].Value)
	}
}

func TestToQuery_ExtraKeysPassThrough(t *testing.T) {
	q := ToQuery(Form{
		Brand: "Kia",
		Extra: map[string]string{"seats": "7", "owner": "", "city": "Almaty"},
	})

	if got := q.Get("seats"); got != "7" {
		t.Errorf("seats = %q; want 7", got)
	}
	if got := q.Get("city"); got != "Almaty" {
		t.Errorf("city = %q; want Almaty", got)
	}
	if q.Has("owner") {
		t.Error("blank extra key must be elided like any other blank value")
	}
	// Known fields come first, extras after.
	if q[0].Key != KeyBrand {
		t.Errorf("first key = %q; want brand", q[0].Key)
	}
}

func TestQuery_MarshalJSONPreservesOrder(t *testing.T) {
	q := ToQuery(Form{Brand: "BMW", Model: "X5", YearFrom: "2020"})

	b, err := q.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(b)
	want := `{"brand":"BMW","model":"X5","year_from":"2020"}`
	if got != want {
		t.Errorf("json = %s; want %s", got, want)
	}
}

func TestQuery_MarshalJSONEmpty(t *testing.T) {
	b, err := ToQuery(Form{}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Errorf("json = %s; want {}", b)
	}
}

func TestDisplayTags_PriceFormatting(t *testing.T) {
	q := ToQuery(Form{PriceFrom: "5000000"})
	tags := DisplayTags(q)

	if len(tags) != 1 {
		t.Fatalf("expected one tag, got %v", tags)
	}
	if tags[0].Label != "Цена от" {
		t.Errorf("label = %q; want Цена от", tags[0].Label)
	}
	if !strings.Contains(tags[0].Value, "₸") {
		t.Errorf("value %q missing currency marker", tags[0].Value)
	}
	if !strings.Contains(tags[0].Value, "5 000 000") {
		t.Errorf("value %q missing thousands grouping", tags[0].Value)
	}
}

func TestDisplayTags_MileageFormatting(t *testing.T) {
	tags := DisplayTags(ToQuery(Form{MileageTo: "120000"}))

	if len(tags) != 1 {
		t.Fatalf("expected one tag, got %v", tags)
	}
	if tags[0].Value != "120 000 км" {
		t.Errorf("value = %q; want %q", tags[0].Value, "120 000 км")
	}
}

func TestDisplayTags_CategoryDisplay(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{CategoryNew, "Новый"},
		{CategoryUsed, "Подержанный"},
		{"Demo Car", "Demo Car"},
	}
	for _, tt := range tests {
		tags := DisplayTags(Query{{Key: KeyCategory, Value: tt.value}})
		if len(tags) != 1 || tags[0].Value != tt.want {
			t.Errorf("category %q → %v; want value %q", tt.value, tags, tt.want)
		}
	}
}

func TestDisplayTags_UnknownKeyFallsBackToRawKey(t *testing.T) {
	tags := DisplayTags(Query{{Key: "seats", Value: "7"}})
	if len(tags) != 1 || tags[0].Label != "seats" || tags[0].Value != "7" {
		t.Errorf("got %v; want label=seats value=7", tags)
	}
}

func TestDisplayTags_FollowsQueryOrder(t *testing.T) {
	q := Query{
		{Key: KeyTransmission, Value: "automatic"},
		{Key: KeyBrand, Value: "Tesla"},
	}
	tags := DisplayTags(q)
	if len(tags) != 2 {
		t.Fatalf("expected two tags, got %v", tags)
	}
	if tags[0].Label != "Коробка передач" || tags[1].Label != "Марка" {
		t.Errorf("tag order %v does not follow query order", tags)
	}
}

func TestDisplayTags_InvalidNumberPassesThrough(t *testing.T) {
	tags := DisplayTags(Query{{Key: KeyPriceFrom, Value: "dorogo"}})
	if len(tags) != 1 || tags[0].Value != "₸dorogo" {
		t.Errorf("got %v; want raw value behind currency marker", tags)
	}
}

func TestRoundTrip_OneTagPerNonEmptyField(t *testing.T) {
	form := Form{
		Brand:        "Toyota",
		Model:        "Camry",
		Tab:          "used",
		PriceFrom:    "4000000",
		PriceTo:      "",
		YearFrom:     "2019",
		MileageFrom:  "",
		EngineType:   "hybrid",
		Transmission: "",
	}

	q := ToQuery(form)
	tags := DisplayTags(q)

	// Non-empty: brand, model, category (from tab), price_from, year_from,
	// engine_type.
	if len(tags) != 6 {
		t.Fatalf("expected 6 tags, got %d: %v", len(tags), tags)
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag.Value) == "" {
			t.Errorf("tag %q rendered with blank value", tag.Label)
		}
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1 000"},
		{"120000", "120 000"},
		{"5000000", "5 000 000"},
		{"-12345", "-12 345"},
		{"007", "7"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		if got := groupThousands(tt.in); got != tt.want {
			t.Errorf("groupThousands(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
