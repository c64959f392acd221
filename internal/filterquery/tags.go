package filterquery

import (
	"strconv"
	"strings"
)

// Tag is one active filter rendered for display.
type Tag struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// labels maps filter keys to their display names. Unmapped keys fall back
// to the raw key so new filters degrade gracefully instead of disappearing.
var labels = map[string]string{
	KeyBrand:        "Марка",
	KeyModel:        "Модель",
	KeyCategory:     "Категория",
	KeyYearFrom:     "Год от",
	KeyYearTo:       "Год до",
	KeyPriceFrom:    "Цена от",
	KeyPriceTo:      "Цена до",
	KeyMileageFrom:  "Пробег от",
	KeyMileageTo:    "Пробег до",
	KeyEngineType:   "Тип двигателя",
	KeyTransmission: "Коробка передач",
	KeyBodyType:     "Тип кузова",
	KeyColor:        "Цвет",
	KeyDriveUnit:    "Привод",
	KeyOptions:      "Опции",
}

// DisplayTags renders each present criterion of q as a (label, value) pair,
// in query order. Price values get a currency prefix and thousands
// grouping, mileage values get grouping and a distance unit, and the stored
// category value is mapped back to its display form. Everything else passes
// through unchanged. Empty values never become tags.
func DisplayTags(q Query) []Tag {
	tags := make([]Tag, 0, len(q))
	for _, p := range q {
		value := formatValue(p.Key, p.Value)
		if value == "" {
			continue
		}
		label, ok := labels[p.Key]
		if !ok {
			label = p.Key
		}
		tags = append(tags, Tag{Label: label, Value: value})
	}
	return tags
}

func formatValue(key string, raw any) string {
	switch v := raw.(type) {
	case []string:
		return strings.Join(v, ", ")
	case string:
		if v == "" {
			return ""
		}
		switch {
		case strings.Contains(key, "price"):
			return "₸" + groupThousands(v)
		case strings.Contains(key, "mileage"):
			return groupThousands(v) + " км"
		case key == KeyCategory:
			return categoryDisplay(v)
		}
		return v
	default:
		return ""
	}
}

func categoryDisplay(v string) string {
	switch v {
	case CategoryNew:
		return "Новый"
	case CategoryUsed:
		return "Подержанный"
	}
	return v
}

// groupThousands inserts spaces as thousands separators into a decimal
// integer string. Values that do not parse as integers are returned
// unchanged; the search layer is responsible for rejecting them.
func groupThousands(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}

	digits := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
