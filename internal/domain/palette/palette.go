// Package palette holds the fixed colors and suggested icons shared by
// circles and categories.
package palette

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	DefaultIcon  = "🏠"
	DefaultColor = "#FF5733"

	maxIconRunes = 8
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidIcon  = errors.New("invalid icon")
)

type Choice struct {
	Value string
	Label string
}

var Colors = []Choice{
	{"#FF5733", "Red"},
	{"#33FF57", "Green"},
	{"#3366FF", "Blue"},
	{"#FFFF33", "Yellow"},
	{"#FF33FF", "Purple"},
	{"#FFA07A", "Light Salmon"},
	{"#32CD32", "Lime Green"},
	{"#1E90FF", "Dodger Blue"},
	{"#FFD700", "Gold"},
	{"#9932CC", "Dark Orchid"},
	{"#20B2AA", "Light Sea Green"},
	{"#FF69B4", "Hot Pink"},
	{"#7B68EE", "Medium Slate Blue"},
	{"#00FF7F", "Spring Green"},
	{"#FF4500", "Orange Red"},
	{"#8A2BE2", "Blue Violet"},
	{"#ADFF2F", "Green Yellow"},
	{"#00CED1", "Dark Turquoise"},
	{"#FF6347", "Tomato"},
}

// Icons are suggestions for the forms; any short emoji is accepted.
var Icons = []Choice{
	{"🏠", "Housing"},
	{"🚗", "Transportation"},
	{"🍔", "Food"},
	{"💡", "Utilities"},
	{"🏥", "Healthcare"},
	{"💳", "Debt Payments"},
	{"🎬", "Entertainment"},
	{"🎓", "Education"},
	{"💇", "Personal Care"},
	{"👚", "Clothing"},
	{"💰", "Savings"},
	{"🎁", "Gifts"},
	{"💸", "Taxes"},
	{"🧸", "Childcare"},
	{"✈️", "Travel"},
	{"💼", "Employment Income"},
	{"💰", "Investment Income"},
	{"🏢", "Rental Income"},
	{"🔀", "Other Sources of Income"},
}

// NormalizeColor upper-cases the hex code and checks it against Colors.
// An empty value yields DefaultColor.
func NormalizeColor(value string) (string, error) {
	color := strings.ToUpper(strings.TrimSpace(value))
	if color == "" {
		return DefaultColor, nil
	}
	for _, choice := range Colors {
		if choice.Value == color {
			return color, nil
		}
	}
	return "", ErrInvalidColor
}

// NormalizeIcon trims the value and falls back to DefaultIcon when empty.
func NormalizeIcon(value string) (string, error) {
	icon := strings.TrimSpace(value)
	if icon == "" {
		return DefaultIcon, nil
	}
	if !utf8.ValidString(icon) || utf8.RuneCountInString(icon) > maxIconRunes {
		return "", ErrInvalidIcon
	}
	for _, r := range icon {
		if r < 0x80 {
			return "", ErrInvalidIcon
		}
	}
	return icon, nil
}
