package demo

import "time"

// Anchor is the date the template rows were written against. A row dated
// n days before the anchor is seeded n days before today.
var Anchor = time.Date(2024, 2, 25, 0, 0, 0, 0, time.UTC)

type Report struct {
	Circles       int
	Categories    int
	SubCategories int
	Transactions  int
	Skipped       []SkippedRow
}

type SkippedRow struct {
	Line   int
	Reason string
}

type circleSeed struct {
	name       string
	icon       string
	color      string
	categories []categorySeed
}

type categorySeed struct {
	name          string
	icon          string
	color         string
	subCategories []string
}

var circleSeeds = []circleSeed{
	{
		name:  "Family",
		icon:  "👨‍👩‍👧",
		color: "#33FF57",
		categories: []categorySeed{
			{name: "Housing", icon: "🏠", color: "#FF5733", subCategories: []string{"Rent", "Maintenance"}},
			{name: "Transportation", icon: "🚗", color: "#33FF57", subCategories: []string{"Fuel", "Public transport"}},
			{name: "Groceries", icon: "🍔", color: "#3366FF", subCategories: []string{"Supermarket", "Market"}},
			{name: "Utilities", icon: "💡", color: "#FFFF33", subCategories: []string{"Electricity", "Water", "Internet"}},
			{name: "Debt Payments", icon: "💳", color: "#FFA07A"},
			{name: "Entertainment", icon: "🎬", color: "#32CD32", subCategories: []string{"Cinema", "Streaming"}},
			{name: "Restaurant", icon: "🎓", color: "#1E90FF"},
			{name: "Miscellaneous", icon: "💇", color: "#FFD700"},
			{name: "Pet", icon: "💰", color: "#20B2AA"},
			{name: "Taxes", icon: "💸", color: "#7B68EE"},
			{name: "Furniture", icon: "🧸", color: "#00FF7F"},
			{name: "Travel", icon: "✈️", color: "#FF4500"},
			{name: "Jordan's Income", icon: "💼", color: "#8A2BE2"},
			{name: "Riley's Income", icon: "💼", color: "#ADFF2F"},
			{name: "Investment Income", icon: "💰", color: "#00CED1"},
			{name: "Rental Income", icon: "🏢", color: "#FF6347"},
			{name: "Other Sources of Income", icon: "🔀", color: "#FF5733"},
		},
	},
	{
		name:  "Personal",
		icon:  "🏠",
		color: "#FF5733",
		categories: []categorySeed{
			{name: "Gifts", icon: "🎁", color: "#FF4500"},
			{name: "Clothing", icon: "👚", color: "#9932CC"},
			{name: "Hobby", icon: "🎨", color: "#8A2BE2"},
			{name: "Healthcare", icon: "🏥", color: "#FF6347", subCategories: []string{"Pharmacy", "Dentist"}},
			{name: "Treats", icon: "🍬", color: "#FF5733"},
			{name: "Party", icon: "🎉", color: "#FF33FF"},
			{name: "Subscriptions", icon: "🎉", color: "#FF33FF", subCategories: []string{"Music", "Gym"}},
			{name: "Personal Share of Income", icon: "💰", color: "#20B2AA"},
		},
	},
}
