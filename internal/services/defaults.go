package services

import "github.com/stoicaandrei/monney2/internal/models"

// defaultCategory is a seeded root category and its children.
type defaultCategory struct {
	Name     string
	Color    string
	Children []defaultCategory
}

// defaultCategories is the category forest every new user starts with.
var defaultCategories = map[models.CategoryType][]defaultCategory{
	models.CategoryTypeIncome: {
		{Name: "Salary & Wages", Color: "#10b981", Children: []defaultCategory{
			{Name: "Regular Salary", Color: "#10b981"},
			{Name: "Bonuses", Color: "#34d399"},
			{Name: "Overtime", Color: "#6ee7b7"},
		}},
		{Name: "Freelance & Business", Color: "#3b82f6", Children: []defaultCategory{
			{Name: "Freelance Work", Color: "#3b82f6"},
			{Name: "Consulting", Color: "#60a5fa"},
			{Name: "Side Projects", Color: "#93c5fd"},
		}},
		{Name: "Investments", Color: "#8b5cf6", Children: []defaultCategory{
			{Name: "Dividends", Color: "#8b5cf6"},
			{Name: "Interest", Color: "#a78bfa"},
			{Name: "Capital Gains", Color: "#c4b5fd"},
		}},
		{Name: "Passive Income", Color: "#f59e0b", Children: []defaultCategory{
			{Name: "Rental Income", Color: "#f59e0b"},
			{Name: "Royalties", Color: "#fbbf24"},
		}},
		{Name: "Gifts & Awards", Color: "#f43f5e"},
		{Name: "Other Income", Color: "#64748b"},
	},
	models.CategoryTypeExpense: {
		{Name: "Food & Dining", Color: "#10b981", Children: []defaultCategory{
			{Name: "Groceries", Color: "#10b981"},
			{Name: "Restaurants & Cafes", Color: "#34d399"},
			{Name: "Coffee & Snacks", Color: "#6ee7b7"},
			{Name: "Delivery & Takeout", Color: "#a7f3d0"},
		}},
		{Name: "Housing", Color: "#3b82f6", Children: []defaultCategory{
			{Name: "Rent / Mortgage", Color: "#3b82f6"},
			{Name: "Home Insurance", Color: "#60a5fa"},
			{Name: "Repairs & Maintenance", Color: "#93c5fd"},
			{Name: "Furniture & Decor", Color: "#bfdbfe"},
		}},
		{Name: "Transportation", Color: "#8b5cf6", Children: []defaultCategory{
			{Name: "Fuel", Color: "#8b5cf6"},
			{Name: "Public Transit", Color: "#a78bfa"},
			{Name: "Car Insurance", Color: "#c4b5fd"},
			{Name: "Maintenance & Repairs", Color: "#ddd6fe"},
			{Name: "Parking & Tolls", Color: "#ede9fe"},
			{Name: "Ride Sharing", Color: "#7c3aed"},
		}},
		{Name: "Utilities", Color: "#f59e0b", Children: []defaultCategory{
			{Name: "Electricity", Color: "#f59e0b"},
			{Name: "Water", Color: "#fbbf24"},
			{Name: "Gas / Heating", Color: "#fcd34d"},
			{Name: "Internet", Color: "#fde68a"},
			{Name: "Phone", Color: "#d97706"},
		}},
		{Name: "Healthcare", Color: "#06b6d4", Children: []defaultCategory{
			{Name: "Doctor & Dentist", Color: "#06b6d4"},
			{Name: "Pharmacy", Color: "#22d3ee"},
			{Name: "Health Insurance", Color: "#67e8f9"},
			{Name: "Gym & Fitness", Color: "#0891b2"},
		}},
		{Name: "Entertainment", Color: "#f43f5e", Children: []defaultCategory{
			{Name: "Movies & Shows", Color: "#f43f5e"},
			{Name: "Games", Color: "#fb7185"},
			{Name: "Hobbies", Color: "#fda4af"},
			{Name: "Books & Magazines", Color: "#e11d48"},
			{Name: "Music & Concerts", Color: "#be123c"},
		}},
		{Name: "Shopping", Color: "#f97316", Children: []defaultCategory{
			{Name: "Clothing & Shoes", Color: "#f97316"},
			{Name: "Electronics", Color: "#fb923c"},
			{Name: "Gifts", Color: "#fdba74"},
			{Name: "Personal Care", Color: "#ea580c"},
		}},
		{Name: "Education", Color: "#14b8a6", Children: []defaultCategory{
			{Name: "Courses & Tuition", Color: "#14b8a6"},
			{Name: "Books & Supplies", Color: "#2dd4bf"},
			{Name: "Certifications", Color: "#5eead4"},
		}},
		{Name: "Subscriptions", Color: "#a855f7", Children: []defaultCategory{
			{Name: "Streaming Services", Color: "#a855f7"},
			{Name: "Software", Color: "#c084fc"},
			{Name: "News & Magazines", Color: "#d8b4fe"},
		}},
		{Name: "Travel", Color: "#ec4899", Children: []defaultCategory{
			{Name: "Flights", Color: "#ec4899"},
			{Name: "Hotels & Accommodation", Color: "#f472b6"},
			{Name: "Activities & Tours", Color: "#f9a8d4"},
			{Name: "Travel Insurance", Color: "#db2777"},
		}},
		{Name: "Financial", Color: "#64748b", Children: []defaultCategory{
			{Name: "Bank Fees", Color: "#64748b"},
			{Name: "Taxes", Color: "#94a3b8"},
			{Name: "Loan Payments", Color: "#475569"},
			{Name: "Insurance (Other)", Color: "#cbd5e1"},
		}},
		{Name: "Family & Pets", Color: "#eab308", Children: []defaultCategory{
			{Name: "Childcare", Color: "#eab308"},
			{Name: "Pet Care", Color: "#facc15"},
			{Name: "Family Activities", Color: "#fde047"},
		}},
		{Name: "Other Expense", Color: "#64748b"},
	},
}

// defaultTags are the tags every new user starts with.
var defaultTags = []string{
	"Vacation",
	"Subscription",
	"Work",
	"Reimbursable",
	"Gift",
	"Recurring",
	"Tax Deductible",
	"Personal",
	"Emergency",
	"Refund",
}
