package repository

import "github.com/walletkit/walletkit/internal/model"

// DefaultCategories returns the categories seeded into an empty wallet.
// Their IDs are stable so seeded data is identical across installs.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "salary", Name: "Salary", Type: model.CategoryTypeIncome, Icon: "briefcase", Color: "#10B981", IsDefault: true},
		{ID: "freelance", Name: "Freelance", Type: model.CategoryTypeIncome, Icon: "laptop", Color: "#3B82F6", IsDefault: true},
		{ID: "investments", Name: "Investments", Type: model.CategoryTypeIncome, Icon: "trending-up", Color: "#8B5CF6", IsDefault: true},
		{ID: "gifts", Name: "Gifts", Type: model.CategoryTypeIncome, Icon: "gift", Color: "#EC4899", IsDefault: true},
		{ID: "other-income", Name: "Other Income", Type: model.CategoryTypeIncome, Icon: "plus-circle", Color: "#6B7280", IsDefault: true},
		{ID: "food", Name: "Food & Dining", Type: model.CategoryTypeExpense, Icon: "utensils", Color: "#F59E0B", IsDefault: true},
		{ID: "transport", Name: "Transportation", Type: model.CategoryTypeExpense, Icon: "car", Color: "#3B82F6", IsDefault: true},
		{ID: "shopping", Name: "Shopping", Type: model.CategoryTypeExpense, Icon: "shopping-bag", Color: "#EC4899", IsDefault: true},
		{ID: "entertainment", Name: "Entertainment", Type: model.CategoryTypeExpense, Icon: "film", Color: "#8B5CF6", IsDefault: true},
		{ID: "bills", Name: "Bills & Utilities", Type: model.CategoryTypeExpense, Icon: "file-text", Color: "#EF4444", IsDefault: true},
		{ID: "health", Name: "Health", Type: model.CategoryTypeExpense, Icon: "heart", Color: "#10B981", IsDefault: true},
		{ID: "education", Name: "Education", Type: model.CategoryTypeExpense, Icon: "book", Color: "#6366F1", IsDefault: true},
		{ID: "housing", Name: "Housing", Type: model.CategoryTypeExpense, Icon: "home", Color: "#F97316", IsDefault: true},
		{ID: "other-expense", Name: "Other Expenses", Type: model.CategoryTypeExpense, Icon: "more-horizontal", Color: "#6B7280", IsDefault: true},
	}
}
