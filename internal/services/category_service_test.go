package services

import (
	"testing"

	"github.com/stoicaandrei/monney2/internal/categorytree"
	"github.com/stoicaandrei/monney2/internal/models"
	"github.com/stoicaandrei/monney2/internal/testutil"
	"github.com/stoicaandrei/monney2/internal/uuid"
)

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	t.Run("valid_root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat, err := svc.CreateCategory(user.ID, "  Groceries ", models.CategoryTypeExpense, "#10b981", nil)
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected trimmed name Groceries, got %q", cat.Name)
		}
		if cat.Order != 0 {
			t.Errorf("expected order 0 for first sibling, got %d", cat.Order)
		}
		if cat.ParentID != nil {
			t.Errorf("expected root category, got parent %v", *cat.ParentID)
		}
	})

	t.Run("order_is_max_plus_one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := svc.CreateCategory(user.ID, "Food", models.CategoryTypeExpense, "", nil)
		testutil.AssertNoError(t, err)
		if err := db.Model(first).Update("sort_order", 7).Error; err != nil {
			t.Fatalf("bump order: %v", err)
		}

		second, err := svc.CreateCategory(user.ID, "Rent", models.CategoryTypeExpense, "", nil)
		testutil.AssertNoError(t, err)
		if second.Order != 8 {
			t.Errorf("expected order 8, got %d", second.Order)
		}

		income, err := svc.CreateCategory(user.ID, "Salary", models.CategoryTypeIncome, "", nil)
		testutil.AssertNoError(t, err)
		if income.Order != 0 {
			t.Errorf("expected other type to start at 0, got %d", income.Order)
		}
	})

	t.Run("duplicate_name_case_and_whitespace_insensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Food", models.CategoryTypeExpense, "", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "food ", models.CategoryTypeExpense, "", nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY_NAME")
	})

	t.Run("same_name_allowed_in_other_scope", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		parent, err := svc.CreateCategory(user.ID, "Food", models.CategoryTypeExpense, "", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Food", models.CategoryTypeExpense, "", &parent.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user.ID, "Food", models.CategoryTypeIncome, "", nil)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(other.ID, "Food", models.CategoryTypeExpense, "", nil)
		testutil.AssertNoError(t, err)
	})

	t.Run("with_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		parent, err := svc.CreateCategory(user.ID, "Food", models.CategoryTypeExpense, "", nil)
		testutil.AssertNoError(t, err)

		child, err := svc.CreateCategory(user.ID, "Snacks", models.CategoryTypeExpense, "", &parent.ID)
		testutil.AssertNoError(t, err)

		if child.ParentID == nil || *child.ParentID != parent.ID {
			t.Errorf("expected parent ID %s, got %v", parent.ID, child.ParentID)
		}
	})

	t.Run("parent_of_other_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		parent, err := svc.CreateCategory(user.ID, "Salary", models.CategoryTypeIncome, "", nil)
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory(user.ID, "Snacks", models.CategoryTypeExpense, "", &parent.ID)
		testutil.AssertAppError(t, err, "CATEGORY_TYPE_MISMATCH")
	})

	t.Run("invalid_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Orphan", models.CategoryTypeExpense, "", strPtr(uuid.New()))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("parent_of_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		_, err := svc.CreateCategory(user.ID, "Mine", models.CategoryTypeExpense, "", &foreign.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "   ", models.CategoryTypeExpense, "", nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("no_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("", "Food", models.CategoryTypeExpense, "", nil)
		testutil.AssertAppError(t, err, "UNAUTHORIZED")
	})
}

func TestGetCategoryByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	t.Run("owner", func(t *testing.T) {
		got, err := svc.GetCategoryByID(user.ID, cat.ID)
		testutil.AssertNoError(t, err)
		if got.ID != cat.ID {
			t.Errorf("expected %s, got %s", cat.ID, got.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetCategoryByID(user.ID, uuid.New())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("other_owner", func(t *testing.T) {
		_, err := svc.GetCategoryByID(other.ID, cat.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_and_recolor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		got, err := svc.UpdateCategory(user.ID, cat.ID, strPtr(" Dining "), strPtr("#ff0000"))
		testutil.AssertNoError(t, err)
		if got.Name != "Dining" || got.Color != "#ff0000" {
			t.Errorf("unexpected category after update: %+v", got)
		}
		if got.Type != cat.Type {
			t.Errorf("type must not change, got %s", got.Type)
		}
	})

	t.Run("rename_to_own_name_in_other_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)

		got, err := svc.UpdateCategory(user.ID, cat.ID, strPtr("FOOD"), nil)
		testutil.AssertNoError(t, err)
		if got.Name != "FOOD" {
			t.Errorf("expected FOOD, got %s", got.Name)
		}
	})

	t.Run("rename_collides_with_sibling", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
		rent := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Rent", nil)

		_, err := svc.UpdateCategory(user.ID, rent.ID, strPtr(" food"), nil)
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY_NAME")
	})

	t.Run("color_only_skips_name_check", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		got, err := svc.UpdateCategory(user.ID, cat.ID, nil, strPtr("#123456"))
		testutil.AssertNoError(t, err)
		if got.Name != cat.Name {
			t.Errorf("name must not change, got %s", got.Name)
		}
	})

	t.Run("other_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.UpdateCategory(other.ID, cat.ID, strPtr("Mine"), nil)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("lifts_children_to_parent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		root := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
		mid := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Groceries", &root.ID)
		c1 := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Organic", &mid.ID)
		c2 := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Bulk", &mid.ID)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, mid.ID))

		for _, id := range []string{c1.ID, c2.ID} {
			got, err := svc.GetCategoryByID(user.ID, id)
			testutil.AssertNoError(t, err)
			if got.ParentID == nil || *got.ParentID != root.ID {
				t.Errorf("expected %s to be lifted under %s, got %v", id, root.ID, got.ParentID)
			}
		}

		_, err := svc.GetCategoryByID(user.ID, mid.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("root_children_become_roots", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		root := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
		child := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Groceries", &root.ID)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, root.ID))

		got, err := svc.GetCategoryByID(user.ID, child.ID)
		testutil.AssertNoError(t, err)
		if got.ParentID != nil {
			t.Errorf("expected child to become a root, got parent %s", *got.ParentID)
		}
	})

	t.Run("transactions_keep_reference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		wallet := testutil.CreateTestWallet(t, db, user.ID)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		tx := testutil.CreateTestTransaction(t, db, user.ID, wallet.ID, cat.ID, -100)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, cat.ID))

		var reloaded models.Transaction
		if err := db.Where("id = ?", tx.ID).First(&reloaded).Error; err != nil {
			t.Fatalf("transaction should survive category delete: %v", err)
		}
		if reloaded.CategoryID != cat.ID {
			t.Errorf("expected category_id %s, got %s", cat.ID, reloaded.CategoryID)
		}
	})

	t.Run("other_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.AssertAppError(t, svc.DeleteCategory(other.ID, cat.ID), "FORBIDDEN")
	})
}

func TestReorderCategories(t *testing.T) {
	t.Run("applies_flattened_tree", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		food := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
		rent := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Rent", nil)
		snacks := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Snacks", nil)

		// Move Snacks under Food and put Rent first.
		tree := []*categorytree.Node{
			{ID: rent.ID},
			{ID: food.ID, Children: []*categorytree.Node{{ID: snacks.ID}}},
		}
		applied, err := svc.ReorderCategories(user.ID, models.CategoryTypeExpense, categorytree.Flatten(tree, nil))
		testutil.AssertNoError(t, err)
		if applied != 3 {
			t.Errorf("expected 3 applied, got %d", applied)
		}

		forest, err := svc.GetCategoryTree(user.ID, models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if len(forest) != 2 || forest[0].ID != rent.ID || forest[1].ID != food.ID {
			t.Fatalf("unexpected roots after reorder: %+v", forest)
		}
		if len(forest[1].Children) != 1 || forest[1].Children[0].ID != snacks.ID {
			t.Errorf("expected Snacks under Food, got %+v", forest[1].Children)
		}
	})

	t.Run("skips_invalid_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		food := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
		rent := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Rent", nil)
		salary := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeIncome, "Salary", nil)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryTypeExpense)

		updates := []categorytree.Placement{
			{ID: uuid.New(), Order: 0},                     // missing
			{ID: foreign.ID, Order: 0},                     // other owner
			{ID: salary.ID, Order: 5},                      // other type
			{ID: food.ID, ParentID: &food.ID, Order: 0},    // self parent
			{ID: food.ID, ParentID: &salary.ID, Order: 0},  // parent of other type
			{ID: food.ID, ParentID: &foreign.ID, Order: 0}, // foreign parent
			{ID: "not-a-uuid", Order: 0},                   // malformed
			{ID: rent.ID, ParentID: &food.ID, Order: 0},    // valid
		}
		applied, err := svc.ReorderCategories(user.ID, models.CategoryTypeExpense, updates)
		testutil.AssertNoError(t, err)
		if applied != 1 {
			t.Errorf("expected 1 applied, got %d", applied)
		}

		got, err := svc.GetCategoryByID(user.ID, rent.ID)
		testutil.AssertNoError(t, err)
		if got.ParentID == nil || *got.ParentID != food.ID {
			t.Errorf("expected Rent under Food, got %v", got.ParentID)
		}

		unchanged, err := svc.GetCategoryByID(user.ID, salary.ID)
		testutil.AssertNoError(t, err)
		if unchanged.Order != salary.Order {
			t.Errorf("income category must be untouched, order %d", unchanged.Order)
		}
		foodAfter, err := svc.GetCategoryByID(user.ID, food.ID)
		testutil.AssertNoError(t, err)
		if foodAfter.ParentID != nil {
			t.Errorf("Food must stay a root, got parent %s", *foodAfter.ParentID)
		}
	})

	t.Run("mixed_batch_applies_valid_entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		food := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
		rent := testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Rent", nil)

		updates := []categorytree.Placement{
			{ID: "", Order: -1},
			{ID: food.ID, Order: -2},
			{ID: rent.ID, Order: 7},
		}
		applied, err := svc.ReorderCategories(user.ID, models.CategoryTypeExpense, updates)
		testutil.AssertNoError(t, err)
		if applied != 2 {
			t.Errorf("expected 2 applied, got %d", applied)
		}

		foodAfter, err := svc.GetCategoryByID(user.ID, food.ID)
		testutil.AssertNoError(t, err)
		if foodAfter.Order != -2 {
			t.Errorf("expected order -2 on Food, got %d", foodAfter.Order)
		}
		rentAfter, err := svc.GetCategoryByID(user.ID, rent.ID)
		testutil.AssertNoError(t, err)
		if rentAfter.Order != 7 {
			t.Errorf("expected order 7 on Rent, got %d", rentAfter.Order)
		}
	})

	t.Run("empty_batch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		applied, err := svc.ReorderCategories(user.ID, models.CategoryTypeExpense, nil)
		testutil.AssertNoError(t, err)
		if applied != 0 {
			t.Errorf("expected 0 applied, got %d", applied)
		}
	})
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewCategoryService(db)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Food", nil)
	testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeExpense, "Rent", nil)
	testutil.CreateTestCategoryWithParent(t, db, user.ID, models.CategoryTypeIncome, "Salary", nil)

	expenses, err := svc.ListCategories(user.ID, models.CategoryTypeExpense)
	testutil.AssertNoError(t, err)
	if len(expenses) != 2 {
		t.Errorf("expected 2 expense categories, got %d", len(expenses))
	}

	_, err = svc.ListCategories(user.ID, models.CategoryType("transfer"))
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.ListCategories("", models.CategoryTypeExpense)
	testutil.AssertAppError(t, err, "UNAUTHORIZED")
}
