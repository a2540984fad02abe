package integration

import (
	"fmt"
	"net/http"
	"testing"
)

// findNode returns the tree node with the given name, searching depth first.
func findNode(nodes []interface{}, name string) map[string]interface{} {
	for _, raw := range nodes {
		n := raw.(map[string]interface{})
		if n["name"] == name {
			return n
		}
		if children, ok := n["children"].([]interface{}); ok {
			if found := findNode(children, name); found != nil {
				return found
			}
		}
	}
	return nil
}

func TestCategoryFlow_TreeEditing(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "cats@test.com", "password123")

	// Registration seeds the default forest.
	tree := app.mustRequest(t, http.StatusOK, "GET", "/api/v1/categories/tree?type=expense", "", token)["tree"].([]interface{})
	if findNode(tree, "Groceries") == nil {
		t.Fatal("expected default expense categories after registration")
	}

	pets := app.createCategory(t, token, "Pets", "expense", "")
	vet := app.createCategory(t, token, "Vet", "expense", pets)
	food := app.createCategory(t, token, "Pet Food", "expense", pets)

	tree = app.mustRequest(t, http.StatusOK, "GET", "/api/v1/categories/tree?type=expense", "", token)["tree"].([]interface{})
	petsNode := findNode(tree, "Pets")
	if petsNode == nil {
		t.Fatal("expected Pets in tree")
	}
	children := petsNode["children"].([]interface{})
	if len(children) != 2 || children[0].(map[string]interface{})["name"] != "Vet" {
		t.Fatalf("expected [Vet, Pet Food] under Pets, got %v", children)
	}

	// Duplicate sibling names are rejected regardless of case.
	rec := app.request("POST", "/api/v1/categories",
		fmt.Sprintf(`{"name":" vet ","type":"expense","parent_id":%q}`, pets), token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate sibling, got %d: %s", rec.Code, rec.Body.String())
	}

	// A parent of the other type is rejected.
	rec = app.request("POST", "/api/v1/categories",
		fmt.Sprintf(`{"name":"Refunds","type":"income","parent_id":%q}`, pets), token)
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "CATEGORY_TYPE_MISMATCH" {
		t.Fatalf("expected CATEGORY_TYPE_MISMATCH, got %d: %s", rec.Code, rec.Body.String())
	}

	// Swap the children and move Pet Food to the root.
	body := fmt.Sprintf(`{"type":"expense","updates":[{"id":%q,"order":0},{"id":%q,"parent_id":%q,"order":0},{"id":%q,"parent_id":%q,"order":0}]}`,
		food, vet, pets, pets, pets)
	result := app.mustRequest(t, http.StatusOK, "PUT", "/api/v1/categories/reorder", body, token)
	if result["updated"] != float64(2) {
		t.Errorf("expected 2 applied (self-parent skipped), got %v", result["updated"])
	}

	tree = app.mustRequest(t, http.StatusOK, "GET", "/api/v1/categories/tree?type=expense", "", token)["tree"].([]interface{})
	isRoot := false
	for _, raw := range tree {
		if raw.(map[string]interface{})["name"] == "Pet Food" {
			isRoot = true
		}
	}
	if !isRoot {
		t.Error("expected Pet Food to be a root")
	}
	children = findNode(tree, "Pets")["children"].([]interface{})
	if len(children) != 1 || children[0].(map[string]interface{})["name"] != "Vet" {
		t.Errorf("expected only Vet under Pets, got %v", children)
	}

	// Deleting Pets lifts Vet to the root.
	app.mustRequest(t, http.StatusOK, "DELETE", "/api/v1/categories/"+pets, "", token)
	tree = app.mustRequest(t, http.StatusOK, "GET", "/api/v1/categories/tree?type=expense", "", token)["tree"].([]interface{})
	if findNode(tree, "Pets") != nil {
		t.Error("expected Pets to be gone")
	}
	found := false
	for _, raw := range tree {
		if raw.(map[string]interface{})["name"] == "Vet" {
			found = true
		}
	}
	if !found {
		t.Error("expected Vet to become a root")
	}
}

func TestCategoryFlow_Isolation(t *testing.T) {
	app := setupApp(t)
	alice, _, _ := app.registerUser(t, "alice@test.com", "password123")
	bob, _, _ := app.registerUser(t, "bob@test.com", "password123")

	aliceCat := app.createCategory(t, alice, "Pets", "expense", "")

	rec := app.request("GET", "/api/v1/categories/"+aliceCat, "", bob)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec = app.request("POST", "/api/v1/categories",
		fmt.Sprintf(`{"name":"Vet","type":"expense","parent_id":%q}`, aliceCat), bob)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign parent, got %d", rec.Code)
	}

	// Bob's reorder of Alice's category is skipped, not an error.
	body := fmt.Sprintf(`{"type":"expense","updates":[{"id":%q,"order":5}]}`, aliceCat)
	result := app.mustRequest(t, http.StatusOK, "PUT", "/api/v1/categories/reorder", body, bob)
	if result["updated"] != float64(0) {
		t.Errorf("expected 0 applied, got %v", result["updated"])
	}
}
