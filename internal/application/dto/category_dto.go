package dto

// CreateCategoryRequest input for registering a category.
type CreateCategoryRequest struct {
	Name  string   `json:"name" validate:"required,min=1,max=100"`
	Items []string `json:"items"`
}

// AddCategoryItemRequest input for extending a category's item list.
type AddCategoryItemRequest struct {
	Item string `json:"item" validate:"required,min=1,max=200"`
}

// CategoryResponse category output with its suggested items.
type CategoryResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// CategoryListResponse all categories.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
