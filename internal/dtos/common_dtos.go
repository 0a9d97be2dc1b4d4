package dtos

// PageResponse is the paged list shape; page is 0-based.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
}

func NewPageResponse[T any](content []T, total int64, page, size int) PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Page:          page,
		Size:          size,
	}
}

// ToggleStatusRequest is the body of every PATCH toggle-status call. The
// store-item-config route takes the id from the path and ignores ID.
type ToggleStatusRequest struct {
	ID       int64  `json:"id"`
	IsActive string `json:"isActive" validate:"required"`
}
