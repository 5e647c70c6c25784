package codegroup

type CreateCodeGroupRequest struct {
	DisplayCode string `json:"display_code" binding:"required,max=32"`
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Codes       string `json:"codes" binding:"required"`
}

type UpdateCodeGroupRequest struct {
	DisplayCode string `json:"display_code" binding:"required,max=32"`
	DisplayName string `json:"display_name" binding:"required,max=255"`
	Codes       string `json:"codes" binding:"required"`
}

type CodeGroupResponse struct {
	ID          string   `json:"id"`
	DisplayCode string   `json:"display_code"`
	DisplayName string   `json:"display_name"`
	Codes       []string `json:"codes"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
