package codetemplate

type CreateCodeTemplateRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Codes string `json:"codes" binding:"required"`
}

type UpdateCodeTemplateRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Codes string `json:"codes" binding:"required"`
}

type CodeTemplateResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Codes     []string `json:"codes"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}
