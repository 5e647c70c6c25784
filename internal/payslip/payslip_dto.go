package payslip

type UploadPayslipRequest struct {
	Source     string `form:"source" binding:"required"`
	Codes      string `form:"codes"`
	TemplateID string `form:"template_id"`
}

type LineItemResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Value       string `json:"value"`
}

type PayslipResponse struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Source    string             `json:"source"`
	Items     []LineItemResponse `json:"items"`
	CreatedAt string             `json:"created_at,omitempty"`
}
