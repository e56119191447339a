package dto

type ChatRequest struct {
	Question string  `json:"question" binding:"required"`
	ReportID *string `json:"report_id"`
}

type TermSearchRequest struct {
	Query string `json:"query"`
}

type PopularTermsResponse struct {
	Terms []string `json:"terms"`
}
