package model

// ReportSummary holds collection totals for the reports page.
type ReportSummary struct {
	TotalInstitutions int64 `json:"totalInstitutions"`
	TotalCompanies    int64 `json:"totalCompanies"`
	TotalUsers        int64 `json:"totalUsers"`
	TotalAdmissions   int64 `json:"totalAdmissions"`
}
