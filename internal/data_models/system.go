package dto

type MessageResponse struct {
	Message string `json:"message"`
}

type BannerResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
