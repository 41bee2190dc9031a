package httpapi

type UploadRequest struct {
	FingerprintID   string `json:"FingerprintID"`
	FingerprintData string `json:"FingerprintData"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoadResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type VerifyResponse struct {
	Message       string `json:"message"`
	FingerprintID string `json:"fingerprint_id"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Templates int    `json:"templates"`
	Time      string `json:"time"`
}
