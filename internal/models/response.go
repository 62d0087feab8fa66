package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse carries the bare {"message": ...} bodies the original API
// uses for validation failures and webhook acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}

type PresignedURLResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type TrainModelResponse struct {
	ModelID string `json:"modelId"`
}

type GenerateImageResponse struct {
	ImageID string `json:"imageId"`
}

type GenerateFromPackResponse struct {
	Images []string `json:"images"`
}

type ListPacksResponse struct {
	Packs []Pack `json:"packs"`
}

type ListImagesResponse struct {
	Images []OutputImage `json:"images"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
