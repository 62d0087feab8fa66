package models

// TrainModelRequest mirrors the schema the web client submits. The
// "ethinicity" spelling is part of the wire contract.
type TrainModelRequest struct {
	Name      string   `json:"name" binding:"required"`
	Type      string   `json:"type" binding:"required,oneof=Man Woman Other"`
	Age       int      `json:"age" binding:"required,gt=0"`
	Ethnicity string   `json:"ethinicity" binding:"required,oneof=White Black Asian_American East_Asian South_East_Asian South_Eastern Middle_Eastern Pacific Hispanic"`
	EyeColor  string   `json:"eyeColor" binding:"required,oneof=Brown Blue Hazel Gray"`
	Bald      *bool    `json:"bald" binding:"required"`
	Images    []string `json:"images" binding:"required,min=1"`
	// ZipURL points at the uploaded training archive. When absent, the first
	// entry of Images is taken as the archive reference.
	ZipURL string `json:"zipUrl,omitempty"`
}

// ArchiveURL returns the training archive reference for the request.
func (r *TrainModelRequest) ArchiveURL() string {
	if r.ZipURL != "" {
		return r.ZipURL
	}
	return r.Images[0]
}

type GenerateImageRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	ModelID string `json:"modelId" binding:"required"`
	Num     int    `json:"num" binding:"required,gte=1"`
}

type GenerateFromPackRequest struct {
	ModelID string `json:"modelId" binding:"required"`
	PackID  string `json:"packId" binding:"required"`
}

type ListImagesQuery struct {
	Images []string `form:"images"`
	Limit  int      `form:"limit,default=20"`
	Offset int      `form:"offset,default=0"`
}

// TrainWebhookRequest is the payload fal.ai posts when a training job
// finishes. Status is "OK" on success and "ERROR" on failure.
type TrainWebhookRequest struct {
	RequestID  string `json:"request_id" binding:"required"`
	Status     string `json:"status"`
	Error      string `json:"error"`
	TensorPath string `json:"tensorPath"`
}

// ImageWebhookRequest is the payload fal.ai posts when a generation job
// finishes.
type ImageWebhookRequest struct {
	RequestID string `json:"request_id" binding:"required"`
	Status    string `json:"status"`
	Error     string `json:"error"`
	ImageURL  string `json:"image_url"`
}

// Failed reports whether the provider delivered an error outcome.
func (r *TrainWebhookRequest) Failed() bool { return r.Status == "ERROR" || r.Error != "" }

func (r *ImageWebhookRequest) Failed() bool { return r.Status == "ERROR" || r.Error != "" }
