package domain

import "context"

// 推理模型名称，用于日志与指标维度
const (
	ModelOCR            = "ocr"
	ModelClassification = "classification"
	ModelVQA            = "vqa"
)

// OCRResult OCR 模型返回结果，Raw 保留服务端原始响应体
type OCRResult struct {
	Text string `json:"text"`
	Raw  []byte `json:"-"`
}

// Classification 分类模型的单个候选
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationResult 分类模型返回结果
type ClassificationResult struct {
	Candidates []Classification `json:"candidates"`
	Raw        []byte           `json:"-"`
}

// VQAResult 视觉问答模型返回结果
type VQAResult struct {
	Answer string `json:"answer"`
	Raw    []byte `json:"-"`
}

// InferenceProvider 外部推理服务接口，三个模型独立调用
type InferenceProvider interface {
	RecognizeText(ctx context.Context, image []byte, contentType string) (*OCRResult, error)
	Classify(ctx context.Context, image []byte, contentType string) (*ClassificationResult, error)
	AnswerQuestion(ctx context.Context, image []byte, contentType string, question string) (*VQAResult, error)
}
