package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ExtractProductName 取 OCR 文本的第一个非空行作为商品名，不做任何清洗
func ExtractProductName(ocrText string) string {
	for _, line := range strings.Split(ocrText, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ExtractPrice 取 OCR 文本中第一个形如价格的 token。
// 认定规则：去掉货币符号后可解析为十进制数且带小数部分。
func ExtractPrice(ocrText string) (decimal.Decimal, bool) {
	for _, token := range strings.Fields(ocrText) {
		candidate := strings.Trim(token, "$€£¥")
		// 兼容逗号作为小数分隔符
		if strings.Count(candidate, ",") == 1 && !strings.Contains(candidate, ".") {
			candidate = strings.Replace(candidate, ",", ".", 1)
		}
		if !strings.Contains(candidate, ".") {
			continue
		}
		price, err := decimal.NewFromString(candidate)
		if err != nil {
			continue
		}
		if price.IsNegative() {
			continue
		}
		return price, true
	}
	return decimal.Zero, false
}

// FirstLabel 取分类结果的第一个候选标签,不比较置信度
func FirstLabel(candidates []Classification) string {
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0].Label
}

// ParseQuantityHint 将 VQA 回答解析为数量提示，非纯整数回答返回 0
func ParseQuantityHint(answer string) int {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ApplyInference 将三个模型的结果直传写入扫描任务
func (s *Scan) ApplyInference(ocr *OCRResult, cls *ClassificationResult, vqa *VQAResult) {
	if ocr != nil {
		s.OCRRaw = string(ocr.Raw)
		s.ProductName = ExtractProductName(ocr.Text)
		if price, ok := ExtractPrice(ocr.Text); ok {
			s.Price = price
		}
	}
	if cls != nil {
		s.ClassificationRaw = string(cls.Raw)
		s.Category = FirstLabel(cls.Candidates)
	}
	if vqa != nil {
		s.VQARaw = string(vqa.Raw)
		s.QuantityHint = ParseQuantityHint(vqa.Answer)
	}
}
