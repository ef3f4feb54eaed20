package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/atlasvision/internal/scan/domain"
	"github.com/wyfcoding/atlasvision/pkg/logging"
	"github.com/wyfcoding/atlasvision/pkg/metrics"
)

// DefaultVQAQuestion 数量提示的默认提问
const DefaultVQAQuestion = "How many units of the main product are visible on the shelf?"

// ProductReconciler 库存侧的商品对账接口,由 inventory 上下文实现。
// 命中同名商品则更新,未命中则创建,返回关联的商品 ID。
type ProductReconciler interface {
	ReconcileScan(ctx context.Context, shopID, scanID, productName, category string, price decimal.Decimal, hasPrice bool) (*uint, error)
}

// ScanProcessor 扫描处理管线:取图、三次推理、商品对账、状态落库。
type ScanProcessor struct {
	repo       domain.ScanRepository
	store      domain.ImageStore
	provider   domain.InferenceProvider
	reconciler ProductReconciler
	metrics    *metrics.Metrics
	question   string
}

// NewScanProcessor 构造函数。
func NewScanProcessor(
	repo domain.ScanRepository,
	store domain.ImageStore,
	provider domain.InferenceProvider,
	reconciler ProductReconciler,
	metrics *metrics.Metrics,
	question string,
) *ScanProcessor {
	if question == "" {
		question = DefaultVQAQuestion
	}
	return &ScanProcessor{
		repo:       repo,
		store:      store,
		provider:   provider,
		reconciler: reconciler,
		metrics:    metrics,
		question:   question,
	}
}

// Process 处理一个扫描任务。管线中任何一步出错都会把任务置为 failed
// 并保存错误文本,错误不会回到队列重试。
func (p *ScanProcessor) Process(ctx context.Context, scanID string) error {
	scan, err := p.repo.Get(ctx, scanID)
	if err != nil {
		return fmt.Errorf("failed to load scan %s: %w", scanID, err)
	}
	if scan == nil {
		logging.Warn(ctx, "Scan not found, skipping", "scan_id", scanID)
		return nil
	}
	if scan.IsTerminal() {
		logging.Info(ctx, "Scan already terminal, skipping", "scan_id", scanID, "status", string(scan.Status))
		return nil
	}

	p.metrics.ScansInFlight.Inc()
	defer p.metrics.ScansInFlight.Dec()

	scan.MarkProcessing()
	if err := p.repo.Save(ctx, scan); err != nil {
		return fmt.Errorf("failed to mark scan processing: %w", err)
	}

	if err := p.run(ctx, scan); err != nil {
		return p.fail(ctx, scan, err)
	}
	return nil
}

func (p *ScanProcessor) run(ctx context.Context, scan *domain.Scan) error {
	image, err := p.store.Get(ctx, scan.ImageKey)
	if err != nil {
		return fmt.Errorf("failed to fetch image %s: %w", scan.ImageKey, err)
	}

	start := time.Now()
	ocr, err := p.provider.RecognizeText(ctx, image, scan.ContentType)
	p.metrics.RecordInference(domain.ModelOCR, time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("ocr call failed: %w", err)
	}

	start = time.Now()
	cls, err := p.provider.Classify(ctx, image, scan.ContentType)
	p.metrics.RecordInference(domain.ModelClassification, time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("classification call failed: %w", err)
	}

	start = time.Now()
	vqa, err := p.provider.AnswerQuestion(ctx, image, scan.ContentType, p.question)
	p.metrics.RecordInference(domain.ModelVQA, time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("vqa call failed: %w", err)
	}

	productName := domain.ExtractProductName(ocr.Text)
	category := domain.FirstLabel(cls.Candidates)
	price, hasPrice := domain.ExtractPrice(ocr.Text)

	productID, err := p.reconciler.ReconcileScan(ctx, scan.ShopID, scan.ID, productName, category, price, hasPrice)
	if err != nil {
		return fmt.Errorf("failed to reconcile product: %w", err)
	}

	scan.ApplyInference(ocr, cls, vqa)
	scan.ProductID = productID
	scan.MarkDone(time.Now())
	if err := p.repo.Save(ctx, scan); err != nil {
		return fmt.Errorf("failed to save scan results: %w", err)
	}

	p.metrics.RecordScanProcessed(false)
	logging.Info(ctx, "Scan processed",
		"scan_id", scan.ID,
		"shop_id", scan.ShopID,
		"product_name", productName,
		"category", category)
	return nil
}

// fail 把任务置为 failed 并保存错误文本。失败的任务不保留任何部分结果。
func (p *ScanProcessor) fail(ctx context.Context, scan *domain.Scan, cause error) error {
	scan.OCRRaw, scan.ClassificationRaw, scan.VQARaw = "", "", ""
	scan.ProductName, scan.Category = "", ""
	scan.Price = decimal.Zero
	scan.QuantityHint = 0
	scan.ProductID = nil

	scan.MarkFailed(time.Now(), cause.Error())
	if err := p.repo.Save(ctx, scan); err != nil {
		return fmt.Errorf("failed to mark scan failed: %w", err)
	}

	p.metrics.RecordScanProcessed(true)
	logging.Error(ctx, "Scan processing failed", "scan_id", scan.ID, "error", cause)
	return nil
}
