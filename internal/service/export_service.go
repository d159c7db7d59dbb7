package service

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-pay-api/internal/i18n"
	"github.com/noah-isme/school-pay-api/internal/models"
	"github.com/noah-isme/school-pay-api/pkg/export"
	"github.com/noah-isme/school-pay-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderDocument(title string, fields []export.Field) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       string
	ExpiresAt    time.Time
}

// ExportService renders payment receipts and ledgers and persists the files
// behind signed download URLs.
type ExportService struct {
	storage    fileStorage
	csv        csvRenderer
	pdf        pdfRenderer
	signer     *storage.SignedURLSigner
	translator *i18n.Translator
	logger     *zap.Logger
	cfg        ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(files fileStorage, signer *storage.SignedURLSigner, translator *i18n.Translator, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if translator == nil {
		translator = i18n.New("en")
	}
	return &ExportService{
		storage:    files,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		signer:     signer,
		translator: translator,
		logger:     logger,
		cfg:        cfg,
	}
}

// Receipt renders a paid payment's receipt as a PDF and returns the signed
// download location.
func (s *ExportService) Receipt(payment *models.Payment) (*ExportResult, error) {
	if payment == nil {
		return nil, fmt.Errorf("payment nil")
	}
	if payment.Status != models.StatusPaid {
		return nil, fmt.Errorf("receipt requires a paid payment, got %s", payment.Status)
	}

	t := s.translator.T
	fields := []export.Field{
		{Label: t("studentName", nil), Value: payment.StudentName},
		{Label: t("paymentFor", nil), Value: payment.Concept},
		{Label: t("amountPaid", nil), Value: fmt.Sprintf("$%.2f", payment.Amount)},
		{Label: t("datePaid", nil), Value: payment.PaidDate},
	}
	if payment.InvoiceNumber != "" {
		fields = append(fields, export.Field{Label: t("invoiceNo", nil), Value: payment.InvoiceNumber})
	}
	if payment.TransactionID != "" {
		fields = append(fields, export.Field{Label: t("transactionId", nil), Value: payment.TransactionID})
	}

	payload, err := s.pdf.RenderDocument(t("paymentReceipt", nil), fields)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("receipt_%s_%s.pdf", sanitizeFilename(payment.ID), time.Now().UTC().Format("20060102_150405"))
	return s.store(payment.ID, filename, "pdf", payload)
}

// Ledger renders a payment set as a CSV ledger for the admin view.
func (s *ExportService) Ledger(payments []models.Payment) (*ExportResult, error) {
	t := s.translator.T
	headers := []string{
		t("studentName", nil), t("concept", nil), t("invoiceNo", nil),
		t("amount", nil), t("dueDate", nil), t("paidDate", nil), t("status", nil),
	}
	rows := make([]map[string]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, map[string]string{
			headers[0]: p.StudentName,
			headers[1]: p.Concept,
			headers[2]: p.InvoiceNumber,
			headers[3]: fmt.Sprintf("%.2f", p.Amount),
			headers[4]: p.DueDate,
			headers[5]: p.PaidDate,
			headers[6]: t(p.Status.TranslationKey(), nil),
		})
	}

	payload, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("ledger_%s.csv", time.Now().UTC().Format("20060102_150405"))
	return s.store("ledger", filename, "csv", payload)
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) store(exportID, filename, format string, payload []byte) (*ExportResult, error) {
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/exports/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
