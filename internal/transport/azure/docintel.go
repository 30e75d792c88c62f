package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/timothywarner/ai900/internal/domain"
)

const docIntelAPIVersion = "2023-07-31"

// Prebuilt model identifiers.
const (
	ModelInvoice = "prebuilt-invoice"
	ModelReceipt = "prebuilt-receipt"
)

// DocumentClient calls the Document Intelligence (Form Recognizer) analyze API.
type DocumentClient struct {
	c            *client
	pollInterval time.Duration
	timeout      time.Duration
}

// DocumentOptions tune the long-running operation polling.
type DocumentOptions struct {
	PollInterval time.Duration // default 1s
	Timeout      time.Duration // default 2m, covers submit and all polls
}

// NewDocumentClient creates a document intelligence client.
func NewDocumentClient(cfg Config, opts DocumentOptions) *DocumentClient {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Minute
	}
	return &DocumentClient{
		c:            newClient("document", cfg),
		pollInterval: opts.PollInterval,
		timeout:      opts.Timeout,
	}
}

// Currency is a monetary field value.
type Currency struct {
	Amount         float64 `json:"amount"`
	CurrencySymbol string  `json:"currencySymbol,omitempty"`
	CurrencyCode   string  `json:"currencyCode,omitempty"`
}

// DocumentField is a typed field extracted by a prebuilt model.
type DocumentField struct {
	Type          string                   `json:"type"`
	ValueString   string                   `json:"valueString,omitempty"`
	ValueNumber   *float64                 `json:"valueNumber,omitempty"`
	ValueInteger  *int64                   `json:"valueInteger,omitempty"`
	ValueDate     string                   `json:"valueDate,omitempty"`
	ValueCurrency *Currency                `json:"valueCurrency,omitempty"`
	ValueArray    []DocumentField          `json:"valueArray,omitempty"`
	ValueObject   map[string]DocumentField `json:"valueObject,omitempty"`
	Content       string                   `json:"content,omitempty"`
	Confidence    float64                  `json:"confidence"`
}

// String renders the field value the way a person would read it.
func (f *DocumentField) String() string {
	if f == nil {
		return ""
	}
	switch {
	case f.ValueCurrency != nil:
		amount := strconv.FormatFloat(f.ValueCurrency.Amount, 'f', 2, 64)
		if f.ValueCurrency.CurrencySymbol != "" {
			return f.ValueCurrency.CurrencySymbol + amount
		}
		if f.ValueCurrency.CurrencyCode != "" {
			return amount + " " + f.ValueCurrency.CurrencyCode
		}
		return amount
	case f.ValueNumber != nil:
		return strconv.FormatFloat(*f.ValueNumber, 'f', -1, 64)
	case f.ValueInteger != nil:
		return strconv.FormatInt(*f.ValueInteger, 10)
	case f.ValueDate != "":
		return f.ValueDate
	case f.ValueString != "":
		return f.ValueString
	}
	return f.Content
}

// Amount returns the numeric value of a currency or number field.
func (f *DocumentField) Amount() (float64, bool) {
	switch {
	case f == nil:
		return 0, false
	case f.ValueCurrency != nil:
		return f.ValueCurrency.Amount, true
	case f.ValueNumber != nil:
		return *f.ValueNumber, true
	case f.ValueInteger != nil:
		return float64(*f.ValueInteger), true
	}
	return 0, false
}

// Field returns a sub-field of an object field, or nil.
func (f *DocumentField) Field(name string) *DocumentField {
	if f == nil {
		return nil
	}
	v, ok := f.ValueObject[name]
	if !ok {
		return nil
	}
	return &v
}

// AnalyzedDocument is one document found in the input (a file may hold several invoices).
type AnalyzedDocument struct {
	DocType    string                   `json:"docType"`
	Fields     map[string]DocumentField `json:"fields"`
	Confidence float64                  `json:"confidence"`
}

// Field returns a top-level field, or nil.
func (d AnalyzedDocument) Field(name string) *DocumentField {
	v, ok := d.Fields[name]
	if !ok {
		return nil
	}
	return &v
}

// DocumentAnalysis holds the documents extracted by a model.
type DocumentAnalysis struct {
	ModelID   string             `json:"modelId"`
	Content   string             `json:"content"`
	Documents []AnalyzedDocument `json:"documents"`
}

type operationStatus struct {
	Status        string           `json:"status"`
	AnalyzeResult DocumentAnalysis `json:"analyzeResult"`
	Error         *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze submits a document to a prebuilt model and polls until the operation finishes.
func (d *DocumentClient) Analyze(ctx context.Context, modelID string, data []byte) (DocumentAnalysis, error) {
	if len(data) == 0 {
		return DocumentAnalysis{}, fmt.Errorf("%w: document is empty", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	header, _, err := d.c.send(ctx, request{
		op:          "analyze",
		method:      http.MethodPost,
		path:        "/formrecognizer/documentModels/" + url.PathEscape(modelID) + ":analyze",
		query:       url.Values{"api-version": {docIntelAPIVersion}},
		contentType: "application/octet-stream",
		body:        data,
	})
	if err != nil {
		return DocumentAnalysis{}, err
	}

	opURL := header.Get("Operation-Location")
	if opURL == "" {
		return DocumentAnalysis{}, fmt.Errorf("document analyze: %w: no Operation-Location header", domain.ErrProviderError)
	}

	return d.poll(ctx, opURL)
}

func (d *DocumentClient) poll(ctx context.Context, opURL string) (DocumentAnalysis, error) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return DocumentAnalysis{}, fmt.Errorf("document analyze: %w", ctx.Err())
		case <-ticker.C:
		}

		_, body, err := d.c.send(ctx, request{op: "poll", method: http.MethodGet, path: opURL})
		if err != nil {
			return DocumentAnalysis{}, err
		}

		var st operationStatus
		if err := json.Unmarshal(body, &st); err != nil {
			return DocumentAnalysis{}, fmt.Errorf("document poll: decode response: %w", err)
		}

		d.c.logger.Debug("Analyze operation status",
			zap.Int("attempt", attempt),
			zap.String("status", st.Status),
		)

		switch st.Status {
		case "succeeded":
			return st.AnalyzeResult, nil
		case "failed", "canceled":
			msg := st.Status
			if st.Error != nil && st.Error.Message != "" {
				msg = st.Error.Message
			}
			return DocumentAnalysis{}, fmt.Errorf("%w: %s", domain.ErrOperationFailed, msg)
		case "notStarted", "running":
		default:
			return DocumentAnalysis{}, fmt.Errorf("%w: unknown operation status %q",
				domain.ErrProviderError, st.Status)
		}
	}
}

// Invoice is the projection of a prebuilt-invoice document. Absent fields are nil.
type Invoice struct {
	VendorName    *DocumentField
	VendorAddress *DocumentField
	CustomerName  *DocumentField
	InvoiceID     *DocumentField
	InvoiceDate   *DocumentField
	DueDate       *DocumentField
	SubTotal      *DocumentField
	TotalTax      *DocumentField
	InvoiceTotal  *DocumentField
	Items         []InvoiceItem
}

// InvoiceItem is one invoice line.
type InvoiceItem struct {
	Description *DocumentField
	Quantity    *DocumentField
	UnitPrice   *DocumentField
	Amount      *DocumentField
}

// Receipt is the projection of a prebuilt-receipt document. Absent fields are nil.
type Receipt struct {
	MerchantName    *DocumentField
	MerchantAddress *DocumentField
	TransactionDate *DocumentField
	Subtotal        *DocumentField
	TotalTax        *DocumentField
	Total           *DocumentField
	Items           []ReceiptItem
}

// ReceiptItem is one purchased item.
type ReceiptItem struct {
	Name  *DocumentField
	Price *DocumentField
}

// AnalyzeInvoices extracts every invoice in the document.
func (d *DocumentClient) AnalyzeInvoices(ctx context.Context, data []byte) ([]Invoice, error) {
	res, err := d.Analyze(ctx, ModelInvoice, data)
	if err != nil {
		return nil, err
	}
	invoices := make([]Invoice, 0, len(res.Documents))
	for _, doc := range res.Documents {
		invoices = append(invoices, InvoiceFrom(doc))
	}
	return invoices, nil
}

// AnalyzeReceipts extracts every receipt in the document.
func (d *DocumentClient) AnalyzeReceipts(ctx context.Context, data []byte) ([]Receipt, error) {
	res, err := d.Analyze(ctx, ModelReceipt, data)
	if err != nil {
		return nil, err
	}
	receipts := make([]Receipt, 0, len(res.Documents))
	for _, doc := range res.Documents {
		receipts = append(receipts, ReceiptFrom(doc))
	}
	return receipts, nil
}

// InvoiceFrom maps prebuilt-invoice fields.
func InvoiceFrom(doc AnalyzedDocument) Invoice {
	inv := Invoice{
		VendorName:    doc.Field("VendorName"),
		VendorAddress: doc.Field("VendorAddress"),
		CustomerName:  doc.Field("CustomerName"),
		InvoiceID:     doc.Field("InvoiceId"),
		InvoiceDate:   doc.Field("InvoiceDate"),
		DueDate:       doc.Field("DueDate"),
		SubTotal:      doc.Field("SubTotal"),
		TotalTax:      doc.Field("TotalTax"),
		InvoiceTotal:  doc.Field("InvoiceTotal"),
	}
	if items := doc.Field("Items"); items != nil {
		for i := range items.ValueArray {
			item := &items.ValueArray[i]
			inv.Items = append(inv.Items, InvoiceItem{
				Description: item.Field("Description"),
				Quantity:    item.Field("Quantity"),
				UnitPrice:   item.Field("UnitPrice"),
				Amount:      item.Field("Amount"),
			})
		}
	}
	return inv
}

// ReceiptFrom maps prebuilt-receipt fields.
// Older model versions name item fields Name/Price, newer ones Description/TotalPrice.
func ReceiptFrom(doc AnalyzedDocument) Receipt {
	rec := Receipt{
		MerchantName:    doc.Field("MerchantName"),
		MerchantAddress: doc.Field("MerchantAddress"),
		TransactionDate: doc.Field("TransactionDate"),
		Subtotal:        doc.Field("Subtotal"),
		TotalTax:        doc.Field("TotalTax"),
		Total:           doc.Field("Total"),
	}
	if items := doc.Field("Items"); items != nil {
		for i := range items.ValueArray {
			item := &items.ValueArray[i]
			rec.Items = append(rec.Items, ReceiptItem{
				Name:  firstField(item, "Name", "Description"),
				Price: firstField(item, "Price", "TotalPrice"),
			})
		}
	}
	return rec
}

func firstField(f *DocumentField, names ...string) *DocumentField {
	for _, n := range names {
		if v := f.Field(n); v != nil {
			return v
		}
	}
	return nil
}
