package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pagoandino/capture-cli/internal/model"
	"github.com/pagoandino/capture-cli/pkg/anthropic"
)

// Extractor drives one extraction call per pending document and
// normalizes the raw responses into canonical nodes.
type Extractor struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewExtractor creates an Extractor. ratePerMinute bounds outbound
// calls; zero disables limiting.
func NewExtractor(client anthropic.Client, modelID string, maxTokens int64, ratePerMinute int) *Extractor {
	var limiter *rate.Limiter
	if ratePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), 1)
	}
	return &Extractor{
		client:    client,
		model:     modelID,
		maxTokens: maxTokens,
		limiter:   limiter,
	}
}

// ExtractPending queries each pending document for the planned field subset,
// in document order, one call at a time. Successful documents are flipped to
// processed; failed documents are logged and left pending for the next
// iteration. Returns the normalized nodes keyed by document ID plus the
// document order in which they were produced.
func (e *Extractor) ExtractPending(ctx context.Context, docs []*model.Document, fields model.FieldSet) (map[string]model.ResultSet, []string, model.TokenUsage, error) {
	extracted := make(map[string]model.ResultSet)
	order := make([]string, 0, len(docs))
	var usage model.TokenUsage

	prompt := BuildExtractionPrompt(fields)
	system := anthropic.BuildCachedSystemBlocks(prompt)

	zap.L().Info("iniciando inferencia en los archivos", zap.Int("pending_fields", len(fields)))
	totalStart := time.Now()

	for _, doc := range docs {
		if doc.State != model.DocumentPending {
			continue
		}

		zap.L().Info("procesando documento", zap.String("filename", doc.Filename))
		docStart := time.Now()

		nodes, docUsage, err := e.extractOne(ctx, doc, fields, system)
		if err != nil {
			if ctx.Err() != nil {
				return extracted, order, usage, eris.Wrap(ctx.Err(), "capture: extraction interrupted")
			}
			zap.L().Error("fallo en la extracción del documento",
				zap.String("filename", doc.Filename),
				zap.Error(err),
			)
			continue
		}

		doc.State = model.DocumentProcessed
		extracted[doc.ID] = nodes
		order = append(order, doc.ID)
		usage.Add(docUsage)

		zap.L().Info("inferencia de archivo completada",
			zap.String("filename", doc.Filename),
			zap.Duration("elapsed", time.Since(docStart)),
		)
	}

	zap.L().Info("proceso de inferencia completo",
		zap.Duration("elapsed", time.Since(totalStart)),
		zap.Int("documents", len(order)),
	)
	return extracted, order, usage, nil
}

func (e *Extractor) extractOne(ctx context.Context, doc *model.Document, fields model.FieldSet, system []anthropic.SystemBlock) (model.ResultSet, model.TokenUsage, error) {
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, model.TokenUsage{}, eris.Wrap(err, "capture: rate limit wait")
		}
	}

	content, err := documentBlocks(doc)
	if err != nil {
		return nil, model.TokenUsage{}, err
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: e.maxTokens,
		System:    system,
		Messages: []anthropic.Message{
			{Role: "user", Content: content},
		},
	})
	if err != nil {
		return nil, model.TokenUsage{}, eris.Wrap(err, "capture: extraction call")
	}

	usage := model.TokenUsage{
		InputTokens:         int(resp.Usage.InputTokens),
		OutputTokens:        int(resp.Usage.OutputTokens),
		CacheCreationTokens: int(resp.Usage.CacheCreationInputTokens),
		CacheReadTokens:     int(resp.Usage.CacheReadInputTokens),
	}

	parsed, err := ParseResponse(responseText(resp))
	if err != nil {
		return nil, usage, err
	}

	return NormalizeFields(fields, parsed), usage, nil
}

func documentBlocks(doc *model.Document) ([]anthropic.Block, error) {
	switch doc.Kind {
	case model.KindText:
		return []anthropic.Block{
			anthropic.TextBlock(fmt.Sprintf("Documento %q:\n\n%s", doc.Filename, doc.Text)),
		}, nil
	case model.KindImage:
		return []anthropic.Block{
			anthropic.ImageBlock(doc.MediaType, doc.Data),
		}, nil
	case model.KindPDF:
		return []anthropic.Block{
			anthropic.DocumentBlock(doc.Data),
		}, nil
	default:
		return nil, eris.Errorf("capture: unsupported document kind %q", doc.Kind)
	}
}

func responseText(resp *anthropic.MessageResponse) string {
	for _, b := range resp.Content {
		if b.Type == "text" {
			return b.Text
		}
	}
	return ""
}
