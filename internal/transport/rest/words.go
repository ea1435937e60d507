package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingo-backend/internal/domain"
	"github.com/heartmarshall/lingo-backend/internal/service/acquisition"
	"github.com/heartmarshall/lingo-backend/internal/service/dictionary"
	"github.com/heartmarshall/lingo-backend/pkg/ctxutil"
)

type acquisitionService interface {
	AddWord(ctx context.Context, input acquisition.AddWordInput) (acquisition.AddWordResult, error)
	AddWords(ctx context.Context, input acquisition.AddWordsInput) (acquisition.BulkAddResult, error)
	AddManual(ctx context.Context, input acquisition.ManualInput) (acquisition.AddWordResult, error)
}

type catalogService interface {
	ListEntries(ctx context.Context, input dictionary.ListInput) (*dictionary.ListResult, error)
	ClearMine(ctx context.Context) (int64, error)
	ImportEntries(ctx context.Context, input dictionary.ImportInput) (*dictionary.ImportResult, error)
}

type selectorService interface {
	Pick(ctx context.Context) (domain.Entry, error)
	PickDaily(ctx context.Context, learnerID uuid.UUID) ([]domain.Entry, error)
}

// WordsHandler serves word acquisition, listing and selection endpoints.
type WordsHandler struct {
	acquisition acquisitionService
	catalog     catalogService
	selector    selectorService
	log         *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(acq acquisitionService, catalog catalogService, sel selectorService, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{
		acquisition: acq,
		catalog:     catalog,
		selector:    sel,
		log:         logger.With("handler", "words"),
	}
}

type addWordRequest struct {
	Word  string `json:"word"`
	Topic string `json:"topic"`
}

// Add handles POST /api/v1/words.
func (h *WordsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.acquisition.AddWord(r.Context(), acquisition.AddWordInput{Headword: req.Word, Topic: req.Topic})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if res.Inserted > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toAddWordResponse(res))
}

type bulkAddRequest struct {
	Words []string `json:"words"`
	Topic string   `json:"topic"`
}

type bulkAddResponse struct {
	insertResponse
	Invalid  []string `json:"invalid"`
	NotFound []string `json:"notFound"`
}

// AddBulk handles POST /api/v1/words/bulk.
func (h *WordsHandler) AddBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkAddRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.acquisition.AddWords(r.Context(), acquisition.AddWordsInput{Headwords: req.Words, Topic: req.Topic})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkAddResponse{
		insertResponse: toInsertResponse(res.InsertResult),
		Invalid:        orEmpty(res.Invalid),
		NotFound:       orEmpty(res.NotFound),
	})
}

type manualEntryRequest struct {
	Word          string `json:"word"`
	PartOfSpeech  string `json:"partOfSpeech"`
	Level         string `json:"level"`
	Topic         string `json:"topic"`
	Definition    string `json:"definition"`
	Example       string `json:"example"`
	Pronunciation string `json:"pronunciation"`
}

func (req manualEntryRequest) entry() domain.Entry {
	headword, pos := domain.SplitTitle(req.Word)
	if req.PartOfSpeech != "" {
		pos = domain.ClassifyPartOfSpeech(req.PartOfSpeech, req.Definition)
	}
	return domain.Entry{
		Headword:      headword,
		PartOfSpeech:  pos,
		Level:         domain.NormalizeLevel(req.Level),
		Topic:         req.Topic,
		Definition:    req.Definition,
		Example:       req.Example,
		Pronunciation: req.Pronunciation,
		Source:        domain.SourceManual,
	}
}

// AddManual handles POST /api/v1/words/manual.
func (h *WordsHandler) AddManual(w http.ResponseWriter, r *http.Request) {
	var req manualEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.acquisition.AddManual(r.Context(), acquisition.ManualInput{Entry: req.entry()})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if res.Inserted > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, toAddWordResponse(res))
}

type importRequest struct {
	Format string `json:"format"`
	Data   string `json:"data"`
}

type importErrorResponse struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

type importResponse struct {
	insertResponse
	Errors []importErrorResponse `json:"errors"`
}

// Import handles POST /api/v1/words/import.
func (h *WordsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Format == "" {
		req.Format = dictionary.FormatPipe
	}

	res, err := h.catalog.ImportEntries(r.Context(), dictionary.ImportInput{Format: req.Format, Data: req.Data})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	resp := importResponse{
		insertResponse: toInsertResponse(res.InsertResult),
		Errors:         make([]importErrorResponse, 0, len(res.Errors)),
	}
	for _, e := range res.Errors {
		resp.Errors = append(resp.Errors, importErrorResponse{Line: e.LineNumber, Text: e.Text, Reason: e.Reason})
	}
	writeJSON(w, http.StatusOK, resp)
}

type listResponse struct {
	Entries    []entryResponse `json:"entries"`
	TotalCount int             `json:"totalCount"`
}

// List handles GET /api/v1/words?topic=.
func (h *WordsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListMine handles GET /api/v1/words/mine?topic=.
func (h *WordsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *WordsHandler) list(w http.ResponseWriter, r *http.Request, mine bool) {
	res, err := h.catalog.ListEntries(r.Context(), dictionary.ListInput{
		Topic: r.URL.Query().Get("topic"),
		Mine:  mine,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Entries: toEntryResponses(res.Entries), TotalCount: res.TotalCount})
}

// ClearMine handles DELETE /api/v1/words/mine.
func (h *WordsHandler) ClearMine(w http.ResponseWriter, r *http.Request) {
	n, err := h.catalog.ClearMine(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Pick handles POST /api/v1/words/pick.
func (h *WordsHandler) Pick(w http.ResponseWriter, r *http.Request) {
	e, err := h.selector.Pick(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryResponse(e))
}

// Daily handles POST /api/v1/words/daily: the caller's daily batch.
func (h *WordsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(r.Context())
	if !ok {
		respondError(h.log, w, r, domain.ErrUnauthorized)
		return
	}

	entries, err := h.selector.PickDaily(r.Context(), learnerID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": toEntryResponses(entries)})
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
