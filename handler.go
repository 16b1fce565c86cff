package formhandler

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/formhandler/pkg/config"
	"github.com/dmitrymomot/formhandler/pkg/dbcheck"
	"github.com/dmitrymomot/formhandler/pkg/file"
	"github.com/dmitrymomot/formhandler/pkg/logger"
	"github.com/dmitrymomot/formhandler/pkg/rules"
	"github.com/dmitrymomot/formhandler/pkg/validator"
)

type state int

const (
	stateIdle state = iota
	stateRunning
	stateDone
	stateFailed
)

// Handler validates one form submission. It is single-use: Execute or
// ExecuteOnDemand may run once, after which the results are read-only.
type Handler struct {
	mu    sync.RWMutex
	state state

	data  DataSource
	files file.Source
	rules *rules.Set

	resolver    *rules.Resolver
	engine      *validator.Engine
	checker     *dbcheck.Checker
	storage     file.Storage
	concurrency int
	locale      language.Tag
	log         *slog.Logger

	resolved  *rules.Resolved
	bag       *validator.ErrorBag
	result    map[string]any
	fileNames map[string][]string
	stored    map[string][]*file.File
	custom    map[string]any
	succeeded bool
}

// Option configures a Handler.
type Option func(*options)

type options struct {
	storage     file.Storage
	counter     dbcheck.Counter
	checker     *dbcheck.Checker
	caseStyle   dbcheck.CaseStyle
	concurrency int
	locale      *language.Tag
	log         *slog.Logger
	detector    file.Detector
	clock       func() time.Time
	validators  map[rules.Type]validator.Validator
}

// WithStorage sets where uploads of fields with the store option go.
func WithStorage(s file.Storage) Option {
	return func(o *options) { o.storage = s }
}

// WithCounter enables existence checks through counter.
func WithCounter(counter dbcheck.Counter) Option {
	return func(o *options) { o.counter = counter }
}

// WithChecker sets a preconfigured existence checker. It takes precedence
// over WithCounter and WithCaseStyle.
func WithChecker(c *dbcheck.Checker) Option {
	return func(o *options) { o.checker = c }
}

// WithCaseStyle sets the field naming of existence check queries.
// The default comes from config.Global.
func WithCaseStyle(style dbcheck.CaseStyle) Option {
	return func(o *options) { o.caseStyle = style }
}

// WithConcurrency runs the existence check, storage, filter and hook
// phase of up to n fields at once. Values below 2 run sequentially.
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// WithLocale sets the locale used for number formatting and titleizing.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = &tag }
}

// WithLogger sets the logger. Handlers log nothing by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithDetector replaces the file type detector.
func WithDetector(d file.Detector) Option {
	return func(o *options) { o.detector = d }
}

// WithClock sets the clock used by date placeholders.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithValidator replaces the validator of a field type.
func WithValidator(t rules.Type, v validator.Validator) Option {
	return func(o *options) {
		if o.validators == nil {
			o.validators = make(map[rules.Type]validator.Validator)
		}
		o.validators[t] = v
	}
}

// New creates a Handler for one submission. data and set are required by
// Execute; files is required only when a file field is declared.
func New(data DataSource, files file.Source, set *rules.Set, opts ...Option) *Handler {
	global := config.Global()
	o := &options{
		caseStyle:   dbcheck.ParseCaseStyle(global.DBCaseStyle),
		concurrency: global.Concurrency,
	}
	for _, opt := range opts {
		opt(o)
	}

	locale := language.English
	if o.locale != nil {
		locale = *o.locale
	} else if tag, err := language.Parse(global.Locale); err == nil {
		locale = tag
	}

	engineOpts := []validator.Option{validator.WithLocale(locale)}
	if o.detector != nil {
		engineOpts = append(engineOpts, validator.WithDetector(o.detector))
	}
	for t, v := range o.validators {
		engineOpts = append(engineOpts, validator.WithValidator(t, v))
	}

	var resolverOpts []rules.ResolverOption
	if o.clock != nil {
		resolverOpts = append(resolverOpts, rules.WithClock(o.clock))
	}

	checker := o.checker
	if checker == nil && o.counter != nil {
		checker = dbcheck.New(o.counter, dbcheck.WithCaseStyle(o.caseStyle))
	}

	log := o.log
	if log == nil {
		log = logger.Discard()
	}

	return &Handler{
		data:        data,
		files:       files,
		rules:       set,
		resolver:    rules.NewResolver(resolverOpts...),
		engine:      validator.New(engineOpts...),
		checker:     checker,
		storage:     o.storage,
		concurrency: max(o.concurrency, 1),
		locale:      locale,
		log:         log.With(logger.Component("formhandler")),
		bag:         validator.NewErrorBag(),
		result:      make(map[string]any),
		fileNames:   make(map[string][]string),
		stored:      make(map[string][]*file.File),
		custom:      make(map[string]any),
	}
}

// AddField sets a raw value before execution. It is ignored once the
// handler has started.
func (h *Handler) AddField(field string, value any) *Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != stateIdle {
		return h
	}
	if h.data == nil {
		h.data = make(DataSource)
	}
	h.data[field] = value
	return h
}

// AddFields sets several raw values before execution.
func (h *Handler) AddFields(fields map[string]any) *Handler {
	for k, v := range fields {
		h.AddField(k, v)
	}
	return h
}

// Resolved returns the rules resolved by the execution, or nil before it.
func (h *Handler) Resolved() *rules.Resolved {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.resolved
}

// Errors returns the recorded field errors in the order they were recorded.
func (h *Handler) Errors() validator.ValidationErrors {
	return h.bag.Errors()
}

// Err returns the field errors as an error, or nil when there are none.
func (h *Handler) Err() error {
	return h.bag.Err()
}

// Data returns a copy of the result data.
func (h *Handler) Data() map[string]any {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.result)
}

// Value returns the result value of a field.
func (h *Handler) Value(field string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.result[field]
	return v, ok
}

// FileName returns the generated name of the first relocated upload of a field.
func (h *Handler) FileName(field string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if names := h.fileNames[field]; len(names) > 0 {
		return names[0]
	}
	return ""
}

// FileNames returns the generated names of every relocated upload of a field.
func (h *Handler) FileNames(field string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.fileNames[field])
}

// Stored returns the storage records of a field's uploads.
func (h *Handler) Stored(field string) []*file.File {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.stored[field])
}

// SetCustomData keeps an arbitrary value with the handler.
func (h *Handler) SetCustomData(name string, value any) *Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.custom[name] = value
	return h
}

// CustomData returns a value stored with SetCustomData.
func (h *Handler) CustomData(name string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.custom[name]
	return v, ok
}

// Succeeds reports whether the handler ran and every field passed.
func (h *Handler) Succeeds() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state == stateDone && h.succeeded
}

// Fails is the negation of Succeeds.
func (h *Handler) Fails() bool {
	return !h.Succeeds()
}
