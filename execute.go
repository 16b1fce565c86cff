package formhandler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formhandler/pkg/file"
	"github.com/dmitrymomot/formhandler/pkg/logger"
	"github.com/dmitrymomot/formhandler/pkg/rules"
	"github.com/dmitrymomot/formhandler/pkg/validator"
)

// fieldRun carries one present field from type validation to its result.
type fieldRun struct {
	rule    *rules.FieldRule
	values  []string
	multi   bool
	uploads []file.Upload
	exts    []string
	names   []string
}

// fieldOutcome is what the existence check, storage, filter and hook
// phase produced for one field. Errors go to a private bag merged later
// in declaration order.
type fieldOutcome struct {
	bag    *validator.ErrorBag
	value  any
	stored []*file.File
}

// Execute validates every declared field. It returns whether all fields
// passed; field errors are read with Errors. A non-nil error means the
// execution was aborted.
func (h *Handler) Execute(ctx context.Context) (bool, error) {
	return h.run(ctx, false, nil)
}

// ExecuteOnDemand validates only the declared fields present in the data
// or files source, plus the extra fields named.
func (h *Handler) ExecuteOnDemand(ctx context.Context, extra ...string) (bool, error) {
	return h.run(ctx, true, extra)
}

func (h *Handler) run(ctx context.Context, onDemand bool, extra []string) (bool, error) {
	h.mu.Lock()
	if h.state != stateIdle {
		h.mu.Unlock()
		return false, ErrAlreadyExecuted
	}
	h.state = stateRunning
	h.mu.Unlock()

	start := time.Now()
	ok, err := h.execute(ctx, onDemand, extra)

	h.mu.Lock()
	if err != nil {
		h.state = stateFailed
	} else {
		h.state = stateDone
		h.succeeded = ok
	}
	h.mu.Unlock()

	if err != nil {
		h.log.ErrorContext(ctx, "form execution aborted",
			logger.Error(err),
			logger.Duration(time.Since(start)),
		)
		return false, err
	}

	h.log.InfoContext(ctx, "form executed",
		slog.Bool("success", ok),
		slog.Bool("on_demand", onDemand),
		slog.Int("errors", h.bag.Len()),
		logger.Duration(time.Since(start)),
	)
	return ok, nil
}

func (h *Handler) execute(ctx context.Context, onDemand bool, extra []string) (bool, error) {
	if h.data == nil {
		return false, ErrDataSourceNotSet
	}
	if h.rules == nil {
		return false, ErrRulesNotSet
	}

	var keep func(string) bool
	if onDemand {
		keep = func(field string) bool {
			if _, ok := h.data[field]; ok {
				return true
			}
			if _, ok := h.files[field]; ok {
				return true
			}
			return slices.Contains(extra, field)
		}
	}

	resolved, err := h.resolver.ResolveOnly(h.rules, h.data, keep)
	if err != nil {
		return false, err
	}
	h.mu.Lock()
	h.resolved = resolved
	h.mu.Unlock()

	if resolved.HasFileFields() && h.files == nil {
		return false, ErrFilesSourceNotSet
	}

	// Presence runs for every field before anything that may suspend.
	present := make([]*fieldRun, 0, resolved.Len())
	for _, field := range resolved.Fields() {
		rule, _ := resolved.Get(field)
		run := h.collect(rule)
		if isEmpty(run.values) {
			h.missing(ctx, rule)
			continue
		}
		present = append(present, run)
	}

	valid := make([]*fieldRun, 0, len(present))
	for _, run := range present {
		ok, err := h.validate(ctx, run)
		if err != nil {
			return false, err
		}
		if ok {
			valid = append(valid, run)
		}
	}

	outcomes, err := h.finishAll(ctx, valid)
	if err != nil {
		return false, err
	}

	for i, run := range valid {
		out := outcomes[i]
		h.bag.Merge(out.bag)

		field := run.rule.Field
		h.log.DebugContext(ctx, "field processed",
			logger.Field(field),
			logger.RuleType(string(run.rule.Type)),
			slog.Bool("valid", out.bag.IsEmpty()),
		)
		if !out.bag.IsEmpty() {
			continue
		}

		h.mu.Lock()
		h.result[field] = out.value
		if len(out.stored) > 0 {
			h.stored[field] = out.stored
		}
		h.mu.Unlock()
	}

	return h.bag.IsEmpty(), nil
}

// collect reads the submitted value of a field.
func (h *Handler) collect(rule *rules.FieldRule) *fieldRun {
	run := &fieldRun{rule: rule}
	if !rule.Type.IsFile() {
		run.values, run.multi = elements(h.data[rule.Field])
		return run
	}

	run.uploads = h.files[rule.Field].Uploads()
	run.values = make([]string, len(run.uploads))
	for i, u := range run.uploads {
		run.values[i] = u.Name
	}
	run.multi = len(run.uploads) > 1
	return run
}

// missing records a missing required field, or applies the default value
// of an optional one.
func (h *Handler) missing(ctx context.Context, rule *rules.FieldRule) {
	if !rule.Required {
		if rule.HasDefault() {
			h.mu.Lock()
			h.result[rule.Field] = rule.DefaultValue
			h.mu.Unlock()
		}
		return
	}

	h.bag.Add(validator.ValidationError{
		Field:             rule.Field,
		Message:           validator.Render(pick(rule.Options.RequiredErr, validator.MsgRequired), rule.Field, "", 0),
		TranslationKey:    "validation.required",
		TranslationValues: map[string]any{"field": rule.Field},
	})
	h.log.DebugContext(ctx, "required field missing",
		logger.Field(rule.Field),
		logger.RuleType(string(rule.Type)),
	)
}

// validate runs the type validator over every element, stopping at the
// first failure. Relocated uploads are recorded even if a later element fails.
func (h *Handler) validate(ctx context.Context, run *fieldRun) (bool, error) {
	rule := run.rule
	if run.multi && !rule.IsList {
		h.bag.Add(validator.ValidationError{
			Field:          rule.Field,
			Message:        validator.Render(validator.MsgMultipleValues, rule.Field, "", 0),
			TranslationKey: "validation.multiple",
		})
		return false, nil
	}

	isFile := rule.Type.IsFile()
	if isFile {
		run.exts = make([]string, len(run.uploads))
	}

	for i, v := range run.values {
		c := h.engine.NewContext(rule, i, h.bag, h.data.Lookup)
		if isFile {
			c.WithUpload(run.uploads[i])
		}

		ok := h.engine.Validate(c, v)
		if err := c.Err(); err != nil {
			return false, fmt.Errorf("field %q: %w", rule.Field, err)
		}

		if isFile {
			run.exts[i] = c.Extension()
			if name := c.FileName(); name != "" {
				run.uploads[i].Path = c.FilePath()
				run.names = append(run.names, name)
				h.mu.Lock()
				h.fileNames[rule.Field] = append(h.fileNames[rule.Field], name)
				h.mu.Unlock()
			}
		}

		if !ok {
			h.log.DebugContext(ctx, "field rejected",
				logger.Field(rule.Field),
				logger.RuleType(string(rule.Type)),
				slog.Int("index", i),
			)
			return false, nil
		}
	}
	return true, nil
}

// finishAll runs finish for every validated field, sequentially or with
// up to h.concurrency fields at once. Outcomes keep the input order.
func (h *Handler) finishAll(ctx context.Context, runs []*fieldRun) ([]fieldOutcome, error) {
	outcomes := make([]fieldOutcome, len(runs))

	if h.concurrency < 2 {
		for i, run := range runs {
			out, err := h.finish(ctx, run)
			if err != nil {
				return nil, err
			}
			outcomes[i] = out
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i, run := range runs {
		g.Go(func() error {
			out, err := h.finish(gctx, run)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// finish runs the existence checks, storage, filters and hooks of a field
// that passed type validation.
func (h *Handler) finish(ctx context.Context, run *fieldRun) (fieldOutcome, error) {
	rule := run.rule
	field := rule.Field
	out := fieldOutcome{bag: validator.NewErrorBag()}

	if len(rule.Checks) > 0 {
		if h.checker == nil {
			return out, fmt.Errorf("%w: field %q", ErrCheckerNotSet, field)
		}
		for i, v := range run.values {
			msg, err := h.checker.Run(ctx, rule, v)
			if err != nil {
				return out, fmt.Errorf("field %q: %w", field, err)
			}
			if msg != "" {
				out.bag.Add(validator.ValidationError{
					Field:             field,
					Message:           validator.Render(msg, field, v, i),
					TranslationKey:    "validation.exists",
					TranslationValues: map[string]any{"field": field, "value": v, "index": i},
				})
				return out, nil
			}
		}
	}

	if rule.Type.IsFile() && rule.Options.Store {
		stored, err := h.store(ctx, run)
		if err != nil {
			return out, err
		}
		out.stored = stored
	}

	values := make([]any, len(run.values))
	for i, v := range run.values {
		var value any = v
		if rule.Type.IsFile() {
			value = run.uploads[i]
		} else {
			filtered, err := filterValue(rule, v, h.locale)
			if err != nil {
				return out, err
			}
			value = filtered
		}

		if rule.Validate != nil {
			ok, err := rule.Validate(ctx, field, value, i, h.data)
			if err != nil {
				return out, fmt.Errorf("%w: validate %q: %w", ErrHookFailed, field, err)
			}
			if !ok {
				out.bag.Add(validator.ValidationError{
					Field:          field,
					Message:        validator.Render(validator.MsgValidationFails, field, v, i),
					TranslationKey: "validation.failed",
				})
				return out, nil
			}
		}
		values[i] = value
	}

	var value any
	switch {
	case rule.Type.IsFile() && rule.IsList:
		var c file.Collection
		for _, u := range run.uploads {
			c.Append(u)
		}
		value = c
	case rule.Type.IsFile():
		value = run.uploads[0]
	case rule.IsList:
		value = values
	default:
		value = values[0]
	}

	if rule.Compute != nil {
		computed, err := rule.Compute(ctx, field, value, h.data)
		if err != nil {
			return out, fmt.Errorf("%w: compute %q: %w", ErrHookFailed, field, err)
		}
		value = computed
	}

	out.value = value
	return out, nil
}

// store uploads the accepted files of a field. Relocated files keep their
// generated name; the others get a new random name with the resolved extension.
func (h *Handler) store(ctx context.Context, run *fieldRun) ([]*file.File, error) {
	field := run.rule.Field
	if h.storage == nil {
		return nil, fmt.Errorf("%w: field %q", ErrStorageNotSet, field)
	}

	stored := make([]*file.File, 0, len(run.uploads))
	for i, u := range run.uploads {
		var name string
		if i < len(run.names) {
			name = run.names[i]
		} else {
			name = strings.ReplaceAll(uuid.New().String(), "-", "")
			if ext := run.exts[i]; ext != "" {
				name += "." + ext
			}
		}

		f, err := file.Store(ctx, h.storage, file.Key(run.rule.Options.StorePrefix, name), u, u.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrStoreFailed, field, err)
		}
		stored = append(stored, f)
	}
	return stored, nil
}

func pick(custom, fallback string) string {
	if custom != "" {
		return custom
	}
	return fallback
}
