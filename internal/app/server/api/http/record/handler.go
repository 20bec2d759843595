package record

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"recordbook/internal/app/server/api/http/middleware/sessionauth"
	"recordbook/internal/domain/record"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		service:    service,
		log:        log.With("component", "record_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.patchOp(), h.patch)
	huma.Register(api, h.replaceOp(), h.replace)
	huma.Register(api, h.toggleOp(), h.toggle)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.dispatchOp(), h.dispatch)
	huma.Register(api, h.statsOp(), h.stats)
}

func bookFrom(ctx context.Context) (*record.Book, error) {
	sess, ok := sessionauth.FromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("session required")
	}
	return sess.Book, nil
}

func parseID(raw string) (record.ID, error) {
	id, err := record.ParseID(raw)
	if err != nil {
		return "", huma.Error422UnprocessableEntity(err.Error())
	}
	return id, nil
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.service.List(ctx, book, input.Query)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &listOutput{Body: res}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*mutationOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := h.service.Create(ctx, book, input.Body.Draft())
	if err != nil {
		return nil, h.toHTTP(err)
	}

	item := record.ToItem(rec)
	return &mutationOutput{
		Body: record.MutationResponse{
			Action:   record.ActionCreate,
			Affected: 1,
			Total:    book.Len(),
			Record:   &item,
		},
	}, nil
}

func (h *Handler) find(ctx context.Context, input *idInput) (*findOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	rec, err := h.service.Find(ctx, book, id)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &findOutput{Body: record.ToItem(rec)}, nil
}

func (h *Handler) patch(ctx context.Context, input *patchInput) (*mutationOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Update(ctx, book, id, input.Body.Patch())
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return mutation(res, id), nil
}

func (h *Handler) replace(ctx context.Context, input *replaceInput) (*mutationOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Replace(ctx, book, input.Body.Record(id))
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return mutation(res, id), nil
}

func (h *Handler) toggle(ctx context.Context, input *idInput) (*mutationOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Toggle(ctx, book, id)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return mutation(res, id), nil
}

func (h *Handler) delete(ctx context.Context, input *idInput) (*mutationOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Delete(ctx, book, id)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return mutation(res, ""), nil
}

func (h *Handler) dispatch(ctx context.Context, input *actionInput) (*mutationOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}

	action, err := record.DecodeAction(input.RawBody)
	if err != nil {
		return nil, h.toHTTP(err)
	}

	res, err := h.service.Dispatch(ctx, book, action)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return mutation(res, target(action)), nil
}

func (h *Handler) stats(ctx context.Context, _ *struct{}) (*statsOutput, error) {
	book, err := bookFrom(ctx)
	if err != nil {
		return nil, err
	}

	res, err := h.service.Stats(ctx, book)
	if err != nil {
		return nil, h.toHTTP(err)
	}
	return &statsOutput{Body: res}, nil
}

// mutation builds the response of a dispatched action. When id is set and
// still present in the result the record is echoed back.
func mutation(res record.Result, id record.ID) *mutationOutput {
	out := &mutationOutput{
		Body: record.MutationResponse{
			Action:   res.Action,
			Affected: res.Affected,
			Total:    len(res.Records),
		},
	}
	if id != "" && res.Affected > 0 {
		if rec, ok := record.Find(res.Records, id); ok {
			item := record.ToItem(rec)
			out.Body.Record = &item
		}
	}
	return out
}

func target(action record.Action) record.ID {
	switch a := action.(type) {
	case record.Create:
		return a.Record.ID
	case record.Update:
		return a.ID
	}
	return ""
}
