package record

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recordbook/internal/app/server/api/http/middleware/sessionauth"
	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, book *record.Book, query string) (record.ListResponse, error) {
	args := m.Called(ctx, book, query)
	return args.Get(0).(record.ListResponse), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, book *record.Book, draft record.Draft) (record.Record, error) {
	args := m.Called(ctx, book, draft)
	return args.Get(0).(record.Record), args.Error(1)
}

func (m *MockService) Find(ctx context.Context, book *record.Book, id record.ID) (record.Record, error) {
	args := m.Called(ctx, book, id)
	return args.Get(0).(record.Record), args.Error(1)
}

func (m *MockService) Toggle(ctx context.Context, book *record.Book, id record.ID) (record.Result, error) {
	args := m.Called(ctx, book, id)
	return args.Get(0).(record.Result), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, book *record.Book, id record.ID, patch record.Patch) (record.Result, error) {
	args := m.Called(ctx, book, id, patch)
	return args.Get(0).(record.Result), args.Error(1)
}

func (m *MockService) Replace(ctx context.Context, book *record.Book, rec record.Record) (record.Result, error) {
	args := m.Called(ctx, book, rec)
	return args.Get(0).(record.Result), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, book *record.Book, id record.ID) (record.Result, error) {
	args := m.Called(ctx, book, id)
	return args.Get(0).(record.Result), args.Error(1)
}

func (m *MockService) Dispatch(ctx context.Context, book *record.Book, action record.Action) (record.Result, error) {
	args := m.Called(ctx, book, action)
	return args.Get(0).(record.Result), args.Error(1)
}

func (m *MockService) Stats(ctx context.Context, book *record.Book) (record.StatsResponse, error) {
	args := m.Called(ctx, book)
	return args.Get(0).(record.StatsResponse), args.Error(1)
}

func sessionCtx(t *testing.T, kind record.Kind) (context.Context, *record.Book) {
	t.Helper()
	book, err := record.NewBook(kind)
	require.NoError(t, err)
	return sessionauth.WithSession(context.Background(), &session.Session{ID: "s", Kind: kind, Book: book}), book
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	require.True(t, errors.As(err, &se), "expected huma status error, got %v", err)
	return se.GetStatus()
}

func TestHandler_RequiresSession(t *testing.T) {
	h := NewHandler(new(MockService), nil, nil)

	_, err := h.list(context.Background(), &listInput{})

	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestHandler_List(t *testing.T) {
	ctx, book := sessionCtx(t, record.KindTodo)
	svc := new(MockService)
	h := NewHandler(svc, nil, nil)

	want := record.ListResponse{Kind: record.KindTodo, Query: "라면", Total: 1, Records: []record.Item{{ID: "2", Content: "신라면"}}}
	svc.On("List", ctx, book, "라면").Return(want, nil)

	out, err := h.list(ctx, &listInput{Query: "라면"})
	require.NoError(t, err)
	assert.Equal(t, want, out.Body)

	svc.AssertExpectations(t)
}

func TestHandler_Create(t *testing.T) {
	ctx, book := sessionCtx(t, record.KindDiary)

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)

		draft := record.Draft{Content: "오늘", Emotion: 2, Date: record.FromMillis(1700000000000)}
		svc.On("Create", ctx, book, draft).Return(record.Record{ID: "0", Content: "오늘", Emotion: 2, Date: draft.Date}, nil)

		input := &createInput{Body: record.CreateRequest{Content: "오늘", EmotionID: 2, Date: 1700000000000}}
		out, err := h.create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, record.ActionCreate, out.Body.Action)
		require.NotNil(t, out.Body.Record)
		assert.Equal(t, record.ID("0"), out.Body.Record.ID)
		assert.Equal(t, int64(1700000000000), out.Body.Record.Date)
		svc.AssertExpectations(t)
	})

	t.Run("ValidationError", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)

		svc.On("Create", ctx, book, mock.Anything).Return(record.Record{}, record.ErrInvalidData)

		_, err := h.create(ctx, &createInput{Body: record.CreateRequest{Content: "x"}})
		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})
}

func TestHandler_Find(t *testing.T) {
	ctx, book := sessionCtx(t, record.KindTodo)

	tests := []struct {
		name       string
		id         string
		rec        record.Record
		err        error
		wantStatus int
	}{
		{name: "found", id: "1", rec: record.Record{ID: "1", Content: "짜파게티"}},
		{name: "not found", id: "9", err: record.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", id: "2", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, nil, nil)
			svc.On("Find", ctx, book, record.ID(tt.id)).Return(tt.rec, tt.err)

			out, err := h.find(ctx, &idInput{ID: tt.id})

			if tt.wantStatus != 0 {
				assert.Equal(t, tt.wantStatus, statusOf(t, err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "짜파게티", out.Body.Content)
		})
	}
}

func TestHandler_Toggle(t *testing.T) {
	ctx, book := sessionCtx(t, record.KindTodo)
	svc := new(MockService)
	h := NewHandler(svc, nil, nil)

	svc.On("Toggle", ctx, book, record.ID("1")).Return(record.Result{
		Action:   record.ActionUpdate,
		Affected: 1,
		Records:  []record.Record{{ID: "0"}, {ID: "1", Done: true}},
	}, nil)

	out, err := h.toggle(ctx, &idInput{ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Body.Affected)
	assert.Equal(t, 2, out.Body.Total)
	require.NotNil(t, out.Body.Record)
	assert.True(t, out.Body.Record.IsDone)
}

func TestHandler_DeleteMissing(t *testing.T) {
	ctx, book := sessionCtx(t, record.KindTodo)
	svc := new(MockService)
	h := NewHandler(svc, nil, nil)

	svc.On("Delete", ctx, book, record.ID("42")).Return(record.Result{Action: record.ActionDelete}, nil)

	out, err := h.delete(ctx, &idInput{ID: "42"})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Body.Affected)
	assert.Nil(t, out.Body.Record)
}

func TestHandler_Dispatch(t *testing.T) {
	ctx, book := sessionCtx(t, record.KindTodo)

	t.Run("UnknownType", func(t *testing.T) {
		h := NewHandler(new(MockService), nil, nil)

		_, err := h.dispatch(ctx, &actionInput{RawBody: []byte(`{"type":"RESET"}`)})
		assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	})

	t.Run("Duplicate", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)
		svc.On("Dispatch", ctx, book, mock.AnythingOfType("record.Create")).Return(record.Result{}, record.ErrDuplicateID)

		_, err := h.dispatch(ctx, &actionInput{RawBody: []byte(`{"type":"CREATE","data":{"id":1,"content":"x"}}`)})
		assert.Equal(t, http.StatusConflict, statusOf(t, err))
	})

	t.Run("Toggle", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, nil, nil)
		svc.On("Dispatch", ctx, book, record.Toggle("1")).Return(record.Result{
			Action:   record.ActionUpdate,
			Affected: 1,
			Records:  []record.Record{{ID: "1", Done: true}},
		}, nil)

		out, err := h.dispatch(ctx, &actionInput{RawBody: []byte(`{"type":"UPDATE","id":1}`)})
		require.NoError(t, err)
		assert.Equal(t, record.ActionUpdate, out.Body.Action)
		require.NotNil(t, out.Body.Record)
		assert.Equal(t, record.ID("1"), out.Body.Record.ID)
	})
}
