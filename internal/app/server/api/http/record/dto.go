package record

import (
	"recordbook/internal/domain/record"
)

type listInput struct {
	Query string `query:"q" doc:"Case-insensitive content filter"`
}

type listOutput struct {
	Body record.ListResponse
}

type createInput struct {
	Body record.CreateRequest
}

type idInput struct {
	ID string `path:"id" example:"3" doc:"Record id"`
}

type findOutput struct {
	Body record.Item
}

type patchInput struct {
	ID   string `path:"id" example:"3" doc:"Record id"`
	Body record.PatchRequest
}

type replaceInput struct {
	ID   string `path:"id" example:"mock1" doc:"Record id"`
	Body record.ReplaceRequest
}

type actionInput struct {
	RawBody []byte `contentType:"application/json" doc:"Tagged action: CREATE, UPDATE, DELETE or INIT"`
}

type mutationOutput struct {
	Body record.MutationResponse
}

type statsOutput struct {
	Body record.StatsResponse
}
