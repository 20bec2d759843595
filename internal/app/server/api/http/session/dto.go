package session

import (
	"recordbook/internal/domain/record"
	"recordbook/internal/domain/session"
)

type openInput struct {
	Body *openRequest `required:"false"`
}

type openRequest struct {
	Kind record.Kind `json:"kind,omitempty" doc:"Book flavour; the server default when omitted"`
}

type infoOutput struct {
	Body session.Info
}

type sessionInput struct {
	Session string `path:"session" doc:"Session id"`
}
