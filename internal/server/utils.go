package server

import (
	"github.com/tensorplex-labs/topsis/internal/topsis"
	"github.com/tensorplex-labs/topsis/pkg/api"
)

// createResponse creates a StdResponse with the given body and error
func createResponse[T any](body T, err error) api.StdResponse[T] {
	if err != nil {
		errMsg := err.Error()
		return api.StdResponse[T]{
			Body:  body,
			Error: &errMsg,
			Kind:  topsis.Kind(err),
		}
	}
	return api.StdResponse[T]{
		Body: body,
	}
}
