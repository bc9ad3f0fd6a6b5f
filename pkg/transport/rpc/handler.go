package rpc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danl5/gofsmagent"
	"github.com/danl5/gofsmagent/pkg/model"
	"github.com/danl5/gofsmagent/pkg/registry"
)

// NewHandler returns the operation handler serving requests out of reg.
// An empty machine name in the request addresses the default instance.
// Configuration errors (unregistered machine, unknown operation) are the
// only failures reported through the error return; every runtime failure
// of a firing operation is rendered into the response result instead.
func NewHandler(reg *registry.Registry, logger *slog.Logger) model.OperationHandler {
	log := logger.With("component", "rpc handler")

	return func(request *model.Request, response *model.Response) error {
		name := request.Machine
		if name == "" {
			name = registry.DefaultName
		}

		adapter, err := reg.Lookup(name)
		if err != nil {
			log.Error("failed to look up machine", "machine", name, "error", err.Error())
			response.Error = err.Error()
			return err
		}

		log.Debug("handle operation", "machine", name, "op", request.Op.String())
		return dispatch(adapter, request, response)
	}
}

func dispatch(adapter *gofsmagent.Adapter, request *model.Request, response *model.Response) error {
	ctx := context.Background()

	switch request.Op {
	case model.OpGetCurrentState:
		response.Result = adapter.GetCurrentState()
	case model.OpTransition:
		response.Result = adapter.Transition(ctx, request.Trigger)
	case model.OpFireTrigger:
		response.Result = adapter.FireTrigger(ctx, request.Trigger)
	case model.OpCanFireTrigger:
		response.Result = adapter.CanFireTrigger(request.Trigger)
	case model.OpGetStates:
		response.Results = adapter.GetStates()
	case model.OpGetPermittedTriggers:
		response.Results = adapter.GetPermittedTriggers()
	case model.OpGetAllTriggers:
		response.Results = adapter.GetAllTriggers()
	case model.OpGetMermaidGraph:
		response.Result = adapter.GetMermaidGraph()
	case model.OpGetDocumentation:
		response.Result = adapter.GetStateMachineDocumentation()
	case model.OpDescribe:
		response.Payload = adapter.Describe()
	default:
		err := fmt.Errorf("unknown operation code %d", request.Op)
		response.Error = err.Error()
		return err
	}
	return nil
}
