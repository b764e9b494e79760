package api

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/cortex/engine"
	apperrors "github.com/skillsenselab/cortex/errors"
	"github.com/skillsenselab/cortex/logger"
	"github.com/skillsenselab/cortex/server"
	"github.com/skillsenselab/cortex/validation"
)

// Handler serves the flow-execution API.
type Handler struct {
	executor *engine.Executor
	log      *logger.Logger
}

// NewHandler creates an API handler running flows on the given executor.
func NewHandler(executor *engine.Executor, log *logger.Logger) *Handler {
	return &Handler{
		executor: executor,
		log:      log.WithComponent("api"),
	}
}

// RegisterRoutes mounts the API routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.POST("/engine/run", h.RunFlow)
}

// RunFlow handles POST /api/v1/engine/run: bind, validate, build the graph,
// and execute it. A cyclic graph yields 422; per-node failures are reported
// inside a 200 response, since the run itself completed.
func (h *Handler) RunFlow(c *gin.Context) {
	var req FlowExecutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("Request body is not valid JSON.").WithCause(err))
		return
	}
	if err := validation.Validate(&req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	h.log.Info("received flow execution request", map[string]interface{}{
		"nodes": len(req.Nodes),
		"edges": len(req.Edges),
	})

	g, err := req.BuildGraph()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), g)
	if err != nil {
		var cycleErr *engine.CycleError
		if stderrors.As(err, &cycleErr) {
			server.RespondWithError(c, apperrors.CyclicGraph(cycleErr.Error()))
			return
		}
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}

	server.RespondOK(c, FlowExecutionResponse{
		RunID:      result.RunID,
		Order:      result.Order,
		DurationMS: result.Duration.Milliseconds(),
		Results:    result.NodeResults,
	})
}
