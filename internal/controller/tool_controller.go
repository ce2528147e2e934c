package controller

import (
	"errors"
	"io"
	"loki-mcp/internal/apperror"
	"loki-mcp/internal/dto"
	"loki-mcp/internal/model"
	"loki-mcp/internal/tools"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ToolController struct {
	registry tools.Registry
}

func NewToolController(registry tools.Registry) *ToolController {
	return &ToolController{
		registry: registry,
	}
}

func RegisterToolRoutes(router *gin.Engine, controller *ToolController) {
	v1 := router.Group("/api/v1/tools")
	{
		v1.GET("", controller.ListTools)
		v1.POST("/:name", controller.CallTool)
	}
}

// ListTools godoc
// @Summary      List tools
// @Description  Returns the static tool table with each tool's JSON input schema.
// @Tags         tools
// @Produce      json
// @Success      200  {object}  model.Response
// @Router       /api/v1/tools [get]
func (c *ToolController) ListTools(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.NewResponse("ok", c.registry.List()))
}

// CallTool godoc
// @Summary      Invoke a tool
// @Description  Runs one tool with the given arguments and returns its structured result and text rendering.
// @Tags         tools
// @Accept       json
// @Produce      json
// @Param        name     path      string               true   "Tool name, e.g. get_error_summary"
// @Param        request  body      dto.ToolCallRequest  false  "Tool arguments"
// @Success      200      {object}  dto.ToolCallResponse
// @Failure      400      {object}  model.Response "Invalid arguments"
// @Failure      404      {object}  model.Response "Unknown tool"
// @Failure      502      {object}  model.Response "Loki unreachable or returned an error"
// @Failure      504      {object}  model.Response "Loki request timed out"
// @Router       /api/v1/tools/{name} [post]
func (c *ToolController) CallTool(ctx *gin.Context) {
	var req dto.ToolCallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Warn().Err(err).Msg("Invalid tool call body")
		respondError(ctx, &apperror.Error{Kind: apperror.KindInvalidInput, Detail: "invalid request body", Err: err})
		return
	}

	resp, err := c.registry.Call(ctx.Request.Context(), ctx.Param("name"), req.Arguments)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
